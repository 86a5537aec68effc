package uuid

import (
	"encoding/hex"
	"math/rand"
	"time"
)

// Size is the length of a canonical UUID string (8-4-4-4-12 grouping).
const Size = 36

// rng is the package pseudo-random source. It is seeded best-effort at
// init and reseeded by Seed. The tree is single-threaded by contract,
// so the unsynchronized source is fine here.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// Seed reseeds the generator from a unique hardware identifier, such as
// a chip or MAC-derived ID. Call once, before the first Generate, so
// that devices on the same network draw distinct UUID sequences.
func Seed(id uint64) {
	rng = rand.New(rand.NewSource(int64(id)))
}

// Generate returns a new version 4 UUID rendered as lowercase hex in
// the canonical 8-4-4-4-12 grouping.
func Generate() string {
	var b [16]byte
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}

	// Version 4, variant 10xxxxxx (DCE).
	b[6] = (b[6] & 0x0F) | 0x40
	b[8] = (b[8] & 0x3F) | 0x80

	var s [Size]byte
	hex.Encode(s[0:8], b[0:4])
	s[8] = '-'
	hex.Encode(s[9:13], b[4:6])
	s[13] = '-'
	hex.Encode(s[14:18], b[6:8])
	s[18] = '-'
	hex.Encode(s[19:23], b[8:10])
	s[23] = '-'
	hex.Encode(s[24:36], b[10:16])
	return string(s[:])
}

// Validate reports whether s is a well-formed UUID string: exactly 36
// characters, dashes at positions 8, 13, 18 and 23, and hex digits
// everywhere else. Both hex cases are accepted.
func Validate(s string) bool {
	if len(s) != Size {
		return false
	}
	for i := 0; i < Size; i++ {
		c := s[i]
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isHexDigit(c) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}

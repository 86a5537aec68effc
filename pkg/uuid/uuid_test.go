package uuid

import (
	"strings"
	"testing"

	guuid "github.com/google/uuid"
)

func TestGenerateShape(t *testing.T) {
	Seed(0xD0C5E7)

	for i := 0; i < 50; i++ {
		s := Generate()

		if len(s) != Size {
			t.Fatalf("len = %d, want %d (%q)", len(s), Size, s)
		}
		if !Validate(s) {
			t.Fatalf("generated UUID fails Validate: %q", s)
		}
		if s != strings.ToLower(s) {
			t.Errorf("expected lowercase, got %q", s)
		}
		// Version nibble and variant bits.
		if s[14] != '4' {
			t.Errorf("version nibble = %c, want 4 (%q)", s[14], s)
		}
		switch s[19] {
		case '8', '9', 'a', 'b':
		default:
			t.Errorf("variant character = %c, want one of 89ab (%q)", s[19], s)
		}
	}
}

func TestGenerateParsesAsRFC4122(t *testing.T) {
	Seed(42)

	for i := 0; i < 20; i++ {
		s := Generate()
		parsed, err := guuid.Parse(s)
		if err != nil {
			t.Fatalf("google/uuid rejects %q: %v", s, err)
		}
		if parsed.Version() != 4 {
			t.Errorf("parsed version = %d, want 4", parsed.Version())
		}
		if parsed.Variant() != guuid.RFC4122 {
			t.Errorf("parsed variant = %v, want RFC4122", parsed.Variant())
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	Seed(7)
	a := Generate()
	Seed(7)
	b := Generate()
	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}

	Seed(8)
	c := Generate()
	if a == c {
		t.Errorf("different seeds produced identical UUID %q", a)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"canonical v4", "123e4567-e89b-42d3-a456-426614174000", true},
		{"uppercase hex", "123E4567-E89B-42D3-A456-426614174000", true},
		{"too short", "123e4567-e89b-42d3-a456-42661417400", false},
		{"too long", "123e4567-e89b-42d3-a456-4266141740000", false},
		{"empty", "", false},
		{"dash misplaced", "123e45677e89b-42d3-a456-426614174000", false},
		{"missing dash", "123e4567 e89b-42d3-a456-426614174000", false},
		{"non-hex digit", "123e4567-e89b-42d3-a456-42661417400g", false},
		{"braced form rejected", "{123e4567-e89b-42d3-a456-42661417400}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.s); got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

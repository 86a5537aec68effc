package buffer

import "fmt"

// Writer composes text into a fixed-capacity byte slice with position
// tracking. Appends that would run past the capacity are clamped at the
// boundary; the overflow is discarded without signal. The slice is
// supplied by the caller and is never grown or reallocated.
//
// Writer is not safe for concurrent use.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter returns a Writer over buf, positioned at the start.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Write implements io.Writer with clamp-on-append semantics. It always
// reports len(p) written so fmt.Fprintf never aborts a template midway;
// bytes past the capacity are dropped.
func (w *Writer) Write(p []byte) (int, error) {
	n := copy(w.buf[w.pos:], p)
	w.pos += n
	return len(p), nil
}

// Printf appends formatted text at the current position and returns the
// new position. On truncation the position is clamped to the capacity.
func (w *Writer) Printf(format string, args ...any) int {
	fmt.Fprintf(w, format, args...)
	return w.pos
}

// Pos returns the current write position.
func (w *Writer) Pos() int {
	return w.pos
}

// Cap returns the fixed capacity of the underlying buffer.
func (w *Writer) Cap() int {
	return len(w.buf)
}

// Remaining returns the number of bytes that can still be appended.
func (w *Writer) Remaining() int {
	return len(w.buf) - w.pos
}

// Reset rewinds the position to the start of the buffer.
func (w *Writer) Reset() {
	w.pos = 0
}

// Bytes returns the written portion of the buffer.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.pos]
}

// String returns the written portion of the buffer as a string.
func (w *Writer) String() string {
	return string(w.buf[:w.pos])
}

// Format appends formatted text to buf starting at pos and returns the
// new position, clamped to len(buf) on truncation. The returned
// position feeds the next call, so composite content can be chained
// without re-scanning prior output:
//
//	pos := buffer.Format(buf, 0, "<h1>%s</h1>", name)
//	pos = buffer.Format(buf, pos, "<p>%s</p>", body)
func Format(buf []byte, pos int, format string, args ...any) int {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(buf) {
		return len(buf)
	}
	w := Writer{buf: buf, pos: pos}
	return w.Printf(format, args...)
}

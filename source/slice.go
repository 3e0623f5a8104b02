package source

// TextSlice is an immutable view of a byte range of an input string.
//
// Go strings are immutable and share their backing array, so a TextSlice
// never copies the input.
type TextSlice struct {
	buf   string
	start int
	end   int
}

// MakeTextSlice returns the view buf[start:end].
// Bounds are clamped to the buffer.
func MakeTextSlice(buf string, start, end int) TextSlice {
	start = min(max(start, 0), len(buf))
	end = min(max(end, start), len(buf))

	return TextSlice{buf: buf, start: start, end: end}
}

// WholeText returns a view over all of buf.
func WholeText(buf string) TextSlice { return TextSlice{buf: buf, end: len(buf)} }

// String returns the viewed text.
func (s TextSlice) String() string { return s.buf[s.start:s.end] }

// Len returns the length of the view in bytes.
func (s TextSlice) Len() int { return s.end - s.start }

// IsEmpty reports whether the view is empty.
func (s TextSlice) IsEmpty() bool { return s.start == s.end }

// Start returns the byte offset of the view in its buffer.
func (s TextSlice) Start() int { return s.start }

// End returns the byte offset one past the view in its buffer.
func (s TextSlice) End() int { return s.end }

// Buffer returns the complete underlying input.
func (s TextSlice) Buffer() string { return s.buf }

// Equal reports whether s and t have the same bounds and text.
func (s TextSlice) Equal(t TextSlice) bool {
	return s.start == t.start && s.end == t.end && s.String() == t.String()
}

// MarshalText implements encoding.TextMarshaler.
func (s TextSlice) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

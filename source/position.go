package source

import (
	"log/slog"
	"strconv"
	"unicode/utf8"
)

// Position identifies a location in the input.
//
// Line and Column are 1-based and count runes; Offset is the 0-based byte
// offset. The zero value is not a valid Position; use [Start].
type Position struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

// Start returns the position of the first rune of an input.
func Start() Position { return Position{Line: 1, Column: 1} }

// At returns a position with the given coordinates.
func At(line, column, offset int) Position {
	return Position{Line: line, Column: column, Offset: offset}
}

// IsValid reports whether p satisfies line ≥ 1, column ≥ 1, offset ≥ 0.
func (p Position) IsValid() bool {
	return p.Line >= 1 && p.Column >= 1 && p.Offset >= 0
}

// Advance returns the position following r, assuming r is encoded in
// utf8.RuneLen(r) bytes. A '\n' moves to column 1 of the next line.
func (p Position) Advance(r rune) Position {
	n := utf8.RuneLen(r)
	if n < 0 {
		n = 1
	}

	return p.AdvanceSize(r, n)
}

// AdvanceSize returns the position following r when r was decoded from size
// bytes of input. Invalid input decodes as utf8.RuneError of size 1.
func (p Position) AdvanceSize(r rune, size int) Position {
	p.Offset += size

	if r == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}

	return p
}

// AdvanceString returns the position following every rune of s.
func (p Position) AdvanceString(s string) Position {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		p = p.AdvanceSize(r, size)
		s = s[size:]
	}

	return p
}

// Before reports whether p occurs before q in the input.
func (p Position) Before(q Position) bool { return p.Offset < q.Offset }

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
		slog.Int("offset", p.Offset),
	)
}

// Span is the closed range of positions covered by a token or node.
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end"   yaml:"end"`
}

// String returns "start-end".
func (s Span) String() string { return s.Start.String() + "-" + s.End.String() }

// Located is implemented by outputs that may know where they begin.
type Located interface {
	Position() (Position, bool)
}

// Spanned is implemented by outputs that know the range they cover.
type Spanned interface {
	Located
	Span() (Span, bool)
}

// PositionOf returns the position of v if v implements [Located].
func PositionOf(v any) (Position, bool) {
	if l, ok := v.(Located); ok {
		return l.Position()
	}

	return Position{}, false
}

// SpanOf returns the span of v.
// Values that only implement [Located] span a single position.
func SpanOf(v any) (Span, bool) {
	switch l := v.(type) {
	case Spanned:
		return l.Span()
	case Located:
		if p, ok := l.Position(); ok {
			return Span{Start: p, End: p}, true
		}
	}

	return Span{}, false
}

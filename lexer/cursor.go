package lexer

import (
	"unicode/utf8"

	"github.com/ardnew/rulex/rule"
	"github.com/ardnew/rulex/source"
)

// Cursor is an eager character context over a complete input string.
// Its index is a byte offset.
type Cursor struct {
	input string
	off   int
	pos   source.Position
}

// NewCursor returns a cursor at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input, pos: source.Start()}
}

// Input returns the complete input.
func (c *Cursor) Input() string { return c.input }

// Peek returns the next rune without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	if c.off >= len(c.input) {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(c.input[c.off:])

	return r, true
}

// PeekAt returns the rune k runes past the next one.
func (c *Cursor) PeekAt(k int) (rune, bool) {
	if k < 0 {
		return 0, false
	}

	off := c.off
	for off < len(c.input) {
		r, n := utf8.DecodeRuneInString(c.input[off:])
		if k == 0 {
			return r, true
		}

		k--
		off += n
	}

	return 0, false
}

// Advance consumes the next rune.
func (c *Cursor) Advance() (rune, bool) {
	if c.off >= len(c.input) {
		return 0, false
	}

	r, n := utf8.DecodeRuneInString(c.input[c.off:])
	c.off += n
	c.pos = c.pos.AdvanceSize(r, n)

	return r, true
}

// AdvanceBy consumes up to n runes and returns how many were consumed.
func (c *Cursor) AdvanceBy(n int) int {
	count := 0
	for ; count < n; count++ {
		if _, ok := c.Advance(); !ok {
			break
		}
	}

	return count
}

// ConsumeWhile advances past the longest run of runes satisfying pred.
func (c *Cursor) ConsumeWhile(pred func(rune) bool) source.TextSlice {
	start := c.off

	for c.off < len(c.input) {
		r, n := utf8.DecodeRuneInString(c.input[c.off:])
		if !pred(r) {
			break
		}

		c.off += n
		c.pos = c.pos.AdvanceSize(r, n)
	}

	return source.MakeTextSlice(c.input, start, c.off)
}

// PeekSlice returns the next n runes, or fewer at the end of input,
// without consuming them.
func (c *Cursor) PeekSlice(n int) source.TextSlice {
	end := c.off
	for ; n > 0 && end < len(c.input); n-- {
		_, size := utf8.DecodeRuneInString(c.input[end:])
		end += size
	}

	return source.MakeTextSlice(c.input, c.off, end)
}

// PeekString returns the text of [Cursor.PeekSlice].
func (c *Cursor) PeekString(n int) string { return c.PeekSlice(n).String() }

// HasPrefix reports whether the unread input begins with s.
func (c *Cursor) HasPrefix(s string) bool {
	return len(c.input)-c.off >= len(s) && c.input[c.off:c.off+len(s)] == s
}

// Remaining returns the unread input.
func (c *Cursor) Remaining() source.TextSlice {
	return source.MakeTextSlice(c.input, c.off, len(c.input))
}

// RemainingRunes returns the number of unread runes.
func (c *Cursor) RemainingRunes() int {
	return utf8.RuneCountInString(c.input[c.off:])
}

// Reset rewinds to the start of input.
func (c *Cursor) Reset() {
	c.off = 0
	c.pos = source.Start()
}

// Position returns the position of the next rune.
func (c *Cursor) Position() source.Position { return c.pos }

// Index returns the byte offset of the next rune.
func (c *Cursor) Index() int { return c.off }

// IsEOF reports whether the input is exhausted.
func (c *Cursor) IsEOF() bool { return c.off >= len(c.input) }

// Checkpoint snapshots the cursor.
func (c *Cursor) Checkpoint() source.Checkpoint {
	return source.MakeCheckpoint(c.off, c.pos)
}

// Restore rewinds or forwards the cursor to cp.
func (c *Cursor) Restore(cp source.Checkpoint) error {
	if cp.Index() < 0 || cp.Index() > len(c.input) {
		return rule.ErrRestore.With(restoreAttrs(cp, len(c.input))...)
	}

	c.off, c.pos = cp.Index(), cp.Position()

	return nil
}

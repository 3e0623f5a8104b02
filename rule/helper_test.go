package rule

import (
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/rulex/source"
)

// runes is a minimal character context over a string.
type runes struct {
	in  string
	off int
	pos source.Position
}

func newRunes(s string) *runes { return &runes{in: s, pos: source.Start()} }

func (c *runes) Peek() (rune, bool) { return c.PeekAt(0) }

func (c *runes) PeekAt(k int) (rune, bool) {
	off := c.off
	for ; k >= 0; k-- {
		if off >= len(c.in) {
			return 0, false
		}

		r, n := utf8.DecodeRuneInString(c.in[off:])
		if k == 0 {
			return r, true
		}

		off += n
	}

	return 0, false
}

func (c *runes) Advance() (rune, bool) {
	if c.off >= len(c.in) {
		return 0, false
	}

	r, n := utf8.DecodeRuneInString(c.in[c.off:])
	c.off += n
	c.pos = c.pos.AdvanceSize(r, n)

	return r, true
}

func (c *runes) Position() source.Position     { return c.pos }
func (c *runes) Index() int                    { return c.off }
func (c *runes) IsEOF() bool                   { return c.off >= len(c.in) }
func (c *runes) Checkpoint() source.Checkpoint { return source.MakeCheckpoint(c.off, c.pos) }
func (c *runes) Restore(cp source.Checkpoint) error {
	if cp.Index() < 0 || cp.Index() > len(c.in) {
		return ErrRestore
	}

	c.off, c.pos = cp.Index(), cp.Position()

	return nil
}

type tok struct {
	kind string
	text string
}

type charRule = Rule[rune, *runes, tok]

// span returns a rule consuming a maximal run of runes satisfying pred.
func span(kind string, rank int, pred func(rune) bool) charRule {
	return Func[rune, *runes, tok]{
		Name: kind,
		Rank: rank,
		Match: func(c *runes) (tok, bool) {
			start := c.Index()
			for {
				r, ok := c.Peek()
				if !ok || !pred(r) {
					break
				}

				c.Advance()
			}

			if c.Index() == start {
				return tok{}, false
			}

			return tok{kind, c.in[start:c.Index()]}, true
		},
		Check: func(r rune, ok bool) Verdict { return VerdictOf(ok && pred(r)) },
	}
}

// literal returns a rule matching s exactly, with no quick check.
func literal(kind, s string, rank int) charRule {
	return Func[rune, *runes, tok]{
		Name: kind,
		Rank: rank,
		Match: func(c *runes) (tok, bool) {
			for _, want := range s {
				if r, ok := c.Advance(); !ok || r != want {
					return tok{}, false
				}
			}

			return tok{kind, s}, true
		},
	}
}

func grammar() []charRule {
	return []charRule{
		span("space", 0, unicode.IsSpace),
		span("number", 5, unicode.IsDigit),
		span("ident", 5, func(r rune) bool { return unicode.IsLetter(r) || r == '_' }),
		literal("arrow", "->", 10),
		literal("minus", "-", 1),
		literal("plus", "+", 1),
		literal("let", "let", 20),
	}
}

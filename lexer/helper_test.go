package lexer

import (
	"unicode"

	"github.com/ardnew/rulex/rule"
	"github.com/ardnew/rulex/source"
)

type kind string

const (
	kNumber kind = "number"
	kWord   kind = "word"
	kOp     kind = "op"
	kSpace  kind = "space"
	kLine   kind = "newline"
)

type token struct {
	Kind kind
	Text string
	Pos  source.Position
}

func (t token) Position() (source.Position, bool) { return t.Pos, true }
func (t token) IsEOF() bool                       { return false }
func (t token) IsNewline() bool                   { return t.Kind == kLine }
func (t token) IsWhitespace() bool                { return t.Kind == kSpace }
func (t token) IsIndent() bool                    { return false }

func runOf(k kind, rank int, pred func(rune) bool) Rule[token] {
	return Func[token]{
		Name: string(k),
		Rank: rank,
		Match: func(c Context) (token, bool) {
			pos := c.Position()

			text := c.ConsumeWhile(pred)
			if text.IsEmpty() {
				return token{}, false
			}

			return token{Kind: k, Text: text.String(), Pos: pos}, true
		},
		Check: func(r rune, ok bool) rule.Verdict { return rule.VerdictOf(ok && pred(r)) },
	}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

func testRules() []Rule[token] {
	return []Rule[token]{
		runOf(kNumber, 15, unicode.IsDigit),
		runOf(kWord, 10, unicode.IsLetter),
		runOf(kOp, 5, func(r rune) bool { return r < 0x80 && unicode.IsPunct(r) || unicode.IsSymbol(r) }),
		runOf(kSpace, 0, isSpace),
		runOf(kLine, 0, func(r rune) bool { return r == '\n' }),
	}
}

func kinds(toks []token) []kind {
	out := make([]kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

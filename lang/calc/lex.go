package calc

import (
	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/rule"
)

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isBlank(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

// Rules returns the lexing rules of the language.
func Rules() []lexer.Rule[Token] {
	return []lexer.Rule[Token]{
		lexer.Func[Token]{
			Name:  "number",
			Rank:  20,
			Match: lexNumber,
			Check: func(r rune, ok bool) rule.Verdict { return rule.VerdictOf(ok && isDigit(r)) },
		},
		lexer.Func[Token]{
			Name:  "operator",
			Rank:  10,
			Match: lexOperator,
			Check: func(r rune, ok bool) rule.Verdict {
				_, is := operators[r]

				return rule.VerdictOf(ok && is)
			},
		},
		lexer.Func[Token]{
			Name:  "space",
			Match: lexRun(Space, isBlank),
			Check: func(r rune, ok bool) rule.Verdict { return rule.VerdictOf(ok && isBlank(r)) },
		},
		lexer.Func[Token]{
			Name:  "newline",
			Match: lexRun(Newline, func(r rune) bool { return r == '\n' }),
			Check: func(r rune, ok bool) rule.Verdict { return rule.VerdictOf(ok && r == '\n') },
		},
	}
}

// lexNumber matches digits with an optional fraction. A '.' not followed
// by a digit ends the number before it.
func lexNumber(c lexer.Context) (Token, bool) {
	pos := c.Position()

	whole := c.ConsumeWhile(isDigit)
	if whole.IsEmpty() {
		return Token{}, false
	}

	text := whole.String()

	if dot, ok := c.Peek(); ok && dot == '.' {
		if d, ok := c.PeekAt(1); ok && isDigit(d) {
			c.Advance()
			text += "." + c.ConsumeWhile(isDigit).String()
		}
	}

	return Token{Kind: Number, Text: text, Pos: pos}, true
}

func lexOperator(c lexer.Context) (Token, bool) {
	pos := c.Position()

	r, ok := c.Advance()
	if !ok {
		return Token{}, false
	}

	k, ok := operators[r]
	if !ok {
		return Token{}, false
	}

	return Token{Kind: k, Text: string(r), Pos: pos}, true
}

func lexRun(k Kind, pred func(rune) bool) func(lexer.Context) (Token, bool) {
	return func(c lexer.Context) (Token, bool) {
		pos := c.Position()

		text := c.ConsumeWhile(pred)
		if text.IsEmpty() {
			return Token{}, false
		}

		return Token{Kind: k, Text: text.String(), Pos: pos}, true
	}
}

// NewLexer returns a lexer over input.
func NewLexer(input string, opts ...lexer.Option) *lexer.Lexer[Token] {
	return lexer.FromString(input, Rules(), opts...)
}

// Significant drops whitespace and newlines and keeps every other token.
func Significant(t Token) (Token, bool) { return t, !lexer.IsTrivia(t) }

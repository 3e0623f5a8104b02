package json

import (
	"strings"
	"unicode/utf16"

	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/rule"
)

var punct = map[rune]Kind{
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	':': Colon,
}

var literals = []struct {
	word string
	kind Kind
}{
	{"true", True},
	{"false", False},
	{"null", Null},
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

// Rules returns the lexing rules for JSON text.
func Rules() []lexer.Rule[Token] {
	return []lexer.Rule[Token]{
		lexer.Func[Token]{
			Name:  "string",
			Rank:  15,
			Match: lexString,
			Check: func(r rune, ok bool) rule.Verdict { return rule.VerdictOf(ok && r == '"') },
		},
		lexer.Func[Token]{
			Name:  "number",
			Rank:  10,
			Match: lexNumber,
			Check: func(r rune, ok bool) rule.Verdict { return rule.VerdictOf(ok && (r == '-' || isDigit(r))) },
		},
		lexer.Func[Token]{
			Name:  "literal",
			Rank:  10,
			Match: lexLiteral,
			Check: func(r rune, ok bool) rule.Verdict { return rule.VerdictOf(ok && (r == 't' || r == 'f' || r == 'n')) },
		},
		lexer.Func[Token]{
			Name:  "punctuation",
			Rank:  5,
			Match: lexPunct,
			Check: func(r rune, ok bool) rule.Verdict {
				_, is := punct[r]

				return rule.VerdictOf(ok && is)
			},
		},
		lexer.Func[Token]{
			Name: "space",
			Match: func(c lexer.Context) (Token, bool) {
				pos := c.Position()

				ws := c.ConsumeWhile(isSpace)
				if ws.IsEmpty() {
					return Token{}, false
				}

				return Token{Kind: Space, Text: ws.String(), Value: ws.String(), Pos: pos}, true
			},
			Check: func(r rune, ok bool) rule.Verdict { return rule.VerdictOf(ok && isSpace(r)) },
		},
	}
}

// NewLexer returns a lexer over input.
func NewLexer(input string, opts ...lexer.Option) *lexer.Lexer[Token] {
	return lexer.FromString(input, Rules(), opts...)
}

func lexPunct(c lexer.Context) (Token, bool) {
	pos := c.Position()

	r, ok := c.Advance()
	if !ok {
		return Token{}, false
	}

	k, ok := punct[r]
	if !ok {
		return Token{}, false
	}

	return Token{Kind: k, Text: string(r), Value: string(r), Pos: pos}, true
}

func lexLiteral(c lexer.Context) (Token, bool) {
	pos := c.Position()

	for _, lit := range literals {
		if !peekWord(c, lit.word) {
			continue
		}

		for range len(lit.word) {
			c.Advance()
		}

		return Token{Kind: lit.kind, Text: lit.word, Value: lit.word, Pos: pos}, true
	}

	return Token{}, false
}

// peekWord reports whether the input continues with word followed by a
// rune that cannot extend it.
func peekWord(c lexer.Context, word string) bool {
	for i, w := range word {
		if r, ok := c.PeekAt(i); !ok || r != w {
			return false
		}
	}

	r, ok := c.PeekAt(len(word))

	return !ok || !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || isDigit(r) || r == '_')
}

func lexNumber(c lexer.Context) (Token, bool) {
	pos := c.Position()

	var sb strings.Builder

	take := func() {
		r, _ := c.Advance()
		sb.WriteRune(r)
	}

	digits := func() bool {
		n := 0
		for r, ok := c.Peek(); ok && isDigit(r); r, ok = c.Peek() {
			take()
			n++
		}

		return n > 0
	}

	if r, ok := c.Peek(); ok && r == '-' {
		take()
	}

	switch r, ok := c.Peek(); {
	case !ok || !isDigit(r):
		return Token{}, false
	case r == '0':
		take()
	default:
		digits()
	}

	if r, ok := c.Peek(); ok && r == '.' {
		take()

		if !digits() {
			return Token{}, false
		}
	}

	if r, ok := c.Peek(); ok && (r == 'e' || r == 'E') {
		take()

		if r, ok := c.Peek(); ok && (r == '+' || r == '-') {
			take()
		}

		if !digits() {
			return Token{}, false
		}
	}

	return Token{Kind: Number, Text: sb.String(), Value: sb.String(), Pos: pos}, true
}

var escapes = map[rune]rune{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// lexString matches a quoted string. Unterminated strings, control
// characters and invalid escapes do not match.
func lexString(c lexer.Context) (Token, bool) {
	pos := c.Position()

	if r, ok := c.Advance(); !ok || r != '"' {
		return Token{}, false
	}

	var text, value strings.Builder

	text.WriteByte('"')

	for {
		r, ok := c.Advance()
		if !ok || r < 0x20 {
			return Token{}, false
		}

		text.WriteRune(r)

		switch r {
		case '"':
			return Token{Kind: String, Text: text.String(), Value: value.String(), Pos: pos}, true

		case '\\':
			e, ok := c.Advance()
			if !ok {
				return Token{}, false
			}

			text.WriteRune(e)

			if d, ok := escapes[e]; ok {
				value.WriteRune(d)

				continue
			}

			if e != 'u' {
				return Token{}, false
			}

			u, ok := hex4(c, &text)
			if !ok {
				return Token{}, false
			}

			if utf16.IsSurrogate(u) && peekLowSurrogate(c) {
				c.Advance()
				c.Advance()
				text.WriteString(`\u`)

				lo, _ := hex4(c, &text)
				u = utf16.DecodeRune(u, lo)
			}

			value.WriteRune(u)

		default:
			value.WriteRune(r)
		}
	}
}

// hex4 reads four hex digits as a code unit.
func hex4(c lexer.Context, text *strings.Builder) (rune, bool) {
	var u rune

	for range 4 {
		r, ok := c.Advance()
		if !ok {
			return 0, false
		}

		text.WriteRune(r)

		switch {
		case isDigit(r):
			u = u<<4 | (r - '0')
		case r >= 'a' && r <= 'f':
			u = u<<4 | (r - 'a' + 10)
		case r >= 'A' && r <= 'F':
			u = u<<4 | (r - 'A' + 10)
		default:
			return 0, false
		}
	}

	return u, true
}

// peekLowSurrogate reports whether the input continues with an escaped low
// surrogate.
func peekLowSurrogate(c lexer.Context) bool {
	if r, ok := c.PeekAt(0); !ok || r != '\\' {
		return false
	}

	if r, ok := c.PeekAt(1); !ok || r != 'u' {
		return false
	}

	var u rune

	for i := range 4 {
		r, ok := c.PeekAt(2 + i)
		if !ok {
			return false
		}

		switch {
		case isDigit(r):
			u = u<<4 | (r - '0')
		case r >= 'a' && r <= 'f':
			u = u<<4 | (r - 'a' + 10)
		case r >= 'A' && r <= 'F':
			u = u<<4 | (r - 'A' + 10)
		default:
			return false
		}
	}

	return u >= 0xdc00 && u <= 0xdfff
}

package parser

import (
	"strings"
	"unicode"

	"github.com/ardnew/rulex/rule"
	"github.com/ardnew/rulex/source"
)

// tok is a test token located by its byte offset on a single line.
type tok struct {
	text string
	off  int
}

func (t tok) Position() (source.Position, bool) {
	return source.At(1, t.off+1, t.off), true
}

func (t tok) String() string { return t.text }

// scan splits s into number runs and single-rune tokens, skipping spaces.
func scan(s string) []tok {
	var out []tok

	for i := 0; i < len(s); {
		switch r := rune(s[i]); {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			j := i
			for j < len(s) && unicode.IsDigit(rune(s[j])) {
				j++
			}

			out = append(out, tok{s[i:j], i})
			i = j
		default:
			out = append(out, tok{s[i : i+1], i})
			i++
		}
	}

	return out
}

func isNumber(t tok) bool { return t.text != "" && unicode.IsDigit(rune(t.text[0])) }

// sexpr builds expressions as S-expressions.
type sexpr struct{}

func (sexpr) PrefixBinding(t tok) (int, bool) {
	switch {
	case isNumber(t), t.text == "(":
		return 0, true
	case t.text == "-":
		return 25, true
	}

	return 0, false
}

func (sexpr) InfixBinding(t tok) (int, int, bool) {
	switch t.text {
	case "+", "-":
		return 10, 11, true
	case "*", "/":
		return 20, 21, true
	case "^":
		return 31, 30, true
	}

	return 0, 0, false
}

func (sexpr) ParsePrefix(c Context[tok], t tok, bp int, recurse Recurse[tok, string]) (string, error) {
	switch t.text {
	case "(":
		inner, err := recurse(c, 0)
		if err != nil {
			return "", err
		}

		if end, ok := c.Advance(); !ok || end.text != ")" {
			return "", ErrIncomplete
		}

		return inner, nil

	case "-":
		operand, err := recurse(c, bp)
		if err != nil {
			return "", err
		}

		return "(neg " + operand + ")", nil
	}

	return t.text, nil
}

func (sexpr) ParseInfix(c Context[tok], left string, op tok, right int, recurse Recurse[tok, string]) (string, error) {
	rhs, err := recurse(c, right)
	if err != nil {
		return "", err
	}

	return "(" + op.text + " " + left + " " + rhs + ")", nil
}

// separator matches ";" between expressions.
var separator = Func[tok, string]{
	Name: "separator",
	Match: func(c Context[tok]) (string, bool) {
		if t, ok := c.Advance(); ok && t.text == ";" {
			return ";", true
		}

		return "", false
	},
	Check: func(t tok, ok bool) rule.Verdict { return rule.VerdictOf(ok && t.text == ";") },
}

func grammar() []Rule[tok, string] {
	return []Rule[tok, string]{NewPratt[tok, string](sexpr{}, WithRank(10)), separator}
}

func texts(toks []tok) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}

	return strings.Join(parts, " ")
}

// counter is a pull source that records how many items were pulled.
type counter struct {
	toks  []tok
	pulls int
}

func (s *counter) next() (tok, bool) {
	if s.pulls >= len(s.toks) {
		return tok{}, false
	}

	s.pulls++

	return s.toks[s.pulls-1], true
}

func numbered(n int) []tok {
	out := make([]tok, n)
	for i := range out {
		out[i] = tok{text: "1", off: i}
	}

	return out
}

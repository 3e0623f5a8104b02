package calc

import (
	"strconv"

	"github.com/ardnew/rulex/source"
)

// Kind identifies the class of a [Token].
type Kind uint8

const (
	Invalid Kind = iota
	Number
	Plus
	Minus
	Star
	Slash
	Caret
	LParen
	RParen
	Space
	Newline
)

var kindNames = [...]string{
	Invalid: "invalid",
	Number:  "number",
	Plus:    "+",
	Minus:   "-",
	Star:    "*",
	Slash:   "/",
	Caret:   "^",
	LParen:  "(",
	RParen:  ")",
	Space:   "space",
	Newline: "newline",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText encodes k as its name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// operators maps operator and parenthesis runes to their kinds.
var operators = map[rune]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'^': Caret,
	'(': LParen,
	')': RParen,
}

// Token is one lexeme of an expression.
type Token struct {
	Text string          `json:"text"     yaml:"text"`
	Pos  source.Position `json:"position" yaml:"position"`
	Kind Kind            `json:"kind"     yaml:"kind"`
}

// Position returns the position of the first rune of t.
func (t Token) Position() (source.Position, bool) { return t.Pos, true }

// Span returns the extent of t.
func (t Token) Span() (source.Span, bool) {
	return source.Span{Start: t.Pos, End: t.Pos.AdvanceString(t.Text)}, true
}

func (t Token) IsEOF() bool        { return false }
func (t Token) IsNewline() bool    { return t.Kind == Newline }
func (t Token) IsWhitespace() bool { return t.Kind == Space }
func (t Token) IsIndent() bool     { return false }

func (t Token) String() string {
	if t.Kind == Number {
		return t.Text
	}

	return t.Kind.String()
}

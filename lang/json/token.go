package json

import (
	"strconv"

	"github.com/ardnew/rulex/source"
)

// Kind identifies the class of a [Token].
type Kind uint8

const (
	Invalid Kind = iota
	String
	Number
	True
	False
	Null
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Space
)

var kindNames = [...]string{
	Invalid:  "invalid",
	String:   "string",
	Number:   "number",
	True:     "true",
	False:    "false",
	Null:     "null",
	LBrace:   "{",
	RBrace:   "}",
	LBracket: "[",
	RBracket: "]",
	Comma:    ",",
	Colon:    ":",
	Space:    "space",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText encodes k as its name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Token is one lexeme of JSON text. Value is the decoded content of a
// String token and equals Text for every other kind.
type Token struct {
	Text  string          `json:"text"     yaml:"text"`
	Value string          `json:"value"    yaml:"value"`
	Pos   source.Position `json:"position" yaml:"position"`
	Kind  Kind            `json:"kind"     yaml:"kind"`
}

func (t Token) Position() (source.Position, bool) { return t.Pos, true }
func (t Token) Span() (source.Span, bool) {
	return source.Span{Start: t.Pos, End: t.Pos.AdvanceString(t.Text)}, true
}

func (t Token) IsEOF() bool        { return false }
func (t Token) IsNewline() bool    { return false }
func (t Token) IsWhitespace() bool { return t.Kind == Space }
func (t Token) IsIndent() bool     { return false }

func (t Token) String() string {
	switch t.Kind {
	case String, Number:
		return t.Text
	}

	return t.Kind.String()
}

package lexer

import "github.com/ardnew/rulex/source"

// Token is the capability set a token type may expose to the framework.
type Token interface {
	source.Located
	IsEOF() bool
	IsNewline() bool
	IsWhitespace() bool
	IsIndent() bool
}

// IsWhitespace reports whether tok is a token that declares itself
// whitespace.
func IsWhitespace(tok any) bool {
	w, ok := tok.(interface{ IsWhitespace() bool })

	return ok && w.IsWhitespace()
}

// IsTrivia reports whether tok is whitespace, a newline, or indentation.
func IsTrivia(tok any) bool {
	if t, ok := tok.(Token); ok {
		return t.IsWhitespace() || t.IsNewline() || t.IsIndent()
	}

	return IsWhitespace(tok)
}

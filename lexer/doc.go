// Package lexer turns text into tokens with a [rule.Engine] over runes.
//
// Two character contexts implement [Context]: [Cursor] over a complete
// string and [Stream], a growable buffer fed with [Stream.Push] that reaches
// end of input only after [Stream.Finish] and once every buffered rune has
// been read. A [Lexer] drives rules over either one; a [Producer] exposes a
// Lexer as the token side of a streaming pipeline.
package lexer

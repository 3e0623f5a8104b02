package parser

import (
	"log/slog"

	"github.com/ardnew/rulex/rule"
	"github.com/ardnew/rulex/source"
)

// Tokens is a [Context] over a complete token slice.
type Tokens[T any] struct {
	toks []T
	cur  int
	pos  tracker
}

// NewTokens returns a context reading toks. The slice is not copied.
func NewTokens[T any](toks []T) *Tokens[T] {
	return &Tokens[T]{toks: toks, pos: newTracker()}
}

// Len returns the total number of tokens.
func (t *Tokens[T]) Len() int { return len(t.toks) }

// Peek returns the current token.
func (t *Tokens[T]) Peek() (T, bool) { return t.PeekAt(0) }

// PeekAt returns the token k past the current one.
func (t *Tokens[T]) PeekAt(k int) (T, bool) {
	var zero T

	if i := t.cur + k; k >= 0 && i < len(t.toks) {
		return t.toks[i], true
	}

	return zero, false
}

// Advance consumes the current token.
func (t *Tokens[T]) Advance() (T, bool) {
	tok, ok := t.Peek()
	if ok {
		t.cur++
		t.pos.consumed(tok)
	}

	return tok, ok
}

// Position returns the position of the current token, or of the last token
// consumed if the current one has none.
func (t *Tokens[T]) Position() source.Position { return t.pos.at(t.Peek()) }

// Index returns the index of the current token.
func (t *Tokens[T]) Index() int { return t.cur }

// IsEOF reports whether every token has been consumed.
func (t *Tokens[T]) IsEOF() bool { return t.cur >= len(t.toks) }

// Remaining returns the unread tokens.
func (t *Tokens[T]) Remaining() []T { return t.toks[t.cur:] }

// Checkpoint snapshots the read position.
func (t *Tokens[T]) Checkpoint() source.Checkpoint {
	return source.MakeCheckpoint(t.cur, t.pos.last)
}

// Restore moves the read position to cp.
func (t *Tokens[T]) Restore(cp source.Checkpoint) error {
	if cp.Index() < 0 || cp.Index() > len(t.toks) {
		return rule.ErrRestore.With(
			slog.Int("index", cp.Index()),
			slog.Int("limit", len(t.toks)),
		)
	}

	t.cur, t.pos.last = cp.Index(), cp.Position()

	return nil
}

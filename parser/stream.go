package parser

import (
	"log/slog"

	"github.com/ardnew/rulex/source"
)

// Stream is a [Context] over tokens pushed as they become available.
//
// IsEOF is true only after [Stream.Finish] and once every pushed token has
// been read; a drained but unfinished stream is waiting for input. Commit
// releases tokens before the current one.
type Stream[T any] struct {
	toks     []T
	base     int
	cur      int
	finished bool
	pos      tracker
}

// NewStream returns an empty, unfinished stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{pos: newTracker()}
}

// NewStreamOf returns a finished stream holding toks.
func NewStreamOf[T any](toks ...T) *Stream[T] {
	s := NewStream[T]()
	s.toks = append(s.toks, toks...)
	s.finished = true

	return s
}

// Push appends tok and marks the stream unfinished.
func (s *Stream[T]) Push(tok T) {
	s.toks = append(s.toks, tok)
	s.finished = false
}

// Finish marks the end of input.
func (s *Stream[T]) Finish() { s.finished = true }

// Finished reports whether Finish was called since the last Push.
func (s *Stream[T]) Finished() bool { return s.finished }

// Len returns the index one past the last pushed token.
func (s *Stream[T]) Len() int { return s.base + len(s.toks) }

// Buffered returns the number of pushed tokens not yet read.
func (s *Stream[T]) Buffered() int { return len(s.toks) - s.cur }

// Peek returns the current token.
func (s *Stream[T]) Peek() (T, bool) { return s.PeekAt(0) }

// PeekAt returns the token k past the current one.
func (s *Stream[T]) PeekAt(k int) (T, bool) {
	var zero T

	if i := s.cur + k; k >= 0 && i < len(s.toks) {
		return s.toks[i], true
	}

	return zero, false
}

// Advance consumes the current token.
func (s *Stream[T]) Advance() (T, bool) {
	tok, ok := s.Peek()
	if ok {
		s.cur++
		s.pos.consumed(tok)
	}

	return tok, ok
}

// Position returns the position of the current token, or of the last token
// consumed if the current one has none.
func (s *Stream[T]) Position() source.Position { return s.pos.at(s.Peek()) }

// Index returns the index of the current token counted from the first push.
func (s *Stream[T]) Index() int { return s.base + s.cur }

// IsEOF reports whether the stream is finished and fully read.
func (s *Stream[T]) IsEOF() bool { return s.finished && s.cur >= len(s.toks) }

// Checkpoint snapshots the read position.
func (s *Stream[T]) Checkpoint() source.Checkpoint {
	return source.MakeCheckpoint(s.Index(), s.pos.last)
}

// Restore moves the read position to cp. Restoring before a committed token
// fails with [ErrWindowExceeded].
func (s *Stream[T]) Restore(cp source.Checkpoint) error {
	i := cp.Index() - s.base

	switch {
	case i < 0:
		return ErrWindowExceeded.With(
			slog.Int("index", cp.Index()),
			slog.Int("base", s.base),
		)
	case i > len(s.toks):
		return ErrInvalidRestore.With(
			slog.Int("index", cp.Index()),
			slog.Int("limit", s.Len()),
		)
	}

	s.cur, s.pos.last = i, cp.Position()

	return nil
}

// Commit discards the tokens before the current one.
func (s *Stream[T]) Commit() {
	if s.cur == 0 {
		return
	}

	clear(s.toks[:s.cur])
	s.toks = s.toks[s.cur:]
	s.base += s.cur
	s.cur = 0
}

package parser

import (
	"iter"
	"log/slog"

	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/source"
)

// DefaultWindowSize is the window size used when none is given.
const DefaultWindowSize = 64

// Window is a [Context] over tokens pulled on demand from a source, keeping
// a bounded buffer instead of the whole token sequence.
//
// The buffer holds tokens from the base index up to the furthest token
// looked at. After every Advance and Commit, tokens before the committed
// index are discarded, and so is history more than size/2 tokens behind
// the current token, but never at or after the committed index.
//
// Callers must not restore a checkpoint more than size/2 tokens behind the
// current token unless no token has been read since it was committed, and
// never one before the committed index. Such a restore fails with
// [ErrWindowExceeded], which is fatal: the grammar looks back further than
// the window allows.
type Window[T any] struct {
	next      func() (T, bool)
	stop      func()
	buf       []T
	base      int
	cursor    int
	committed int
	size      int
	done      bool
	pos       tracker
	logger    log.Logger
}

// WindowOption configures a [Window].
type WindowOption func(*windowConfig)

type windowConfig struct {
	logger log.Logger
}

// WithWindowLogger sets the logger receiving commit and prune records.
func WithWindowLogger(l log.Logger) WindowOption {
	return func(c *windowConfig) { c.logger = l }
}

// NewWindow returns a window of size tokens over the source next, which
// returns false once exhausted. A size less than 1 selects
// [DefaultWindowSize].
func NewWindow[T any](next func() (T, bool), size int, opts ...WindowOption) *Window[T] {
	var cfg windowConfig

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if size < 1 {
		size = DefaultWindowSize
	}

	return &Window[T]{
		next:   next,
		buf:    make([]T, 0, size),
		size:   size,
		pos:    newTracker(),
		logger: cfg.logger,
	}
}

// PullWindow returns a window over seq. Call [Window.Close] to release seq
// if the window is abandoned before it is exhausted.
func PullWindow[T any](seq iter.Seq[T], size int, opts ...WindowOption) *Window[T] {
	next, stop := iter.Pull(seq)

	w := NewWindow(next, size, opts...)
	w.stop = stop

	return w
}

// Close releases the source. The buffered tokens remain readable.
func (w *Window[T]) Close() {
	if w.stop != nil {
		w.stop()
		w.stop = nil
	}

	w.done = true
}

// Size returns the window size.
func (w *Window[T]) Size() int { return w.size }

// Base returns the index of the oldest retained token.
func (w *Window[T]) Base() int { return w.base }

// Committed returns the committed index.
func (w *Window[T]) Committed() int { return w.committed }

// Buffered returns the number of retained tokens.
func (w *Window[T]) Buffered() int { return len(w.buf) }

// fill pulls from the source until the token k past the current one is
// buffered. It returns false if the source ends first.
func (w *Window[T]) fill(k int) bool {
	for w.cursor+k >= len(w.buf) {
		if w.done {
			return false
		}

		tok, ok := w.next()
		if !ok {
			w.Close()

			return false
		}

		w.buf = append(w.buf, tok)
	}

	return true
}

// Peek returns the current token.
func (w *Window[T]) Peek() (T, bool) { return w.PeekAt(0) }

// PeekAt returns the token k past the current one, pulling as needed.
func (w *Window[T]) PeekAt(k int) (T, bool) {
	var zero T

	if k < 0 || !w.fill(k) {
		return zero, false
	}

	return w.buf[w.cursor+k], true
}

// Advance consumes the current token.
func (w *Window[T]) Advance() (T, bool) {
	tok, ok := w.Peek()
	if !ok {
		return tok, false
	}

	w.cursor++
	w.pos.consumed(tok)
	w.prune()

	return tok, true
}

// Position returns the position of the current token if it is buffered and
// has one, or of the last token consumed.
func (w *Window[T]) Position() source.Position {
	if w.cursor < len(w.buf) {
		return w.pos.at(w.buf[w.cursor], true)
	}

	return w.pos.last
}

// Index returns the index of the current token counted from the first
// token of the source.
func (w *Window[T]) Index() int { return w.base + w.cursor }

// IsEOF reports whether the source is exhausted and fully read.
func (w *Window[T]) IsEOF() bool {
	return w.cursor >= len(w.buf) && !w.fill(0)
}

// Checkpoint snapshots the read position.
func (w *Window[T]) Checkpoint() source.Checkpoint {
	return source.MakeCheckpoint(w.Index(), w.pos.last)
}

// Restore moves the read position to cp. It fails with [ErrWindowExceeded]
// if cp is before the base index, and with [ErrInvalidRestore] if cp is
// past the buffered tokens.
func (w *Window[T]) Restore(cp source.Checkpoint) error {
	i := cp.Index() - w.base

	switch {
	case i < 0:
		err := ErrWindowExceeded.With(
			slog.Int("index", cp.Index()),
			slog.Int("base", w.base),
			slog.Int("committed", w.committed),
			slog.Int("size", w.size),
		)
		w.logger.Error("restore failed", slog.Any("error", err))

		return err

	case i > len(w.buf):
		return ErrInvalidRestore.With(
			slog.Int("index", cp.Index()),
			slog.Int("limit", w.base+len(w.buf)),
		)
	}

	w.cursor, w.pos.last = i, cp.Position()

	return nil
}

// Commit promises that no later restore targets a token before the current
// one, and discards them. The committed index never decreases.
func (w *Window[T]) Commit() {
	if idx := w.Index(); idx > w.committed {
		w.committed = idx
		w.logger.Trace("commit", slog.Int("index", idx))
	}

	w.prune()
}

func (w *Window[T]) prune() {
	base := max(w.committed, w.Index()-w.size/2)
	if base <= w.base {
		return
	}

	n := base - w.base

	clear(w.buf[:n])
	w.buf = w.buf[n:]
	w.base = base
	w.cursor -= n

	w.logger.Trace("prune",
		slog.Int("base", w.base),
		slog.Int("dropped", n),
		slog.Int("buffered", len(w.buf)),
	)
}

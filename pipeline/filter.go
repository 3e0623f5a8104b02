package pipeline

import (
	"log/slog"

	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/stream"
)

// Keep decides the fate of a token: it returns the token to pass on, which
// may differ from tok, and false to drop it.
type Keep[T any] func(tok T) (T, bool)

// Drop returns a [Keep] that removes tokens matching pred and passes the
// rest unchanged.
func Drop[T any](pred func(T) bool) Keep[T] {
	return func(tok T) (T, bool) { return tok, !pred(tok) }
}

// Filter wraps a producer endpoint, applying a [Keep] to every supplied
// token. Every other signal, in either direction, passes through
// unchanged.
type Filter[T, N any] struct {
	inner   stream.Endpoint[T, N]
	keep    Keep[T]
	logger  log.Logger
	dropped int
}

// NewFilter returns a filter over inner.
func NewFilter[T, N any](inner stream.Endpoint[T, N], keep Keep[T], opts ...Option) *Filter[T, N] {
	return &Filter[T, N]{inner: inner, keep: keep, logger: makeConfig(opts).logger}
}

// Dropped returns the number of tokens removed so far.
func (f *Filter[T, N]) Dropped() int { return f.dropped }

// NextSignal returns the next signal of the wrapped producer, skipping
// dropped tokens.
func (f *Filter[T, N]) NextSignal() (stream.Signal[T, N], bool) {
	for {
		sig, ok := f.inner.NextSignal()
		if !ok || sig.Kind != stream.KindSupplyToken {
			return sig, ok
		}

		tok, keep := f.keep(sig.Token)
		if keep {
			return stream.SupplyToken[T, N](tok), true
		}

		f.dropped++
		f.logger.Trace("token dropped", slog.Any("token", sig.Token))
	}
}

// HandleSignal forwards sig to the wrapped producer.
func (f *Filter[T, N]) HandleSignal(sig stream.Signal[T, N]) { f.inner.HandleSignal(sig) }

// Apply returns the tokens of toks kept by keep, in order.
func Apply[T any](toks []T, keep Keep[T]) []T {
	out := make([]T, 0, len(toks))

	for _, tok := range toks {
		if t, ok := keep(tok); ok {
			out = append(out, t)
		}
	}

	return out
}

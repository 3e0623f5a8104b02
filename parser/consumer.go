package parser

import (
	"log/slog"

	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/stream"
)

// Consumer is the tree side of a streaming pipeline. It feeds pushed tokens
// to a [Parser] over a [Stream] and implements [stream.Consumer] and
// [stream.Endpoint].
//
// A node is accepted only once the parser has seen the token after it, or
// after Finish: a node that ends at the last pushed token is parsed again
// when more tokens arrive, so an expression is never cut short by a token
// that has not been pushed yet. A parse that fails while input is
// unfinished waits for more tokens.
type Consumer[T, N any] struct {
	parser  *Parser[T, N]
	stream  *Stream[T]
	ready   []N
	logger  log.Logger
	reason  string
	aborted bool
}

// NewConsumer returns a consumer parsing with rules.
func NewConsumer[T, N any](rules []Rule[T, N], opts ...Option) *Consumer[T, N] {
	s := NewStream[T]()

	return &Consumer[T, N]{
		parser: New(Context[T](s), rules, opts...),
		stream: s,
		logger: makeConfig(opts).logger,
	}
}

// Parser returns the wrapped parser.
func (c *Consumer[T, N]) Parser() *Parser[T, N] { return c.parser }

// Stream returns the token stream the parser reads.
func (c *Consumer[T, N]) Stream() *Stream[T] { return c.stream }

// Aborted reports whether an abort was received, and its reason.
func (c *Consumer[T, N]) Aborted() (string, bool) { return c.reason, c.aborted }

// PushToken adds tok to the input and returns the nodes it completes.
func (c *Consumer[T, N]) PushToken(tok T) []N {
	c.stream.Push(tok)

	return c.drain()
}

// Finish marks the end of input and returns the remaining nodes, including
// any not yet reported by NextSignal.
func (c *Consumer[T, N]) Finish() []N {
	c.stream.Finish()

	nodes := c.take()

	return append(nodes, c.drain()...)
}

func (c *Consumer[T, N]) take() []N {
	nodes := c.ready
	c.ready = nil

	return nodes
}

func (c *Consumer[T, N]) drain() []N {
	var nodes []N

	for c.parser.err == nil {
		cp := c.stream.Checkpoint()

		n, ok, err := c.parser.engine.Next(c.parser.ctx)
		if err != nil {
			c.parser.err = err
			c.logger.Error("consumer failed", slog.Any("error", err))

			break
		}

		if !ok {
			break
		}

		if !c.stream.Finished() && c.stream.Buffered() == 0 {
			if err := c.stream.Restore(cp); err != nil {
				c.parser.err = err
			}

			break
		}

		c.stream.Commit()

		nodes = append(nodes, n)
	}

	return nodes
}

// NextSignal reports pending nodes as [stream.KindProduced],
// [stream.KindFinished] once input is finished and fully parsed, and
// [stream.KindNeedToken] while more input is needed. Finished input that no
// rule can parse is [stream.KindBlocked]; a failed parser or a received
// abort is [stream.KindAbort].
func (c *Consumer[T, N]) NextSignal() (stream.Signal[T, N], bool) {
	switch {
	case c.aborted:
		return stream.Abort[T, N](c.reason), true

	case c.parser.err != nil:
		return stream.Abort[T, N](c.parser.err.Error()), true

	case len(c.ready) > 0:
		return stream.Produced[T, N](c.take()), true

	case c.stream.IsEOF():
		return stream.Finished[T, N](nil), true

	case c.stream.Finished():
		tok, _ := c.stream.Peek()

		return stream.Blocked[T, N](c.parser.noMatch(tok).Error()), true

	default:
		return stream.NeedToken[T, N](1), true
	}
}

// HandleSignal parses supplied tokens, finishes on
// [stream.KindEndOfInput], and halts on [stream.KindAbort]. Other signals
// are ignored.
func (c *Consumer[T, N]) HandleSignal(sig stream.Signal[T, N]) {
	switch sig.Kind {
	case stream.KindSupplyToken:
		c.ready = append(c.ready, c.PushToken(sig.Token)...)

	case stream.KindEndOfInput:
		c.stream.Finish()
		c.ready = append(c.ready, c.drain()...)

	case stream.KindAbort:
		c.aborted = true
		c.reason = sig.Reason
		c.logger.Warn("consumer aborted", slog.String("reason", sig.Reason))
	}
}

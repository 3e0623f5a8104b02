package lexer

import (
	"log/slog"

	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/stream"
)

// Refill supplies more input for a [Stream]. It returns false once the
// input is exhausted.
type Refill func() (string, bool)

// Producer is the token side of a streaming pipeline. It adapts a [Lexer]
// to [stream.Producer] and [stream.Endpoint], where N is the node type of
// the consumer on the other side.
type Producer[O, N any] struct {
	lexer   *Lexer[O]
	refill  Refill
	logger  log.Logger
	demand  int
	aborted bool
	reason  string
}

// ProducerOption configures a [Producer].
type ProducerOption func(*producerConfig)

type producerConfig struct {
	refill Refill
	logger log.Logger
}

// WithRefill sets the source of more input. It is used only when the lexer
// reads a [*Stream]: a token ending exactly at the end of unfinished input,
// or matched while the stream was [Stream.Starved], is retried after
// refilling, so chunk boundaries never split a token.
func WithRefill(fn Refill) ProducerOption {
	return func(c *producerConfig) { c.refill = fn }
}

// WithProducerLogger sets the logger receiving signal trace records.
func WithProducerLogger(l log.Logger) ProducerOption {
	return func(c *producerConfig) { c.logger = l }
}

// NewProducer returns a producer reading tokens from l.
func NewProducer[O, N any](l *Lexer[O], opts ...ProducerOption) *Producer[O, N] {
	var cfg producerConfig

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Producer[O, N]{lexer: l, refill: cfg.refill, logger: cfg.logger}
}

// Lexer returns the wrapped lexer.
func (p *Producer[O, N]) Lexer() *Lexer[O] { return p.lexer }

// Demand returns the token count of the last [stream.KindRequestToken].
func (p *Producer[O, N]) Demand() int { return p.demand }

// Aborted reports whether an abort was received, and its reason.
func (p *Producer[O, N]) Aborted() (string, bool) { return p.reason, p.aborted }

// PollToken returns the next token, refilling a stream context as needed.
func (p *Producer[O, N]) PollToken() (O, bool) {
	tok, ok, err := p.poll()
	if err != nil {
		return tok, false
	}

	return tok, ok
}

func (p *Producer[O, N]) poll() (O, bool, error) {
	var zero O

	if p.lexer.err != nil {
		return zero, false, p.lexer.err
	}

	st, streaming := p.lexer.ctx.(*Stream)
	if !streaming || p.refill == nil {
		tok, ok := p.lexer.Next()

		return tok, ok, p.lexer.err
	}

	for {
		cp := st.Checkpoint()

		tok, ok, err := p.lexer.NextToken()
		if err != nil {
			p.lexer.err = err

			return zero, false, err
		}

		if st.Finished() || (ok && st.Index() < st.Len() && !st.Starved()) {
			if !ok {
				tok, ok = p.lexer.Next()

				return tok, ok, p.lexer.err
			}

			return tok, true, nil
		}

		if ok {
			if err := st.Restore(cp); err != nil {
				return zero, false, err
			}
		}

		chunk, more := p.refill()
		if chunk != "" {
			st.Push(chunk)
		}

		if !more {
			st.Finish()
		}

		p.logger.Trace("refill",
			slog.Int("bytes", len(chunk)),
			slog.Bool("more", more),
		)
	}
}

// NextSignal reports the next token as [stream.KindSupplyToken],
// [stream.KindEndOfInput] once input is exhausted, [stream.KindBlocked] if
// buffered input matches no rule, and [stream.KindAbort] after a fatal
// engine error or a received abort.
func (p *Producer[O, N]) NextSignal() (stream.Signal[O, N], bool) {
	if p.aborted {
		return stream.Abort[O, N](p.reason), true
	}

	tok, ok, err := p.poll()

	switch {
	case ok:
		return stream.SupplyToken[O, N](tok), true

	case p.lexer.ctx.IsEOF() && err == nil:
		return stream.EndOfInput[O, N](), true

	case err != nil && isNoMatch(err):
		return stream.Blocked[O, N](err.Error()), true

	case err != nil:
		return stream.Abort[O, N](err.Error()), true

	default:
		return stream.Blocked[O, N]("awaiting input"), true
	}
}

// HandleSignal records demand from [stream.KindRequestToken] and halts on
// [stream.KindAbort]. Other signals are ignored.
func (p *Producer[O, N]) HandleSignal(sig stream.Signal[O, N]) {
	switch sig.Kind {
	case stream.KindRequestToken:
		p.demand = sig.Count
	case stream.KindAbort:
		p.aborted = true
		p.reason = sig.Reason
		p.logger.Warn("producer aborted", slog.String("reason", sig.Reason))
	}
}

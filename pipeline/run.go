package pipeline

import (
	"context"
	"log/slog"

	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/stream"
)

// Consumer is the tree side of [Run]. Finish is called once the producer
// reports end of input, and returns the consumer's remaining nodes.
type Consumer[T, N any] interface {
	stream.Endpoint[T, N]
	Finish() []N
}

// Option configures [Run] and [Batch].
type Option func(*config)

type config struct {
	logger log.Logger
}

// WithLogger sets the logger receiving signal trace records.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

func makeConfig(opts []Option) config {
	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Run drives producer and consumer until the consumer finishes, input
// ends, or either side aborts, and returns the nodes in the order the
// consumer produced them.
//
// If either side reports [stream.KindBlocked] or [stream.KindAbort], both
// sides are sent one [stream.KindAbort] with the same reason, and Run
// returns the nodes collected so far with an error matching [ErrAborted].
// A consumer left with tokens it cannot parse at end of input aborts the
// same way.
// Cancellation of ctx is checked before every consumer signal and aborts
// both sides the same way, returning ctx.Err().
func Run[T, N any](
	ctx context.Context,
	producer stream.Endpoint[T, N],
	consumer Consumer[T, N],
	opts ...Option,
) ([]N, error) {
	d := driver[T, N]{
		producer: producer,
		consumer: consumer,
		logger:   makeConfig(opts).logger,
	}

	err := d.run(ctx)

	d.logger.DebugContext(ctx, "pipeline stopped",
		slog.Int("tokens", d.tokens),
		slog.Int("nodes", len(d.nodes)),
		slog.Bool("aborted", err != nil),
	)

	return d.nodes, err
}

type driver[T, N any] struct {
	producer stream.Endpoint[T, N]
	consumer Consumer[T, N]
	logger   log.Logger
	nodes    []N
	tokens   int
}

func (d *driver[T, N]) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			d.abort(ctx, err.Error())

			return err
		}

		sig, ok := d.consumer.NextSignal()
		if !ok {
			return nil
		}

		d.logger.TraceContext(ctx, "consumer signal", slog.String("signal", sig.String()))

		switch sig.Kind {
		case stream.KindProduced:
			d.nodes = append(d.nodes, sig.Nodes...)

		case stream.KindFinished:
			d.nodes = append(d.nodes, sig.Nodes...)

			return nil

		case stream.KindNeedToken:
			done, err := d.relay(ctx, sig.Count)
			if done {
				return err
			}

		case stream.KindBlocked, stream.KindAbort:
			return d.abort(ctx, sig.Reason)
		}
	}
}

// relay requests n tokens from the producer and forwards its answer. It
// reports whether the pipeline has stopped.
func (d *driver[T, N]) relay(ctx context.Context, n int) (bool, error) {
	d.producer.HandleSignal(stream.RequestToken[T, N](n))

	sig, ok := d.producer.NextSignal()
	if !ok {
		sig = stream.EndOfInput[T, N]()
	}

	d.logger.TraceContext(ctx, "producer signal", slog.String("signal", sig.String()))

	switch sig.Kind {
	case stream.KindSupplyToken:
		d.tokens++
		d.consumer.HandleSignal(sig)

	case stream.KindEndOfInput:
		d.consumer.HandleSignal(sig)
		d.nodes = append(d.nodes, d.consumer.Finish()...)

		return true, d.settle(ctx)

	case stream.KindBlocked, stream.KindAbort:
		return true, d.abort(ctx, sig.Reason)
	}

	return false, nil
}

// settle collects what a finished consumer still reports, and aborts if it
// was left with input it could not parse.
func (d *driver[T, N]) settle(ctx context.Context) error {
	sig, ok := d.consumer.NextSignal()
	if !ok {
		return nil
	}

	switch sig.Kind {
	case stream.KindProduced, stream.KindFinished:
		d.nodes = append(d.nodes, sig.Nodes...)
	case stream.KindBlocked, stream.KindAbort:
		return d.abort(ctx, sig.Reason)
	}

	return nil
}

func (d *driver[T, N]) abort(ctx context.Context, reason string) error {
	sig := stream.Abort[T, N](reason)

	d.consumer.HandleSignal(sig)
	d.producer.HandleSignal(sig)

	err := ErrAborted.With(slog.String("reason", reason))
	d.logger.WarnContext(ctx, "pipeline aborted", slog.Any("error", err))

	return err
}

package rule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/rulex/log"
)

// Engine tries the rules of a [Set] against a context, first match wins.
// An Engine is immutable after construction and may be shared by any
// number of contexts used one at a time.
type Engine[T any, C Context[T], O any] struct {
	set    Set[T, C, O]
	all    []int
	table  *table[T]
	logger log.Logger
}

// Option configures an [Engine].
type Option[T any] func(*options[T])

type options[T any] struct {
	lookup *Lookup[T]
	logger log.Logger
}

// WithLookup precomputes quick-check results for every key of lk.
func WithLookup[T any](lk Lookup[T]) Option[T] {
	return func(o *options[T]) { o.lookup = &lk }
}

// WithLogger sets the logger receiving per-attempt trace records.
func WithLogger[T any](l log.Logger) Option[T] {
	return func(o *options[T]) { o.logger = l }
}

// NewEngine returns an engine over rules sorted by [NewSet].
func NewEngine[T any, C Context[T], O any](
	rules []Rule[T, C, O],
	opts ...Option[T],
) *Engine[T, C, O] {
	return NewEngineSet[T](NewSet(rules...), opts...)
}

// NewEngineSet returns an engine over an already sorted set.
func NewEngineSet[T any, C Context[T], O any](
	set Set[T, C, O],
	opts ...Option[T],
) *Engine[T, C, O] {
	var o options[T]

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	e := &Engine[T, C, O]{
		set:    set,
		all:    make([]int, set.Len()),
		logger: o.logger,
	}

	for i := range e.all {
		e.all[i] = i
	}

	if o.lookup != nil {
		e.table = buildTable(*o.lookup, set)
	}

	return e
}

// Set returns the rules of e in the order they are tried.
func (e *Engine[T, C, O]) Set() Set[T, C, O] { return e.set }

// Next returns the output of the first rule that matches at the current
// position of c.
//
// If no rule matches, Next returns false and a nil error with c unchanged.
// An error is returned if a rule matched without advancing c
// ([ErrZeroProgress]) or if c failed to restore a checkpoint.
func (e *Engine[T, C, O]) Next(c C) (O, bool, error) {
	var zero O

	hint, ok := c.Peek()
	before := c.Index()

	candidates, checked := []int(nil), false
	if ok {
		candidates, checked = e.table.lookup(hint)
	}

	if !checked {
		candidates = e.all
	}

	traced := e.logger.Enabled(context.Background(), log.LevelTrace)

	for _, i := range candidates {
		r := e.set.rules[i]

		if !checked && r.QuickCheck(hint, ok) == Impossible {
			if traced {
				e.logger.Trace("skip rule", ruleAttr(i, r), slog.Int("index", before))
			}

			continue
		}

		cp := c.Checkpoint()

		out, matched := r.TryMatch(c)
		if matched {
			if after := c.Index(); after <= before {
				err := ErrZeroProgress.With(
					ruleAttr(i, r),
					slog.Int("index", before),
					slog.Any("position", cp.Position()),
				)
				e.logger.Error("broken rule", slog.Any("error", err))

				return zero, false, err
			}

			if traced {
				e.logger.Trace("rule matched",
					ruleAttr(i, r),
					slog.Int("index", before),
					slog.Int("next", c.Index()),
				)
			}

			return out, true, nil
		}

		if err := c.Restore(cp); err != nil {
			return zero, false, err
		}
	}

	return zero, false, nil
}

// Collect calls [Engine.Next] until c reaches end of input, returning the
// outputs in input order.
//
// If no rule matches before end of input, Collect returns the outputs
// gathered so far with an error matching [ErrNoMatch]. Fatal errors from
// Next and cancellation of ctx (checked between matches) are returned
// likewise.
func (e *Engine[T, C, O]) Collect(ctx context.Context, c C) ([]O, error) {
	var outs []O

	for !c.IsEOF() {
		if err := ctx.Err(); err != nil {
			return outs, err
		}

		out, ok, err := e.Next(c)
		if err != nil {
			return outs, err
		}

		if !ok {
			e.logger.DebugContext(ctx, "no rule matched",
				slog.Int("index", c.Index()),
				slog.Any("position", c.Position()),
			)

			return outs, ErrNoMatch.With(
				slog.Int("index", c.Index()),
				slog.Any("position", c.Position()),
			)
		}

		outs = append(outs, out)
	}

	return outs, nil
}

func ruleAttr(i int, r any) slog.Attr {
	name := fmt.Sprintf("%T", r)
	if s, ok := r.(fmt.Stringer); ok {
		name = s.String()
	}

	return slog.Group("rule", slog.Int("rank", i), slog.String("name", name))
}

package parser

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/rule"
)

// Parser produces nodes of type N from a token [Context].
//
// When the context implements [rule.Committer], the parser commits after
// every node it returns: a top-level node is never backtracked into.
type Parser[T, N any] struct {
	ctx    Context[T]
	engine *rule.Engine[T, Context[T], N]
	logger log.Logger
	err    error
}

// Option configures a [Parser].
type Option func(*config)

type config struct {
	logger log.Logger
}

// WithLogger sets the logger of the parser and its engine.
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

// NewEngine returns a rule engine for parsing with rules.
func NewEngine[T, N any](rules []Rule[T, N], opts ...Option) *rule.Engine[T, Context[T], N] {
	cfg := makeConfig(opts)

	return rule.NewEngine(rules, rule.WithLogger[T](cfg.logger))
}

// New returns a parser over ctx using rules.
func New[T, N any](ctx Context[T], rules []Rule[T, N], opts ...Option) *Parser[T, N] {
	return NewFromEngine(ctx, NewEngine(rules, opts...), opts...)
}

// NewFromEngine returns a parser over ctx sharing an existing engine.
func NewFromEngine[T, N any](
	ctx Context[T],
	e *rule.Engine[T, Context[T], N],
	opts ...Option,
) *Parser[T, N] {
	return &Parser[T, N]{ctx: ctx, engine: e, logger: makeConfig(opts).logger}
}

// FromTokens returns a parser over a [Tokens] context for toks.
func FromTokens[T, N any](toks []T, rules []Rule[T, N], opts ...Option) *Parser[T, N] {
	return New(Context[T](NewTokens(toks)), rules, opts...)
}

// Context returns the token context.
func (p *Parser[T, N]) Context() Context[T] { return p.ctx }

// Next returns the next node. It returns false with a nil error when no
// rule matches, including at end of input.
func (p *Parser[T, N]) Next() (N, bool, error) {
	n, ok, err := p.engine.Next(p.ctx)
	if ok {
		if c, can := p.ctx.(rule.Committer); can {
			c.Commit()
		}
	}

	return n, ok, err
}

// ParseOne returns the next node, or false at end of input or on failure.
// After ParseOne returns false, [Parser.Err] reports why, if input remained.
func (p *Parser[T, N]) ParseOne() (N, bool) {
	var zero N

	if p.err != nil || p.ctx.IsEOF() {
		return zero, false
	}

	n, ok, err := p.Next()

	switch {
	case err != nil:
		p.err = err

	case !ok:
		if tok, buffered := p.ctx.Peek(); buffered {
			p.err = p.noMatch(tok)
			p.logger.Debug("parser stopped", slog.Any("error", p.err))
		}

	default:
		return n, true
	}

	return zero, false
}

// All returns an iterator over the remaining nodes. Check [Parser.Err]
// after the iteration ends.
func (p *Parser[T, N]) All() iter.Seq[N] {
	return func(yield func(N) bool) {
		for {
			n, ok := p.ParseOne()
			if !ok || !yield(n) {
				return
			}
		}
	}
}

// Parse returns all remaining nodes. On failure it returns the nodes
// parsed so far and an error; [rule.ErrNoMatch] means a token remained
// that no rule could start a node with. Cancellation of ctx is checked
// between nodes.
func (p *Parser[T, N]) Parse(ctx context.Context) ([]N, error) {
	var nodes []N

	for !p.ctx.IsEOF() {
		if err := ctx.Err(); err != nil {
			return nodes, err
		}

		n, ok := p.ParseOne()
		if !ok {
			break
		}

		nodes = append(nodes, n)
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("nodes", len(nodes)),
		slog.Bool("eof", p.ctx.IsEOF()),
	)

	return nodes, p.err
}

// Err returns the error that stopped the parser, if any.
func (p *Parser[T, N]) Err() error { return p.err }

func (p *Parser[T, N]) noMatch(tok T) error {
	return rule.ErrNoMatch.With(
		slog.Int("index", p.ctx.Index()),
		slog.Any("position", p.ctx.Position()),
		slog.String("token", fmt.Sprint(tok)),
	)
}

package lexer

import (
	"context"
	"iter"
	"log/slog"

	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/rule"
)

// Lexer produces tokens of type O from a character [Context].
type Lexer[O any] struct {
	ctx    Context
	engine *rule.Engine[rune, Context, O]
	logger log.Logger
	err    error
}

// Option configures a [Lexer].
type Option func(*config)

type config struct {
	logger log.Logger
	lookup bool
}

// WithLogger sets the logger of the lexer and its engine.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithLookup enables the precomputed ASCII quick-check table.
func WithLookup(enable bool) Option {
	return func(c *config) { c.lookup = enable }
}

// NewEngine returns a rule engine for lexing with rules.
func NewEngine[O any](rules []Rule[O], opts ...Option) *rule.Engine[rune, Context, O] {
	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	eopts := []rule.Option[rune]{rule.WithLogger[rune](cfg.logger)}
	if cfg.lookup {
		eopts = append(eopts, rule.WithLookup(rule.ASCII()))
	}

	return rule.NewEngine(rules, eopts...)
}

// New returns a lexer over ctx using rules.
func New[O any](ctx Context, rules []Rule[O], opts ...Option) *Lexer[O] {
	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Lexer[O]{
		ctx:    ctx,
		engine: NewEngine(rules, opts...),
		logger: cfg.logger,
	}
}

// NewFromEngine returns a lexer over ctx sharing an existing engine.
func NewFromEngine[O any](ctx Context, e *rule.Engine[rune, Context, O], opts ...Option) *Lexer[O] {
	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Lexer[O]{ctx: ctx, engine: e, logger: cfg.logger}
}

// FromString returns a lexer over a [Cursor] for input.
func FromString[O any](input string, rules []Rule[O], opts ...Option) *Lexer[O] {
	return New(Context(NewCursor(input)), rules, opts...)
}

// Context returns the scanning context.
func (l *Lexer[O]) Context() Context { return l.ctx }

// NextToken returns the next token. It returns false with a nil error when
// no rule matches, including at end of input.
func (l *Lexer[O]) NextToken() (O, bool, error) {
	return l.engine.Next(l.ctx)
}

// Next returns the next token, or false at end of input or on failure.
// After Next returns false, [Lexer.Err] reports why, if the input was not
// exhausted.
func (l *Lexer[O]) Next() (O, bool) {
	var zero O

	if l.err != nil || l.ctx.IsEOF() {
		return zero, false
	}

	tok, ok, err := l.NextToken()
	if err != nil {
		l.err = err

		return zero, false
	}

	if !ok {
		if _, buffered := l.ctx.Peek(); buffered {
			l.err = rule.ErrNoMatch.With(
				slog.Int("index", l.ctx.Index()),
				slog.Any("position", l.ctx.Position()),
				slog.String("remaining", l.preview(10)),
			)
			l.logger.Debug("lexer stopped", slog.Any("error", l.err))
		}

		return zero, false
	}

	return tok, true
}

// PollToken returns the next token, like [Lexer.Next].
func (l *Lexer[O]) PollToken() (O, bool) { return l.Next() }

// All returns an iterator over the remaining tokens. Check [Lexer.Err]
// after the iteration ends.
func (l *Lexer[O]) All() iter.Seq[O] {
	return func(yield func(O) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize returns all remaining tokens. On failure it returns the tokens
// read so far and an error; [rule.ErrNoMatch] means input remained that no
// rule recognized.
func (l *Lexer[O]) Tokenize(ctx context.Context) ([]O, error) {
	toks, err := l.engine.Collect(ctx, l.ctx)
	if err != nil {
		l.err = err
	}

	l.logger.TraceContext(ctx, "tokenize complete",
		slog.Int("tokens", len(toks)),
		slog.Bool("eof", l.ctx.IsEOF()),
	)

	return toks, err
}

// Err returns the error that stopped the lexer, if any.
func (l *Lexer[O]) Err() error { return l.err }

// SizeHint returns bounds on the number of tokens remaining in buffered
// input. The upper bound is the number of unread runes, since every token
// consumes at least one; ok is false if the context cannot count them.
func (l *Lexer[O]) SizeHint() (lower, upper int, ok bool) {
	if rc, can := l.ctx.(interface{ RemainingRunes() int }); can {
		return 0, rc.RemainingRunes(), true
	}

	return 0, 0, false
}

func (l *Lexer[O]) preview(n int) string {
	var buf []rune

	for i := range n {
		r, ok := l.ctx.PeekAt(i)
		if !ok {
			break
		}

		buf = append(buf, r)
	}

	return string(buf)
}

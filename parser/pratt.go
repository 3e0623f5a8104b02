package parser

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/rule"
)

// Recurse parses an expression whose operators bind at least minBP.
type Recurse[T, N any] func(c Context[T], minBP int) (N, error)

// Table holds the operator grammar of a [Pratt] parser.
//
// PrefixBinding reports whether tok can start an expression, and the
// binding power for its operand, if any. InfixBinding reports whether tok
// is a binary operator and its left and right binding powers. A
// left-associative operator has left < right; a right-associative one has
// left ≥ right.
//
// ParsePrefix builds the expression started by tok, which has been
// consumed; ParseInfix combines left with the right operand of op, which
// has been consumed, parsing that operand with recurse(c, right).
type Table[T, N any] interface {
	PrefixBinding(tok T) (bp int, ok bool)
	InfixBinding(tok T) (left, right int, ok bool)
	ParsePrefix(c Context[T], tok T, bp int, recurse Recurse[T, N]) (N, error)
	ParseInfix(c Context[T], left N, op T, right int, recurse Recurse[T, N]) (N, error)
}

// Pratt parses operator expressions by binding power. It is a [Rule] that
// matches one whole expression.
type Pratt[T, N any] struct {
	table  Table[T, N]
	name   string
	rank   int
	logger log.Logger
}

// PrattOption configures a [Pratt] parser.
type PrattOption func(*prattConfig)

type prattConfig struct {
	name   string
	rank   int
	logger log.Logger
}

// WithName sets the rule name used in log records.
func WithName(name string) PrattOption {
	return func(c *prattConfig) { c.name = name }
}

// WithRank sets the rule priority.
func WithRank(rank int) PrattOption {
	return func(c *prattConfig) { c.rank = rank }
}

// WithPrattLogger sets the logger receiving failure records.
func WithPrattLogger(l log.Logger) PrattOption {
	return func(c *prattConfig) { c.logger = l }
}

// NewPratt returns a Pratt parser for table.
func NewPratt[T, N any](table Table[T, N], opts ...PrattOption) *Pratt[T, N] {
	cfg := prattConfig{name: "expression"}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Pratt[T, N]{
		table:  table,
		name:   cfg.name,
		rank:   cfg.rank,
		logger: cfg.logger,
	}
}

// Parse parses one expression from c whose operators bind at least minBP.
//
// A failure anywhere in the expression fails the whole parse; no partial
// tree is returned. The position of c is unspecified after a failure, so
// callers that continue must restore a checkpoint.
func (p *Pratt[T, N]) Parse(c Context[T], minBP int) (N, error) {
	var zero N

	tok, ok := c.Advance()
	if !ok {
		return zero, ErrIncomplete.With(
			slog.Int("index", c.Index()),
			slog.Any("position", c.Position()),
		)
	}

	bp, ok := p.table.PrefixBinding(tok)
	if !ok {
		return zero, ErrNoPrefix.With(
			slog.Int("index", c.Index()-1),
			slog.String("token", fmt.Sprint(tok)),
		)
	}

	left, err := p.table.ParsePrefix(c, tok, bp, p.Parse)
	if err != nil {
		return zero, err
	}

	for {
		op, ok := c.Peek()
		if !ok {
			break
		}

		lbp, rbp, ok := p.table.InfixBinding(op)
		if !ok || lbp < minBP {
			break
		}

		c.Advance()

		left, err = p.table.ParseInfix(c, left, op, rbp, p.Parse)
		if err != nil {
			return zero, err
		}
	}

	return left, nil
}

// TryMatch parses one expression with no minimum binding power.
func (p *Pratt[T, N]) TryMatch(c Context[T]) (N, bool) {
	n, err := p.Parse(c, 0)
	if err != nil {
		p.logger.Debug("expression failed",
			slog.String("rule", p.name),
			slog.Any("error", err),
		)

		return n, false
	}

	return n, true
}

// Priority returns the configured rank.
func (p *Pratt[T, N]) Priority() int { return p.rank }

// QuickCheck rules out tokens that cannot start an expression.
func (p *Pratt[T, N]) QuickCheck(hint T, ok bool) rule.Verdict {
	if !ok {
		return rule.Impossible
	}

	_, can := p.table.PrefixBinding(hint)

	return rule.VerdictOf(can)
}

func (p *Pratt[T, N]) String() string { return p.name }

package pipeline

import (
	"context"
	"log/slog"

	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/parser"
)

// Batch tokenizes all input of lx, applies keep if it is not nil, and
// parses the tokens with rules.
//
// A lexing failure stops before parsing and returns the error. Otherwise
// Batch returns the nodes parsed and any parsing error.
func Batch[T, N any](
	ctx context.Context,
	lx *lexer.Lexer[T],
	keep Keep[T],
	rules []parser.Rule[T, N],
	opts ...Option,
) ([]N, error) {
	logger := makeConfig(opts).logger

	toks, err := lx.Tokenize(ctx)
	if err != nil {
		return nil, err
	}

	if keep != nil {
		toks = Apply(toks, keep)
	}

	nodes, err := parser.FromTokens(toks, rules, parser.WithLogger(logger)).Parse(ctx)

	logger.DebugContext(ctx, "batch complete",
		slog.Int("tokens", len(toks)),
		slog.Int("nodes", len(nodes)),
	)

	return nodes, err
}

package calc

import (
	"context"

	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/parser"
	"github.com/ardnew/rulex/pipeline"
)

// Parse parses every expression in input.
func Parse(ctx context.Context, input string, opts ...pipeline.Option) ([]Node, error) {
	return pipeline.Batch[Token, Node](ctx, NewLexer(input), Significant, Grammar(), opts...)
}

// ParseStream parses the expressions of a streaming lexer, returning them
// as the pipeline driver collects them.
func ParseStream(
	ctx context.Context,
	lx *lexer.Lexer[Token],
	refill lexer.Refill,
	opts ...pipeline.Option,
) ([]Node, error) {
	prod := lexer.NewProducer[Token, Node](lx, lexer.WithRefill(refill))

	return pipeline.Run[Token, Node](ctx,
		pipeline.NewFilter[Token, Node](prod, Significant, opts...),
		parser.NewConsumer(Grammar()),
		opts...,
	)
}

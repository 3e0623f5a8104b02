package cmd

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/ardnew/rulex/lang/calc"
	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/parser"
	"github.com/ardnew/rulex/pipeline"
)

// Parse prints the expression trees of a calculator source.
type Parse struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format."                                        short:"o"`
	Lazy   int    `default:"0"                          help:"Parse through a lazy token window of this size (0 parses eagerly)."`
	Stream bool   `                                     help:"Lex and parse input incrementally as it is read."`
	Chunk  int    `default:"4096"                       help:"Read size in bytes when streaming."`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	in, err := openInput(ctx, p.Source, p.Chunk)
	if err != nil {
		return err
	}
	defer in.Close()

	logger := log.With(slog.String("command", "parse"))

	nodes, err := parseCalc(ctx, in, p.Stream, p.Lazy, logger)

	trees := make([]map[string]any, len(nodes))
	for i, n := range nodes {
		trees[i] = calc.Tree(n)
	}

	if werr := format(p.Format).write(ctx, stdout(ctx), trees, func(w io.Writer) error {
		for _, n := range nodes {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return err
			}
		}

		return nil
	}); werr != nil {
		return werr
	}

	return err
}

// parseCalc parses in by one of three paths: eagerly, through the
// streaming pipeline, or through a lazy window of the given size.
func parseCalc(
	ctx context.Context,
	in *input,
	streaming bool,
	lazy int,
	logger log.Logger,
) ([]calc.Node, error) {
	lopts := []lexer.Option{lexer.WithLookup(true), lexer.WithLogger(logger)}

	var lx *lexer.Lexer[calc.Token]

	if streaming {
		lx = lexer.New(lexer.NewStream(), calc.Rules(), lopts...)
	} else {
		text, err := in.ReadAll()
		if err != nil {
			return nil, err
		}

		lx = calc.NewLexer(text, lopts...)
	}

	if lazy < 1 {
		if streaming {
			nodes, err := calc.ParseStream(ctx, lx, in.Refill, pipeline.WithLogger(logger))
			if err == nil {
				err = in.Err()
			}

			return nodes, err
		}

		toks, err := lx.Tokenize(ctx)
		if err != nil {
			return nil, err
		}

		return parser.FromTokens(pipeline.Apply(toks, calc.Significant), calc.Grammar(), parser.WithLogger(logger)).
			Parse(ctx)
	}

	prod := lexer.NewProducer[calc.Token, calc.Node](lx, lexer.WithRefill(in.Refill))

	w := parser.PullWindow(significant(prod.PollToken), lazy, parser.WithWindowLogger(logger))
	defer w.Close()

	nodes, err := parser.New[calc.Token, calc.Node](w, calc.Grammar(), parser.WithLogger(logger)).Parse(ctx)
	if err != nil {
		return nodes, err
	}

	if err := in.Err(); err != nil {
		return nodes, err
	}

	return nodes, lx.Err()
}

// significant yields the non-trivia tokens returned by poll.
func significant(poll func() (calc.Token, bool)) iter.Seq[calc.Token] {
	return func(yield func(calc.Token) bool) {
		for {
			tok, ok := poll()
			if !ok {
				return
			}

			if tok, keep := calc.Significant(tok); keep && !yield(tok) {
				return
			}
		}
	}
}

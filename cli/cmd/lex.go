package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/rulex/lang/calc"
	"github.com/ardnew/rulex/lang/json"
	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/source"
)

// Lex prints the tokens of a source.
type Lex struct {
	Lang   string `default:"calc" enum:"calc,json"      help:"Token language."                                short:"l"`
	Format string `default:"text" enum:"text,json,yaml" help:"Output format."                                 short:"o"`
	Stream bool   `                                     help:"Lex input incrementally as it is read."`
	Chunk  int    `default:"4096"                       help:"Read size in bytes when streaming."`
	Lookup bool   `default:"true"                       help:"Skip rules with the ASCII lookup table." negatable:""`
	Trivia bool   `                                     help:"Include whitespace tokens."                                negatable:""`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// row is the printed form of a token of any language.
type row struct {
	Position source.Position `json:"position" yaml:"position"`
	Kind     string          `json:"kind"     yaml:"kind"`
	Text     string          `json:"text"     yaml:"text"`
}

// Run executes the lex command.
func (l *Lex) Run(ctx context.Context) error {
	in, err := openInput(ctx, l.Source, l.Chunk)
	if err != nil {
		return err
	}
	defer in.Close()

	opts := []lexer.Option{
		lexer.WithLookup(l.Lookup),
		lexer.WithLogger(log.With(slog.String("command", "lex"))),
	}

	var rows []row

	switch l.Lang {
	case "calc":
		rows, err = lexRows(ctx, in, l.Stream, calc.Rules(), opts, func(t calc.Token) (row, bool) {
			return row{t.Pos, t.Kind.String(), t.Text}, l.Trivia || !lexer.IsTrivia(t)
		})
	case "json":
		rows, err = lexRows(ctx, in, l.Stream, json.Rules(), opts, func(t json.Token) (row, bool) {
			return row{t.Pos, t.Kind.String(), t.Text}, l.Trivia || !lexer.IsTrivia(t)
		})
	default:
		return ErrUnknownLanguage.With(slog.String("lang", l.Lang))
	}

	if werr := format(l.Format).write(ctx, stdout(ctx), rows, func(w io.Writer) error {
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%q\n", r.Position, r.Kind, r.Text); err != nil {
				return err
			}
		}

		return nil
	}); werr != nil {
		return werr
	}

	return err
}

// lexRows tokenizes in and converts each kept token to a row. The rows
// read before a failure are returned with the error.
func lexRows[T any](
	ctx context.Context,
	in *input,
	streaming bool,
	rules []lexer.Rule[T],
	opts []lexer.Option,
	conv func(T) (row, bool),
) ([]row, error) {
	toks, err := tokenize(ctx, in, streaming, rules, opts)

	rows := make([]row, 0, len(toks))

	for _, t := range toks {
		if r, ok := conv(t); ok {
			rows = append(rows, r)
		}
	}

	return rows, err
}

func tokenize[T any](
	ctx context.Context,
	in *input,
	streaming bool,
	rules []lexer.Rule[T],
	opts []lexer.Option,
) ([]T, error) {
	if !streaming {
		text, err := in.ReadAll()
		if err != nil {
			return nil, err
		}

		return lexer.FromString(text, rules, opts...).Tokenize(ctx)
	}

	lx := lexer.New(lexer.NewStream(), rules, opts...)
	prod := lexer.NewProducer[T, struct{}](lx, lexer.WithRefill(in.Refill))

	var toks []T

	for {
		if err := ctx.Err(); err != nil {
			return toks, err
		}

		tok, ok := prod.PollToken()
		if !ok {
			break
		}

		toks = append(toks, tok)
	}

	if err := in.Err(); err != nil {
		return toks, err
	}

	return toks, lx.Err()
}

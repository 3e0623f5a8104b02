package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/ardnew/rulex/lang/calc"
	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/pipeline"
)

// Eval evaluates calculator expressions.
type Eval struct {
	Check  bool   `                                     help:"Also evaluate on the expr VM and fail if the results differ."`
	Format string `default:"text" enum:"text,json,yaml" help:"Output format."                                               short:"o"`
	Source string `default:"-"                          help:"Source input file or '-' for stdin, read when no expression is given." short:"f"`

	Expr []string `arg:"" help:"Expressions to evaluate." name:"expr" optional:""`
}

type result struct {
	Expr    string  `json:"expr"              yaml:"expr"`
	Program string  `json:"program,omitempty" yaml:"program,omitempty"`
	Value   float64 `json:"value"             yaml:"value"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	logger := log.With(slog.String("command", "eval"))

	srcs := e.Expr
	if len(srcs) == 0 {
		in, err := openInput(ctx, e.Source, DefaultChunkSize)
		if err != nil {
			return err
		}

		text, err := in.ReadAll()
		_ = in.Close()

		if err != nil {
			return err
		}

		srcs = []string{text}
	}

	var results []result

	for _, src := range srcs {
		nodes, err := calc.Parse(ctx, src, pipeline.WithLogger(logger))
		if err != nil {
			return err
		}

		for _, n := range nodes {
			r, err := e.eval(n)
			if err != nil {
				return err
			}

			results = append(results, r)
		}
	}

	return format(e.Format).write(ctx, stdout(ctx), results, func(w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintln(w, strconv.FormatFloat(r.Value, 'g', -1, 64)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (e *Eval) eval(n calc.Node) (result, error) {
	r := result{Expr: n.String()}

	v, err := calc.Eval(n)
	if !e.Check {
		r.Value = v

		return r, err
	}

	prog, perr := calc.Compile(n)
	if perr != nil {
		return r, perr
	}

	r.Program = prog.Source()

	w, werr := prog.Run()

	switch {
	case (err == nil) != (werr == nil):
		return r, ErrCheck.With(
			slog.String("expr", r.Expr),
			slog.Any("native", err),
			slog.Any("vm", werr),
		)

	case err != nil:
		return r, err

	case v != w && !(math.IsNaN(v) && math.IsNaN(w)):
		return r, ErrCheck.With(
			slog.String("expr", r.Expr),
			slog.Float64("native", v),
			slog.Float64("vm", w),
		)
	}

	r.Value = v

	return r, nil
}

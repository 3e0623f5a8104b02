package calc

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"
)

// programs caches compiled programs by the xxh3 hash of their source.
var programs sync.Map

type cached struct {
	source  string
	program *vm.Program
}

// Program is an expression compiled for the expr-lang virtual machine.
type Program struct {
	program *vm.Program
	source  string
}

// Source returns the expr-lang source the program was compiled from.
func (p *Program) Source() string { return p.source }

// compileEnv declares the functions available to compiled programs.
func compileEnv() map[string]any {
	return map[string]any{
		"div": func(a, b float64) (float64, error) { return a / b, nil },
	}
}

// Render returns n as expr-lang source. Numbers are float literals and
// division calls div so that a zero divisor is an error, matching [Eval].
func Render(n Node) string {
	var sb strings.Builder

	render(&sb, n)

	return sb.String()
}

func render(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Num:
		s := formatNumber(n.Value)
		sb.WriteString(s)

		if !strings.ContainsRune(s, '.') {
			sb.WriteString(".0")
		}

	case *Group:
		render(sb, n.X)

	case *Unary:
		sb.WriteString("(-")
		render(sb, n.X)
		sb.WriteByte(')')

	case *Binary:
		if n.Op == Slash {
			sb.WriteString("div(")
			render(sb, n.Left)
			sb.WriteString(", ")
			render(sb, n.Right)
			sb.WriteByte(')')

			return
		}

		op := n.Op.String()
		if n.Op == Caret {
			op = "**"
		}

		sb.WriteByte('(')
		render(sb, n.Left)
		sb.WriteString(" " + op + " ")
		render(sb, n.Right)
		sb.WriteByte(')')
	}
}

// Compile compiles n. Programs are cached by source, so compiling equal
// trees twice returns the same program.
func Compile(n Node) (*Program, error) {
	src := Render(n)
	key := xxh3.HashString(src)

	if v, ok := programs.Load(key); ok {
		if c, ok := v.(cached); ok && c.source == src {
			return &Program{program: c.program, source: src}, nil
		}
	}

	program, err := expr.Compile(src, expr.Env(compileEnv()), expr.AsFloat64())
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", src))
	}

	programs.Store(key, cached{source: src, program: program})

	return &Program{program: program, source: src}, nil
}

// Run executes the program.
func (p *Program) Run() (float64, error) {
	var zero bool

	env := map[string]any{
		"div": func(a, b float64) (float64, error) {
			if b == 0 {
				zero = true

				return 0, ErrDivideByZero
			}

			return a / b, nil
		},
	}

	out, err := vm.Run(p.program, env)

	switch {
	case zero:
		return 0, ErrDivideByZero.With(slog.String("source", p.source))
	case err != nil:
		return 0, ErrEvaluate.Wrap(err).With(slog.String("source", p.source))
	}

	v, ok := out.(float64)
	if !ok {
		return 0, ErrEvaluate.With(
			slog.String("source", p.source),
			slog.Any("result", out),
		)
	}

	return v, nil
}

// Evaluate compiles and runs n.
func Evaluate(n Node) (float64, error) {
	p, err := Compile(n)
	if err != nil {
		return 0, err
	}

	return p.Run()
}

// ClearCache discards every cached program.
func ClearCache() { programs.Clear() }

package repl

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/ardnew/rulex/lang/calc"
	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/log"
	"github.com/ardnew/rulex/pipeline"
)

// session evaluates input lines and control commands.
type session struct {
	logger log.Logger
	check  bool
	tree   bool
	tokens bool
}

// eval evaluates every expression in line and returns one output line per
// expression, preceded by any requested token and tree listings.
func (s *session) eval(ctx context.Context, line string) ([]string, error) {
	var out []string

	if s.tokens {
		toks, err := calc.NewLexer(line).Tokenize(ctx)
		if err != nil {
			return nil, err
		}

		var sb strings.Builder

		for _, t := range toks {
			if lexer.IsTrivia(t) {
				continue
			}

			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(t.Kind.String() + "(" + strconv.Quote(t.Text) + ")")
		}

		out = append(out, sb.String())
	}

	nodes, err := calc.Parse(ctx, line, pipeline.WithLogger(s.logger))
	if err != nil {
		return out, err
	}

	for _, n := range nodes {
		if s.tree {
			out = append(out, n.String())
		}

		v, err := calc.Eval(n)
		if err != nil {
			return out, err
		}

		if s.check {
			w, err := calc.Evaluate(n)
			if err != nil {
				return out, err
			}

			if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
				s.logger.WarnContext(ctx, "evaluators disagree",
					slog.String("expr", n.String()),
					slog.Float64("native", v),
					slog.Float64("vm", w),
				)
			}
		}

		out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
	}

	return out, nil
}

// action is what the REPL does after a control command.
type action int

const (
	actionPrint action = iota
	actionClear
	actionQuit
)

// control runs the command named by line.
func (s *session) control(line string) (string, action, error) {
	name := strings.TrimSpace(line)

	toggle := func(flag *bool, what string) string {
		*flag = !*flag
		if *flag {
			return what + " on"
		}

		return what + " off"
	}

	switch name {
	case "help":
		return helpMessage(), actionPrint, nil
	case "check":
		return toggle(&s.check, "check"), actionPrint, nil
	case "tree":
		return toggle(&s.tree, "tree"), actionPrint, nil
	case "tokens":
		return toggle(&s.tokens, "tokens"), actionPrint, nil
	case "clear":
		return "", actionClear, nil
	case "quit", "exit":
		return "", actionQuit, nil
	}

	return "", actionPrint, ErrUnknownCommand.With(slog.String("command", name))
}

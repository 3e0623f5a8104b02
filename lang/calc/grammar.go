package calc

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/rulex/parser"
)

// Binding powers. Left-associative operators bind tighter on their right.
const (
	bpSum     = 10
	bpProduct = 20
	bpNegate  = 25
	bpPower   = 30
)

// table is the operator grammar.
type table struct{}

func (table) PrefixBinding(t Token) (int, bool) {
	switch t.Kind {
	case Number, LParen:
		return 0, true
	case Minus:
		return bpNegate, true
	}

	return 0, false
}

func (table) InfixBinding(t Token) (int, int, bool) {
	switch t.Kind {
	case Plus, Minus:
		return bpSum, bpSum + 1, true
	case Star, Slash:
		return bpProduct, bpProduct + 1, true
	case Caret:
		return bpPower + 1, bpPower, true
	}

	return 0, 0, false
}

func (table) ParsePrefix(
	c parser.Context[Token],
	t Token,
	bp int,
	recurse parser.Recurse[Token, Node],
) (Node, error) {
	switch t.Kind {
	case Number:
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, ErrSyntax.Wrap(err).With(slog.Any("position", t.Pos))
		}

		return &Num{Text: t.Text, Pos: t.Pos, Value: v}, nil

	case LParen:
		inner, err := recurse(c, 0)
		if err != nil {
			return nil, err
		}

		end, ok := c.Advance()
		if !ok {
			return nil, parser.ErrIncomplete.With(
				slog.String("expected", RParen.String()),
				slog.Any("open", t.Pos),
			)
		}

		if end.Kind != RParen {
			return nil, ErrSyntax.With(
				slog.String("expected", RParen.String()),
				slog.String("found", end.String()),
				slog.Any("position", end.Pos),
			)
		}

		return &Group{X: inner, Open: t.Pos, Close: end.Pos}, nil

	case Minus:
		x, err := recurse(c, bp)
		if err != nil {
			return nil, err
		}

		return &Unary{Op: Minus, X: x, Pos: t.Pos}, nil
	}

	return nil, parser.ErrNoPrefix.With(slog.String("token", t.String()))
}

func (table) ParseInfix(
	c parser.Context[Token],
	left Node,
	op Token,
	right int,
	recurse parser.Recurse[Token, Node],
) (Node, error) {
	rhs, err := recurse(c, right)
	if err != nil {
		return nil, err
	}

	return &Binary{Op: op.Kind, Left: left, Right: rhs}, nil
}

// Expression returns the expression parser.
func Expression(opts ...parser.PrattOption) *parser.Pratt[Token, Node] {
	return parser.NewPratt[Token, Node](table{}, append([]parser.PrattOption{parser.WithName("expression")}, opts...)...)
}

// Grammar returns the parsing rules of the language. It expects the
// significant tokens only; see [Significant].
func Grammar(opts ...parser.PrattOption) []parser.Rule[Token, Node] {
	return []parser.Rule[Token, Node]{Expression(opts...)}
}

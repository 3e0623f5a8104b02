package calc

import (
	"log/slog"
	"math"
)

// Eval computes the value of n.
func Eval(n Node) (float64, error) {
	switch n := n.(type) {
	case *Num:
		return n.Value, nil

	case *Unary:
		x, err := Eval(n.X)
		if err != nil {
			return 0, err
		}

		if n.Op != Minus {
			return 0, ErrUnknownOperator.With(slog.String("op", n.Op.String()))
		}

		return -x, nil

	case *Binary:
		l, err := Eval(n.Left)
		if err != nil {
			return 0, err
		}

		r, err := Eval(n.Right)
		if err != nil {
			return 0, err
		}

		return apply(n, l, r)

	case *Group:
		return Eval(n.X)
	}

	return 0, ErrUnknownOperator.With(slog.String("node", n.String()))
}

func apply(n *Binary, l, r float64) (float64, error) {
	switch n.Op {
	case Plus:
		return l + r, nil
	case Minus:
		return l - r, nil
	case Star:
		return l * r, nil
	case Slash:
		if r == 0 {
			pos, _ := n.Right.Position()

			return 0, ErrDivideByZero.With(slog.Any("position", pos))
		}

		return l / r, nil
	case Caret:
		return math.Pow(l, r), nil
	}

	return 0, ErrUnknownOperator.With(slog.String("op", n.Op.String()))
}

package calc

import (
	"strconv"

	"github.com/ardnew/rulex/source"
)

// Node is an expression tree.
type Node interface {
	source.Spanned
	String() string
	node()
}

// Num is a numeric literal.
type Num struct {
	Text  string
	Pos   source.Position
	Value float64
}

// Unary is a negation.
type Unary struct {
	X   Node
	Pos source.Position
	Op  Kind
}

// Binary is a binary operation.
type Binary struct {
	Left  Node
	Right Node
	Op    Kind
}

// Group is a parenthesized expression. It prints as its operand.
type Group struct {
	X     Node
	Open  source.Position
	Close source.Position
}

func (*Num) node()    {}
func (*Unary) node()  {}
func (*Binary) node() {}
func (*Group) node()  {}

func (n *Num) Position() (source.Position, bool) { return n.Pos, true }

func (n *Num) Span() (source.Span, bool) {
	return source.Span{Start: n.Pos, End: n.Pos.AdvanceString(n.Text)}, true
}

func (n *Num) String() string { return n.Text }

func (n *Unary) Position() (source.Position, bool) { return n.Pos, true }

func (n *Unary) Span() (source.Span, bool) {
	x, _ := n.X.Span()

	return source.Span{Start: n.Pos, End: x.End}, true
}

func (n *Unary) String() string { return "Unary(" + n.Op.String() + ", " + n.X.String() + ")" }

func (n *Binary) Position() (source.Position, bool) { return n.Left.Position() }

func (n *Binary) Span() (source.Span, bool) {
	l, _ := n.Left.Span()
	r, _ := n.Right.Span()

	return source.Span{Start: l.Start, End: r.End}, true
}

func (n *Binary) String() string {
	return "Binary(" + n.Op.String() + ", " + n.Left.String() + ", " + n.Right.String() + ")"
}

func (n *Group) Position() (source.Position, bool) { return n.Open, true }

// Span covers both parentheses.
func (n *Group) Span() (source.Span, bool) {
	return source.Span{Start: n.Open, End: n.Close.Advance(')')}, true
}

func (n *Group) String() string { return n.X.String() }

// Tree returns n as nested maps for encoding.
func Tree(n Node) map[string]any {
	sp, _ := n.Span()
	m := map[string]any{"span": sp.String()}

	switch n := n.(type) {
	case *Num:
		m["number"] = n.Value
	case *Unary:
		m["op"] = n.Op.String()
		m["operand"] = Tree(n.X)
	case *Binary:
		m["op"] = n.Op.String()
		m["left"] = Tree(n.Left)
		m["right"] = Tree(n.Right)
	case *Group:
		m["group"] = Tree(n.X)
	}

	return m
}

// formatNumber renders v as the shortest decimal that parses back to v.
func formatNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

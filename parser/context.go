package parser

import (
	"github.com/ardnew/rulex/rule"
	"github.com/ardnew/rulex/source"
)

// Context is a token scanning context.
type Context[T any] = rule.Context[T]

// Rule is a parsing rule producing nodes of type N from tokens of type T.
type Rule[T, N any] = rule.Rule[T, Context[T], N]

// Func adapts functions to a parsing [Rule].
type Func[T, N any] = rule.Func[T, Context[T], N]

// Node is the capability a node type may expose to report where it begins.
type Node = source.Located

// Stateful is implemented by nodes that carry a mutable state machine.
// Transition applies a trigger and reports whether the state changed.
type Stateful[S any] interface {
	State() S
	SetState(S)
	Transition(trigger any) bool
}

// SpanOf returns the extent of node n. Nodes that only report a position
// span that single position.
func SpanOf(n any) (source.Span, bool) { return source.SpanOf(n) }

// tracker derives the position of a token context from its tokens.
type tracker struct {
	last source.Position
}

func newTracker() tracker { return tracker{last: source.Start()} }

// consumed records tok as the last token read.
func (t *tracker) consumed(tok any) {
	if p, ok := source.PositionOf(tok); ok {
		t.last = p
	}
}

// at returns the position of the current token if it has one.
func (t *tracker) at(cur any, ok bool) source.Position {
	if ok {
		if p, has := source.PositionOf(cur); has {
			return p
		}
	}

	return t.last
}

package lexer

import (
	"github.com/ardnew/rulex/rule"
	"github.com/ardnew/rulex/source"
)

// Context is a character scanning context.
type Context interface {
	rule.Context[rune]

	// ConsumeWhile advances past the longest run of runes satisfying pred
	// and returns the consumed text.
	ConsumeWhile(pred func(rune) bool) source.TextSlice
}

// Rule is a lexing rule producing tokens of type O.
type Rule[O any] = rule.Rule[rune, Context, O]

// Func adapts functions to a lexing [Rule].
type Func[O any] = rule.Func[rune, Context, O]

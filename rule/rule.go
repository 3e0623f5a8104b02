package rule

import (
	"cmp"
	"iter"
	"slices"
	"strconv"
)

// Verdict is the answer of [Rule.QuickCheck].
type Verdict int8

const (
	// Unknown means the rule must be tried.
	Unknown Verdict = iota
	// Possible means the rule might match.
	Possible
	// Impossible means the rule cannot match.
	Impossible
)

func (v Verdict) String() string {
	switch v {
	case Unknown:
		return "unknown"
	case Possible:
		return "possible"
	case Impossible:
		return "impossible"
	default:
		return "Verdict(" + strconv.Itoa(int(v)) + ")"
	}
}

// VerdictOf returns [Possible] if ok is true and [Impossible] otherwise.
func VerdictOf(ok bool) Verdict {
	if ok {
		return Possible
	}

	return Impossible
}

// Rule matches one output of type O from a context C over items of type T.
//
// TryMatch returns the output and true after consuming at least one item,
// or false. The engine restores the context after a failed attempt, so
// TryMatch need not undo partial progress itself.
//
// QuickCheck receives the next item (ok is false at the end of buffered
// input). Returning [Impossible] is a promise that TryMatch would fail.
type Rule[T, C, O any] interface {
	TryMatch(c C) (O, bool)
	Priority() int
	QuickCheck(hint T, ok bool) Verdict
}

// Base supplies the default Priority (0) and QuickCheck ([Unknown]) for
// rule types that embed it.
type Base[T any] struct{}

// Priority returns 0.
func (Base[T]) Priority() int { return 0 }

// QuickCheck returns [Unknown].
func (Base[T]) QuickCheck(T, bool) Verdict { return Unknown }

// Func adapts plain functions to a [Rule].
type Func[T, C, O any] struct {
	Name  string
	Match func(c C) (O, bool)
	Rank  int
	Check func(hint T, ok bool) Verdict
}

// TryMatch calls f.Match.
func (f Func[T, C, O]) TryMatch(c C) (O, bool) { return f.Match(c) }

// Priority returns f.Rank.
func (f Func[T, C, O]) Priority() int { return f.Rank }

// QuickCheck calls f.Check, or returns [Unknown] if it is nil.
func (f Func[T, C, O]) QuickCheck(hint T, ok bool) Verdict {
	if f.Check == nil {
		return Unknown
	}

	return f.Check(hint, ok)
}

// String returns f.Name.
func (f Func[T, C, O]) String() string { return f.Name }

// Set is an immutable list of rules ordered by descending priority.
// Rules with equal priority keep their registration order.
type Set[T, C, O any] struct {
	rules []Rule[T, C, O]
}

// NewSet returns the rules sorted by descending priority.
func NewSet[T, C, O any](rules ...Rule[T, C, O]) Set[T, C, O] {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule[T, C, O]) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})

	return Set[T, C, O]{rules: sorted}
}

// Len returns the number of rules.
func (s Set[T, C, O]) Len() int { return len(s.rules) }

// At returns the i'th rule in priority order.
func (s Set[T, C, O]) At(i int) Rule[T, C, O] { return s.rules[i] }

// All returns an iterator over the rules in priority order.
func (s Set[T, C, O]) All() iter.Seq2[int, Rule[T, C, O]] {
	return slices.All(s.rules)
}

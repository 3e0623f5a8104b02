// Package rule implements the matching loop shared by lexers and parsers.
//
// A [Rule] inspects a scanning [Context] and either produces one output,
// having consumed input, or reports no match. An [Engine] tries rules in
// descending [Rule.Priority] order and returns the first match; every
// attempt is bracketed by a checkpoint, so a failed attempt leaves the
// context exactly as it was.
//
// [Rule.QuickCheck] is a cheap pre-filter on the next input item. A rule
// that answers [Impossible] for a hint promises that [Rule.TryMatch] would
// fail on input starting with that hint, and the engine skips it without
// taking a checkpoint. With [WithLookup], the engine precomputes those
// answers per discriminant value at construction; the observable results
// are identical to the plain scan.
//
// Two failure modes are distinct: no rule matching is an ordinary result
// ([ErrNoMatch] from [Engine.Collect]) that the caller interprets, while a
// rule reporting success without consuming input is a broken rule and
// fails with [ErrZeroProgress].
package rule

// Package calc is an arithmetic expression language.
//
// Expressions hold decimal numbers, the binary operators + - * / and ^,
// unary minus, and parentheses. ^ binds tightest and associates to the
// right; unary minus binds tighter than * and /, so -2^2 is -(2^2).
//
// [Rules] lexes text into [Token] values and [Grammar] parses significant
// tokens into [Node] trees. A tree is evaluated either directly with
// [Eval] or by compiling it to an expr-lang program with [Compile]; both
// give the same result.
package calc

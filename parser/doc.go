// Package parser builds trees from tokens with a [rule.Engine] over tokens.
//
// Three token contexts implement [Context]:
//
//   - [Tokens] holds a complete token slice.
//   - [Stream] is fed with [Stream.Push] and reaches end of input only
//     after [Stream.Finish] once every pushed token has been read.
//   - [Window] pulls tokens on demand from a source and retains a bounded
//     history for backtracking.
//
// A [Parser] drives parsing rules over any of them. [Pratt] is a rule that
// parses operator expressions from a binding-power [Table], and a
// [Consumer] exposes a Parser as the tree side of a streaming pipeline.
//
// Token contexts report the position of the current token when the token
// type implements [source.Located], and otherwise the position of the last
// token consumed.
package parser

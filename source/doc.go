// Package source defines the value types shared by every scanning context:
// a [Position] in the input, a restorable [Checkpoint], an immutable
// [TextSlice] view into the input, and the [Located] and [Spanned]
// capabilities through which tokens and nodes report where they came from.
package source

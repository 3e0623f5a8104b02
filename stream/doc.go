// Package stream defines the signal protocol that couples a token producer
// to a tree-building consumer.
//
// A [Signal] is a closed tagged union identified by its [Kind]. Each side
// of a pipeline reports its state through [Outbound] and accepts
// instructions through [Inbound]; the two roles are separate interfaces so a
// decorator can wrap one side without reimplementing the other.
package stream

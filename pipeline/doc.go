// Package pipeline connects a token producer to a tree consumer.
//
// [Run] drives a producer and a consumer through the [stream.Signal]
// protocol: the consumer asks for tokens with [stream.KindNeedToken], the
// driver relays the request and the producer's answer, and nodes are
// collected as the consumer reports them. [Batch] is the eager path,
// tokenizing all input before parsing it; both paths yield the same nodes
// for the same input and rules.
//
// A [Filter] wraps a producer to drop or replace tokens, for example to
// remove whitespace before parsing, without either side knowing.
package pipeline

package stream

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant of a [Signal].
type Kind uint8

const (
	_ Kind = iota
	// KindRequestToken asks a producer for Count more tokens.
	KindRequestToken
	// KindSupplyToken carries one Token from a producer.
	KindSupplyToken
	// KindProduced carries Nodes completed by a consumer.
	KindProduced
	// KindNeedToken reports that a consumer needs Count more tokens.
	KindNeedToken
	// KindFinished carries the final Nodes of a consumer.
	KindFinished
	// KindBlocked reports that a side cannot make progress, with a Reason.
	KindBlocked
	// KindEndOfInput reports that no more tokens will be supplied.
	KindEndOfInput
	// KindAbort halts the pipeline, with a Reason.
	KindAbort
)

var kindNames = [...]string{
	KindRequestToken: "RequestToken",
	KindSupplyToken:  "SupplyToken",
	KindProduced:     "Produced",
	KindNeedToken:    "NeedToken",
	KindFinished:     "Finished",
	KindBlocked:      "Blocked",
	KindEndOfInput:   "EndOfInput",
	KindAbort:        "Abort",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Signal is one message of the protocol. Only the fields belonging to Kind
// are meaningful.
type Signal[T, N any] struct {
	Token  T
	Nodes  []N
	Reason string
	Count  int
	Kind   Kind
}

// RequestToken returns a KindRequestToken signal for n tokens.
func RequestToken[T, N any](n int) Signal[T, N] {
	return Signal[T, N]{Kind: KindRequestToken, Count: n}
}

// SupplyToken returns a KindSupplyToken signal carrying tok.
func SupplyToken[T, N any](tok T) Signal[T, N] {
	return Signal[T, N]{Kind: KindSupplyToken, Token: tok}
}

// Produced returns a KindProduced signal carrying nodes.
func Produced[T, N any](nodes []N) Signal[T, N] {
	return Signal[T, N]{Kind: KindProduced, Nodes: nodes}
}

// NeedToken returns a KindNeedToken signal for n tokens.
func NeedToken[T, N any](n int) Signal[T, N] {
	return Signal[T, N]{Kind: KindNeedToken, Count: n}
}

// Finished returns a KindFinished signal carrying nodes.
func Finished[T, N any](nodes []N) Signal[T, N] {
	return Signal[T, N]{Kind: KindFinished, Nodes: nodes}
}

// Blocked returns a KindBlocked signal.
func Blocked[T, N any](reason string) Signal[T, N] {
	return Signal[T, N]{Kind: KindBlocked, Reason: reason}
}

// EndOfInput returns a KindEndOfInput signal.
func EndOfInput[T, N any]() Signal[T, N] {
	return Signal[T, N]{Kind: KindEndOfInput}
}

// Abort returns a KindAbort signal.
func Abort[T, N any](reason string) Signal[T, N] {
	return Signal[T, N]{Kind: KindAbort, Reason: reason}
}

// String formats s as its variant with payload, such as "NeedToken(1)".
func (s Signal[T, N]) String() string {
	switch s.Kind {
	case KindRequestToken, KindNeedToken:
		return s.Kind.String() + "(" + strconv.Itoa(s.Count) + ")"
	case KindSupplyToken:
		return fmt.Sprintf("%s(%v)", s.Kind, s.Token)
	case KindProduced, KindFinished:
		return s.Kind.String() + "(" + strconv.Itoa(len(s.Nodes)) + " nodes)"
	case KindBlocked, KindAbort:
		return s.Kind.String() + "(" + strconv.Quote(s.Reason) + ")"
	default:
		return s.Kind.String()
	}
}

// Outbound reports the next signal reflecting its current state, or false
// if it has nothing to report.
type Outbound[T, N any] interface {
	NextSignal() (Signal[T, N], bool)
}

// Inbound accepts a signal and updates its state.
type Inbound[T, N any] interface {
	HandleSignal(Signal[T, N])
}

// Endpoint is one side of a pipeline.
type Endpoint[T, N any] interface {
	Outbound[T, N]
	Inbound[T, N]
}

// Producer yields tokens on demand.
type Producer[T any] interface {
	PollToken() (T, bool)
}

// Consumer accepts tokens and returns the nodes they complete.
// Finish declares the end of input and returns the remaining nodes.
type Consumer[T, N any] interface {
	PushToken(tok T) []N
	Finish() []N
}

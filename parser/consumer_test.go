package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/rulex/stream"
)

func TestConsumer_MatchesBatch(t *testing.T) {
	inputs := []string{
		"1+2*3",
		"1 + 2 * 3 ; 4",
		"3 + 4 * (2 - 1) / 5; 2^3^2; -1",
		"1 2 3",
	}

	for _, input := range inputs {
		want, err := FromTokens(scan(input), grammar()).Parse(context.Background())
		if err != nil {
			t.Fatal(err)
		}

		c := NewConsumer(grammar())

		var got []string
		for _, tk := range scan(input) {
			got = append(got, c.PushToken(tk)...)
		}

		got = append(got, c.Finish()...)

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q: consumer differs (-batch +consumer):\n%s", input, diff)
		}
	}
}

func TestConsumer_WaitsForLookahead(t *testing.T) {
	c := NewConsumer(grammar())
	toks := scan("1 + 2 ;")

	steps := []struct {
		push tok
		want []string
	}{
		{toks[0], nil},
		{toks[1], nil},
		{toks[2], nil},
		{toks[3], []string{"(+ 1 2)"}},
	}

	for _, s := range steps {
		if diff := cmp.Diff(s.want, c.PushToken(s.push)); diff != "" {
			t.Errorf("after %q (-want +got):\n%s", s.push.text, diff)
		}
	}

	if diff := cmp.Diff([]string{";"}, c.Finish()); diff != "" {
		t.Errorf("after finish (-want +got):\n%s", diff)
	}

	if c.Stream().Buffered() != 0 || c.Stream().Index() != 4 {
		t.Errorf("expected consumed tokens released, got %d buffered", c.Stream().Buffered())
	}
}

func TestConsumer_Signals(t *testing.T) {
	c := NewConsumer(grammar())
	toks := scan("7 ; 8")

	kind := func() string {
		sig, _ := c.NextSignal()

		return sig.String()
	}

	if got := kind(); got != "NeedToken(1)" {
		t.Errorf("expected NeedToken(1), got %s", got)
	}

	for _, tk := range toks {
		c.HandleSignal(stream.SupplyToken[tok, string](tk))
	}

	if got := kind(); got != "Produced(2 nodes)" {
		t.Errorf("expected Produced(2 nodes), got %s", got)
	}

	if got := kind(); got != "NeedToken(1)" {
		t.Errorf("expected NeedToken(1) after draining, got %s", got)
	}

	c.HandleSignal(stream.EndOfInput[tok, string]())

	if got := kind(); got != "Produced(1 nodes)" {
		t.Errorf("expected the final node, got %s", got)
	}

	if got := kind(); got != "Finished(0 nodes)" {
		t.Errorf("expected Finished, got %s", got)
	}
}

func TestConsumer_BlockedOnFinishedGarbage(t *testing.T) {
	c := NewConsumer(grammar())

	c.PushToken(tok{text: "*"})
	c.Finish()

	sig, _ := c.NextSignal()
	if sig.Kind != stream.KindBlocked || !strings.Contains(sig.Reason, "no rule matched") {
		t.Errorf("expected Blocked no-match, got %v", sig)
	}
}

func TestConsumer_Abort(t *testing.T) {
	c := NewConsumer(grammar())

	c.HandleSignal(stream.Abort[tok, string]("lexer failed"))

	if reason, ok := c.Aborted(); !ok || reason != "lexer failed" {
		t.Errorf("expected abort recorded, got %q %v", reason, ok)
	}

	if sig, _ := c.NextSignal(); sig.Kind != stream.KindAbort || sig.Reason != "lexer failed" {
		t.Errorf("expected Abort, got %v", sig)
	}
}

package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/rulex/lang/calc"
	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/parser"
	"github.com/ardnew/rulex/pipeline"
	"github.com/ardnew/rulex/stream"
)

type (
	tok  = calc.Token
	node = calc.Node
	sig  = stream.Signal[tok, node]
)

func streaming(t *testing.T, input string) ([]string, error) {
	t.Helper()

	prod := lexer.NewProducer[tok, node](calc.NewLexer(input))
	filter := pipeline.NewFilter[tok, node](prod, calc.Significant)

	nodes, err := pipeline.Run[tok, node](context.Background(), filter, parser.NewConsumer(calc.Grammar()))

	return strs(nodes), err
}

func strs(nodes []node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}

	return out
}

func TestRun_MatchesBatch(t *testing.T) {
	inputs := []string{
		"",
		"42",
		"3 + 4 * (2 - 1) / 5",
		"1 2 3",
		"  (1 + 2) * 3 ^ 2 ^ 0.5   7 - -1 ",
	}

	for _, input := range inputs {
		batch, err := calc.Parse(context.Background(), input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}

		got, err := streaming(t, input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}

		if diff := cmp.Diff(strs(batch), got); diff != "" {
			t.Errorf("%q: streaming differs (-batch +stream):\n%s", input, diff)
		}
	}
}

func TestRun_Scenario(t *testing.T) {
	got, err := streaming(t, "3 + 4 * (2 - 1) / 5")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Binary(+, 3, Binary(/, Binary(*, 4, Binary(-, 2, 1)), 5))"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestRun_LexerBlocked(t *testing.T) {
	got, err := streaming(t, "1 2 ? 3")
	if !errors.Is(err, pipeline.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	if diff := cmp.Diff([]string{"1"}, got); diff != "" {
		t.Errorf("expected nodes before the abort (-want +got):\n%s", diff)
	}
}

// scripted replays a fixed list of producer signals and records what it
// receives.
type scripted struct {
	out []sig
	in  []sig
}

func (s *scripted) NextSignal() (sig, bool) {
	if len(s.out) == 0 {
		return sig{}, false
	}

	next := s.out[0]
	s.out = s.out[1:]

	return next, true
}

func (s *scripted) HandleSignal(g sig) { s.in = append(s.in, g) }

// recorder wraps a consumer and records the signals it receives.
type recorder struct {
	*parser.Consumer[tok, node]
	in []sig
}

func (r *recorder) HandleSignal(g sig) {
	r.in = append(r.in, g)
	r.Consumer.HandleSignal(g)
}

func supply(input string) []sig {
	toks, _ := calc.NewLexer(input).Tokenize(context.Background())

	var out []sig
	for _, tk := range toks {
		if _, keep := calc.Significant(tk); keep {
			out = append(out, stream.SupplyToken[tok, node](tk))
		}
	}

	return out
}

func TestRun_AbortPropagation(t *testing.T) {
	prod := &scripted{out: append(supply("1 2 3"), stream.Abort[tok, node]("x"))}
	cons := &recorder{Consumer: parser.NewConsumer(calc.Grammar())}

	nodes, err := pipeline.Run[tok, node](context.Background(), prod, cons)
	if !errors.Is(err, pipeline.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	if diff := cmp.Diff([]string{"1", "2"}, strs(nodes)); diff != "" {
		t.Errorf("expected nodes before the abort (-want +got):\n%s", diff)
	}

	var aborts int
	for _, g := range cons.in {
		if g.Kind == stream.KindAbort {
			aborts++

			if g.Reason != "x" {
				t.Errorf("expected reason x, got %q", g.Reason)
			}
		}
	}

	if aborts != 1 {
		t.Errorf("expected exactly one abort to the consumer, got %d", aborts)
	}

	if last := prod.in[len(prod.in)-1]; last.Kind != stream.KindAbort {
		t.Errorf("expected the producer to receive the abort, got %v", last)
	}
}

func TestRun_ProducerSilentIsEndOfInput(t *testing.T) {
	prod := &scripted{out: supply("6 * 7")}

	nodes, err := pipeline.Run[tok, node](context.Background(), prod, parser.NewConsumer(calc.Grammar()))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"Binary(*, 6, 7)"}, strs(nodes)); diff != "" {
		t.Errorf("unexpected nodes (-want +got):\n%s", diff)
	}

	for _, g := range prod.in {
		if g.Kind != stream.KindRequestToken || g.Count != 1 {
			t.Errorf("expected only RequestToken(1), got %v", g)
		}
	}
}

func TestRun_ConsumerBlocked(t *testing.T) {
	prod := &scripted{out: supply("1 )")}
	cons := &recorder{Consumer: parser.NewConsumer(calc.Grammar())}

	nodes, err := pipeline.Run[tok, node](context.Background(), prod, cons)
	if !errors.Is(err, pipeline.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	if diff := cmp.Diff([]string{"1"}, strs(nodes)); diff != "" {
		t.Errorf("unexpected nodes (-want +got):\n%s", diff)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prod := &scripted{out: supply("1")}

	_, err := pipeline.Run[tok, node](ctx, prod, parser.NewConsumer(calc.Grammar()))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	if len(prod.in) != 1 || prod.in[0].Kind != stream.KindAbort {
		t.Errorf("expected the producer to be aborted, got %v", prod.in)
	}
}

func TestFilter(t *testing.T) {
	prod := &scripted{out: []sig{
		stream.SupplyToken[tok, node](calc.Token{Kind: calc.Space, Text: " "}),
		stream.SupplyToken[tok, node](calc.Token{Kind: calc.Number, Text: "1"}),
		stream.Blocked[tok, node]("wait"),
	}}

	f := pipeline.NewFilter[tok, node](prod, pipeline.Drop(func(t tok) bool { return t.Kind == calc.Space }))

	first, _ := f.NextSignal()
	if first.Kind != stream.KindSupplyToken || first.Token.Text != "1" {
		t.Errorf("expected the number, got %v", first)
	}

	if second, _ := f.NextSignal(); second.Kind != stream.KindBlocked {
		t.Errorf("expected Blocked to pass through, got %v", second)
	}

	if f.Dropped() != 1 {
		t.Errorf("expected one dropped token, got %d", f.Dropped())
	}

	f.HandleSignal(stream.RequestToken[tok, node](2))

	if len(prod.in) != 1 || prod.in[0].Count != 2 {
		t.Errorf("expected request forwarded, got %v", prod.in)
	}
}

package calc

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/rulex/lexer"
	"github.com/ardnew/rulex/parser"
	"github.com/ardnew/rulex/pipeline"
	"github.com/ardnew/rulex/rule"
	"github.com/ardnew/rulex/source"
)

func parseOne(t *testing.T, input string) Node {
	t.Helper()

	nodes, err := Parse(context.Background(), input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}

	if len(nodes) != 1 {
		t.Fatalf("expected one expression in %q, got %d", input, len(nodes))
	}

	return nodes[0]
}

func TestParse_Trees(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+2*3", "Binary(+, 1, Binary(*, 2, 3))"},
		{"1-2-3", "Binary(-, Binary(-, 1, 2), 3)"},
		{"2^3^2", "Binary(^, 2, Binary(^, 3, 2))"},
		{"-2^2", "Unary(-, Binary(^, 2, 2))"},
		{"-2*3", "Binary(*, Unary(-, 2), 3)"},
		{"3 + 4 * (2 - 1) / 5", "Binary(+, 3, Binary(/, Binary(*, 4, Binary(-, 2, 1)), 5))"},
	}

	for _, tt := range tests {
		if got := parseOne(t, tt.input).String(); got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"1 +", "(1", "1 ? 2"} {
		if _, err := Parse(context.Background(), input); !errors.Is(err, rule.ErrNoMatch) {
			t.Errorf("%q: expected ErrNoMatch, got %v", input, err)
		}
	}
}

func TestExpression_Diagnostics(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"(1", parser.ErrIncomplete},
		{"(1 2", ErrSyntax},
		{"1 + )", parser.ErrNoPrefix},
		{"99999" + strings.Repeat("9", 400), ErrSyntax},
	}

	for _, tt := range tests {
		toks, err := NewLexer(tt.input).Tokenize(context.Background())
		if err != nil {
			t.Fatal(err)
		}

		c := parser.NewTokens(pipeline.Apply(toks, Significant))

		if _, err := Expression().Parse(c, 0); !errors.Is(err, tt.want) {
			t.Errorf("%.10q: expected %v, got %v", tt.input, tt.want, err)
		}
	}
}

func TestEval_MatchesEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1+2*3", 7},
		{"1-2-3", -4},
		{"2^3^2", 512},
		{"-2^2", -4},
		{"3 + 4 * (2 - 1) / 5", 3.8},
		{"7 / 2", 3.5},
		{"0.5 * 0.5", 0.25},
	}

	for _, tt := range tests {
		n := parseOne(t, tt.input)

		native, err := Eval(n)
		if err != nil {
			t.Fatalf("%q: %v", tt.input, err)
		}

		vm, err := Evaluate(n)
		if err != nil {
			t.Fatalf("%q: %v", tt.input, err)
		}

		if math.Abs(native-tt.want) > 1e-12 || native != vm {
			t.Errorf("%q: expected %v, got native %v and compiled %v", tt.input, tt.want, native, vm)
		}
	}
}

func TestEval_DivideByZero(t *testing.T) {
	n := parseOne(t, "1 / (2 - 2)")

	if _, err := Eval(n); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero from Eval, got %v", err)
	}

	if _, err := Evaluate(n); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero from Evaluate, got %v", err)
	}
}

func TestRender(t *testing.T) {
	got := Render(parseOne(t, "-1.5 + 2 ^ 3 / 4"))
	want := "((-1.5) + div((2.0 ** 3.0), 4.0))"

	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCompile_Cached(t *testing.T) {
	ClearCache()

	a, err := Compile(parseOne(t, "1 + 2"))
	if err != nil {
		t.Fatal(err)
	}

	b, err := Compile(parseOne(t, "1+2"))
	if err != nil {
		t.Fatal(err)
	}

	if a.program != b.program {
		t.Error("expected equal trees to share a compiled program")
	}

	if a.Source() != "(1.0 + 2.0)" {
		t.Errorf("unexpected source %q", a.Source())
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		input string
		start source.Position
		end   source.Position
	}{
		{"  12 * (3 + 45)", source.At(1, 3, 2), source.At(1, 16, 15)},
		{"(1+2)", source.At(1, 1, 0), source.At(1, 6, 5)},
		{"((7))", source.At(1, 1, 0), source.At(1, 6, 5)},
		{"-(1) ^ 2", source.At(1, 1, 0), source.At(1, 9, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sp, ok := parseOne(t, tt.input).Span()
			if !ok {
				t.Fatal("expected a span")
			}

			if want := (source.Span{Start: tt.start, End: tt.end}); sp != want {
				t.Errorf("expected %v, got %v", want, sp)
			}
		})
	}
}

func TestGroup(t *testing.T) {
	n := parseOne(t, "(1 + 2) * 3")

	if got := n.String(); got != "Binary(*, Binary(+, 1, 2), 3)" {
		t.Errorf("expected parentheses not to print, got %q", got)
	}

	b, ok := n.(*Binary)
	if !ok {
		t.Fatalf("expected *Binary, got %T", n)
	}

	g, ok := b.Left.(*Group)
	if !ok {
		t.Fatalf("expected *Group on the left, got %T", b.Left)
	}

	if g.Open != source.At(1, 1, 0) || g.Close != source.At(1, 7, 6) {
		t.Errorf("unexpected parentheses %v %v", g.Open, g.Close)
	}

	if v, err := Eval(n); err != nil || v != 9 {
		t.Errorf("expected 9, got %v %v", v, err)
	}

	if src := Render(n); src != "((1.0 + 2.0) * 3.0)" {
		t.Errorf("unexpected source %q", src)
	}

	if _, ok := Tree(n)["left"].(map[string]any)["group"]; !ok {
		t.Errorf("expected a group in %v", Tree(n))
	}

	if m := Tree(parseOne(t, "-1")); m["op"] != "-" || m["operand"].(map[string]any)["number"] != 1.0 {
		t.Errorf("unexpected tree %v", m)
	}
}

func TestParseStream_MatchesParse(t *testing.T) {
	input := "12 + 3.5 * 2\n(1 - 4) ^ 2 / 3\n-7"

	want, err := Parse(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	for _, size := range []int{1, 2, 3, 7, len(input)} {
		rest := input
		refill := func() (string, bool) {
			n := min(size, len(rest))
			chunk := rest[:n]
			rest = rest[n:]

			return chunk, rest != ""
		}

		lx := lexer.New(lexer.Context(lexer.NewStream()), Rules())

		got, err := ParseStream(context.Background(), lx, refill)
		if err != nil {
			t.Fatalf("chunk %d: %v", size, err)
		}

		if diff := cmp.Diff(strs(want), strs(got)); diff != "" {
			t.Errorf("chunk %d: streaming differs (-batch +stream):\n%s", size, diff)
		}
	}
}

func TestParseStream_SplitFraction(t *testing.T) {
	chunks := []string{"1.", "5", " * 2."}
	refill := func() (string, bool) {
		if len(chunks) == 0 {
			return "", false
		}

		c := chunks[0]
		chunks = chunks[1:]

		return c, len(chunks) > 0
	}

	lx := lexer.New(lexer.Context(lexer.NewStream()), Rules())

	got, err := ParseStream(context.Background(), lx, refill)
	if err == nil {
		t.Fatalf("expected the trailing dot to fail, got %v", strs(got))
	}

	chunks = []string{"1.", "5", " * 2.", "0"}
	lx = lexer.New(lexer.Context(lexer.NewStream()), Rules())

	got, err = ParseStream(context.Background(), lx, refill)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"Binary(*, 1.5, 2.0)"}, strs(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseStream_Aborts(t *testing.T) {
	lx := lexer.New(lexer.Context(lexer.NewStreamString("1 + 2 ? 3")), Rules())

	got, err := ParseStream(context.Background(), lx, nil)
	if err == nil || !strings.Contains(err.Error(), "aborted") {
		t.Fatalf("expected abort, got %v", err)
	}

	if len(got) != 0 {
		t.Errorf("expected no nodes before the failure, got %v", strs(got))
	}
}

func strs(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}

	return out
}

var _ parser.Node = (*Num)(nil)

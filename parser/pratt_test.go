package parser

import (
	"errors"
	"testing"
)

func TestPratt_Parse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"precedence", "1+2*3", "(+ 1 (* 2 3))"},
		{"left associative", "1-2-3", "(- (- 1 2) 3)"},
		{"right associative", "2^3^2", "(^ 2 (^ 3 2))"},
		{"parentheses", "(1+2)*3", "(* (+ 1 2) 3)"},
		{"unary", "-2^2", "(neg (^ 2 2))"},
		{"mixed", "3 + 4 * (2 - 1) / 5", "(+ 3 (/ (* 4 (- 2 1)) 5))"},
		{"single", "42", "42"},
	}

	p := NewPratt[tok, string](sexpr{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewTokens(scan(tt.input))

			got, err := p.Parse(c, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}

			if !c.IsEOF() {
				t.Errorf("expected all tokens consumed, %d left", len(c.Remaining()))
			}
		})
	}
}

func TestPratt_StopsAtLowerBindingPower(t *testing.T) {
	p := NewPratt[tok, string](sexpr{})
	c := NewTokens(scan("2*3+4"))

	got, err := p.Parse(c, 15)
	if err != nil {
		t.Fatal(err)
	}

	if got != "(* 2 3)" {
		t.Errorf("expected (* 2 3), got %s", got)
	}

	if next, _ := c.Peek(); next.text != "+" {
		t.Errorf("expected to stop before +, got %q", next.text)
	}
}

func TestPratt_Failures(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrIncomplete},
		{"1 +", ErrIncomplete},
		{"(1 + 2", ErrIncomplete},
		{"* 2", ErrNoPrefix},
		{"1 + * 2", ErrNoPrefix},
	}

	p := NewPratt[tok, string](sexpr{})

	for _, tt := range tests {
		_, err := p.Parse(NewTokens(scan(tt.input)), 0)
		if !errors.Is(err, tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.want, err)
		}
	}
}

func TestPratt_RuleRestoresOnFailure(t *testing.T) {
	p := New(Context[tok](NewTokens(scan("1 + ;"))), grammar())

	if _, ok, err := p.Next(); ok || err != nil {
		t.Fatalf("expected no match, got %v %v", ok, err)
	}

	if p.Context().Index() != 0 {
		t.Errorf("expected context restored to 0, got %d", p.Context().Index())
	}
}

func TestPratt_QuickCheck(t *testing.T) {
	p := NewPratt[tok, string](sexpr{})

	for _, tt := range []struct {
		tok  tok
		ok   bool
		want string
	}{
		{tok{text: "7"}, true, "possible"},
		{tok{text: "("}, true, "possible"},
		{tok{text: "*"}, true, "impossible"},
		{tok{}, false, "impossible"},
	} {
		if got := p.QuickCheck(tt.tok, tt.ok).String(); got != tt.want {
			t.Errorf("QuickCheck(%q): expected %s, got %s", tt.tok.text, tt.want, got)
		}
	}
}

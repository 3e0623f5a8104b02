package repl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/rulex/lang/calc"
)

func TestSession_Eval(t *testing.T) {
	tests := []struct {
		name   string
		setup  []string
		line   string
		want   []string
		wantOK bool
	}{
		{"value", nil, "1 + 2 * 3", []string{"7"}, true},
		{"two expressions", nil, "2 ^ 3 4", []string{"8", "4"}, true},
		{"tree", []string{"tree"}, "-1", []string{"Unary(-, 1)", "-1"}, true},
		{"tokens", []string{"tokens"}, "1+2", []string{`number("1") +("+") number("2")`, "3"}, true},
		{"checked", []string{"check"}, "10 / 4", []string{"2.5"}, true},
		{"syntax error", nil, "1 +", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s session

			for _, c := range tt.setup {
				if _, _, err := s.control(c); err != nil {
					t.Fatal(err)
				}
			}

			got, err := s.eval(context.Background(), tt.line)
			if (err == nil) != tt.wantOK {
				t.Fatalf("unexpected error state: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSession_DivideByZero(t *testing.T) {
	s := session{check: true}

	if _, err := s.eval(context.Background(), "1 / 0"); !errors.Is(err, calc.ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
}

func TestSession_Control(t *testing.T) {
	var s session

	tests := []struct {
		line string
		out  string
		act  action
	}{
		{"tree", "tree on", actionPrint},
		{"tree", "tree off", actionPrint},
		{" check ", "check on", actionPrint},
		{"clear", "", actionClear},
		{"quit", "", actionQuit},
	}

	for _, tt := range tests {
		out, act, err := s.control(tt.line)
		if err != nil {
			t.Fatalf("%s: %v", tt.line, err)
		}

		if out != tt.out || act != tt.act {
			t.Errorf("%s: expected (%q, %d), got (%q, %d)", tt.line, tt.out, tt.act, out, act)
		}
	}

	if _, _, err := s.control("bogus"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

package source

import (
	"testing"
)

func TestPosition_Start(t *testing.T) {
	p := Start()
	if p != At(1, 1, 0) {
		t.Errorf("expected 1:1@0, got %+v", p)
	}

	if !p.IsValid() {
		t.Error("expected start position to be valid")
	}

	if (Position{}).IsValid() {
		t.Error("expected zero position to be invalid")
	}
}

func TestPosition_AdvanceString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Position
	}{
		{"empty", "", At(1, 1, 0)},
		{"ascii", "abc", At(1, 4, 3)},
		{"newline resets column", "ab\ncd", At(2, 3, 5)},
		{"trailing newline", "a\n", At(2, 1, 2)},
		{"multibyte counts one column", "é€", At(1, 3, 5)},
		{"emoji", "😀x", At(1, 3, 5)},
		{"invalid byte", "\xffa", At(1, 3, 2)},
		{"crlf", "a\r\nb", At(2, 2, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Start().AdvanceString(tt.input)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPosition_AdvanceMatchesAdvanceString(t *testing.T) {
	input := "x = 1\n  y ≠ 2\n"

	p := Start()
	for _, r := range input {
		p = p.Advance(r)
	}

	if want := Start().AdvanceString(input); p != want {
		t.Errorf("expected %+v, got %+v", want, p)
	}
}

func TestPosition_String(t *testing.T) {
	if got := At(3, 14, 40).String(); got != "3:14" {
		t.Errorf("expected %q, got %q", "3:14", got)
	}
}

func TestSpanOf(t *testing.T) {
	pos := At(2, 5, 9)

	span, ok := SpanOf(located{pos: pos, ok: true})
	if !ok {
		t.Fatal("expected span for located value")
	}

	if span.Start != pos || span.End != pos {
		t.Errorf("expected degenerate span at %v, got %v", pos, span)
	}

	if _, ok := SpanOf(located{}); ok {
		t.Error("expected no span when position is unknown")
	}

	if _, ok := SpanOf(42); ok {
		t.Error("expected no span for plain value")
	}
}

type located struct {
	pos Position
	ok  bool
}

func (l located) Position() (Position, bool) { return l.pos, l.ok }

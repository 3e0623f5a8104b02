package pkg

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Error(t *testing.T) {
	base := NewError("read failed")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", base, "read failed"},
		{"message and cause", base.Wrap(io.EOF), "read failed: EOF"},
		{"cause only", WrapError(io.ErrUnexpectedEOF), "unexpected EOF"},
		{"empty", &Error{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestError_IsSentinel(t *testing.T) {
	sentinel := NewError("no match")
	other := NewError("no match")

	derived := sentinel.With(slog.Int("index", 3)).Wrap(io.EOF)

	if !errors.Is(derived, sentinel) {
		t.Error("expected derived error to match its sentinel")
	}

	if errors.Is(derived, other) {
		t.Error("expected derived error not to match a distinct sentinel")
	}

	if !errors.Is(derived, io.EOF) {
		t.Error("expected derived error to match wrapped cause")
	}
}

func TestError_WithIsImmutable(t *testing.T) {
	base := NewError("base").With(slog.String("a", "1"))
	one := base.With(slog.String("b", "2"))
	two := base.With(slog.String("c", "3"))

	if len(base.Attrs()) != 1 {
		t.Errorf("expected base to keep 1 attr, got %d", len(base.Attrs()))
	}

	if got := one.Attrs()[1].Key; got != "b" {
		t.Errorf("expected key b, got %q", got)
	}

	if got := two.Attrs()[1].Key; got != "c" {
		t.Errorf("expected key c, got %q", got)
	}
}

func TestWrapError_ReturnsExisting(t *testing.T) {
	inner := NewError("inner")
	if got := WrapError(inner); got != inner {
		t.Errorf("expected WrapError to return the same *Error, got %v", got)
	}
}

func TestError_LogValue(t *testing.T) {
	err := NewError("zero progress").
		Wrap(io.EOF).
		With(slog.Int("index", 7))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}

	keys := map[string]bool{}
	for _, a := range v.Group() {
		keys[a.Key] = true
	}

	for _, k := range []string{"error", "cause", "index"} {
		if !keys[k] {
			t.Errorf("expected attribute %q in log value", k)
		}
	}
}

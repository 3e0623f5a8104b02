package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDefault_PackageFunctions(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithLevel(LevelTrace), WithTimeLayout("none"), WithCaller(true)))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			for _, w := range []string{tt.level, `"key":"value"`, "default_test.go"} {
				if !strings.Contains(out, w) {
					t.Errorf("expected output to contain %q, got %s", w, out)
				}
			}
		})
	}
}

func TestConfig_ReconfiguresDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithTimeLayout("none")))
	Config(WithFormat(FormatText))

	With(slog.String("stage", "lex")).Info("done")

	if !strings.Contains(buf.String(), "stage=lex") {
		t.Errorf("expected text record, got %q", buf.String())
	}
}

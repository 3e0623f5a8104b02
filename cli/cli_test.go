package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestRun(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))

	extra := filepath.Join(root, "extra")
	if err := os.Mkdir(extra, 0o700); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(extra, "config.yaml"), []byte("eval:\n  format: json\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(configPathEnv, extra)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"configured format", []string{"--no-log-pretty", "eval", "1+2"}, `"value": 3`},
		{"flag overrides config", []string{"eval", "--format", "text", "2^3"}, "8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			code := -1
			err := run(context.Background(), func(c int) { code = c },
				[]kong.Option{kong.Writers(&out, &out)}, tt.args)
			if err != nil {
				t.Fatal(err)
			}

			if code != -1 {
				t.Errorf("unexpected exit %d", code)
			}

			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected output to contain %q, got %q", tt.want, out.String())
			}
		})
	}
}

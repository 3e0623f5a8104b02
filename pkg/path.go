package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var debugBinary = regexp.MustCompile(`^__debug_bin\d+$`)

// Prefix returns the base name of the running executable without extension
// or leading dots. The default output name of the dlv debugger maps to
// [Name]. The prefix names the configuration and cache directories.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	base := filepath.Base(exe)
	base = strings.TrimLeft(strings.TrimSuffix(base, filepath.Ext(base)), ".")

	if base == "" || debugBinary.MatchString(base) {
		return Name
	}

	return base
})

// userDir returns the [Prefix] subdirectory of the directory reported by
// primary, falling back to $HOME/fallback and then the working directory.
func userDir(primary func() (string, error), fallback string) string {
	dir, err := primary()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigDir returns the directory holding configuration files.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string { return userDir(os.UserConfigDir, ".config") })

// CacheDir returns the directory holding transient files such as REPL
// history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string { return userDir(os.UserCacheDir, ".cache") })

package cli

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/rulex/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// configPathEnv names the environment variable listing extra configuration
// directories, searched before the user configuration directory.
const configPathEnv = "RULEX_CONFIG_PATH"

var defaultDirMode os.FileMode = 0o700

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// searchPath returns the existing configuration directories in search
// order: the entries of env, then dir. Duplicates are removed.
func searchPath(env, dir string) []string {
	list := mung.Make(
		mung.WithSubjectItems(dir),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(filepath.SplitList(env)...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for _, d := range filepath.SplitList(list) {
		if d = filepath.Clean(d); isDir(d) && !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}

	return dirs
}

// configFiles returns every candidate configuration file with extension
// ext, most specific directory first.
func configFiles(ext string) []string {
	dirs := searchPath(os.Getenv(configPathEnv), pkg.ConfigDir())

	files := make([]string, len(dirs))
	for i, d := range dirs {
		files[i] = filepath.Join(d, baseConfig+ext)
	}

	return files
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

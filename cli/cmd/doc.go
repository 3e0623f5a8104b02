// Package cmd implements the rulex subcommands.
//
// Every command reads one source, either a file or "-" for standard input,
// through a read-ahead reader. Commands that accept --stream push that
// input into the lexer in fixed-size chunks instead of reading it whole.
// Results are written as text, JSON or YAML.
package cmd

var (
	// CacheIdentifier is the kong variable holding the runtime cache
	// directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the configuration
	// file path, without extension.
	ConfigIdentifier = "config"
)

// Package cli contains the rulex command line interface.
//
// # Commands
//
//	rulex lex [--lang calc|json] [--format text|json|yaml] [--stream] [source]
//	rulex parse [--lazy N] [--stream] [--format text|json|yaml] [source]
//	rulex eval [--check] [expr...]
//	rulex repl
//
// A source is a file or "-" for standard input. With --stream, input is
// read in chunks and lexed as it arrives. With --lazy N, parse pulls tokens
// through a window that holds roughly N tokens at a time.
//
// # Configuration
//
// Flags may also be set in config.json or config.yaml. Configuration
// directories are searched in this order:
//
//   - each directory listed in $RULEX_CONFIG_PATH
//   - the user configuration directory, for example ~/.config/rulex
//
// YAML keys nest, so this sets --log-level and --lazy:
//
//	log:
//	  level: debug
//	parse:
//	  lazy: 32
//
// Command-line flags override configuration files.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn or error
//   - --log-format: json or text
//   - --log-time-layout: a Go time layout or a name such as rfc3339, kitchen, ms or none
//   - --log-caller: include the call site
//   - --log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is available only when built with the pprof tag:
//
//	go build -tags pprof -o rulex .
//	rulex --pprof-mode=cpu parse --lazy 64 big.calc
package cli

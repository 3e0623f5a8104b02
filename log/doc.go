// Package log provides a simplified structured logging interface built on
// [log/slog].
//
// A [Logger] is an immutable value: [Make] builds one from functional
// options, [Logger.Wrap] derives a reconfigured copy, and [Logger.With]
// attaches attributes. The zero Logger discards everything, so components
// can hold one unconditionally and only pay for logging when a caller
// installs a real logger.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("tokenized", slog.Int("tokens", n))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used by the engine packages for
// per-rule and per-signal records.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are rendered by the standard slog
// handlers, or by colorized handlers styled with lipgloss when
// [WithPretty] is enabled.
//
// # Package Logger
//
// The package-level functions ([Info], [Error], ...) write to a default
// logger replaced atomically by [Config].
package log

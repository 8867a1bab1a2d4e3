// Package log wraps [log/slog] with a small set of levels, formats and
// functional options used throughout yarnspin.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("script loaded", slog.String("file", name))
//
// Every level has a context-aware variant. The context-unaware variants use
// [DefaultContextProvider]:
//
//	logger.TraceContext(ctx, "tokenize complete", slog.Int("tokens", n))
//
// # Default Logger
//
// Package-level functions such as [Info] and [ErrorContext] write through a
// default logger reconfigured with [Config]. The command line applies its
// --log-* flags this way before any command runs.
//
// # Levels and Formats
//
// [LevelTrace] sits below [LevelDebug] and carries per-token and
// per-evaluation records from the lang packages. Output is [FormatJSON]
// (default) or [FormatText]. [WithPretty] selects an indented JSON handler
// or a colorized text handler.
//
// The zero [Logger] discards everything, so library code can hold one
// without checking whether logging was configured.
package log

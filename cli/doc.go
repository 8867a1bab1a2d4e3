// Package cli contains the command line interface for yarnspin.
//
// # Usage
//
// Expressions given as arguments are evaluated by default:
//
//	yarnspin '$gold >= 10' -v gold=12
//	yarnspin -e world.yaml 'round($gold / 3)'
//
// Scripts are read with --source, or as arguments of the lex and check
// commands. A FILE of '-' reads stdin. Relative names that do not exist are
// looked up in the --path directories, then in $YARNSPIN_PATH.
//
//	yarnspin check intro.yarn shop.yarn
//	yarnspin lex -f json intro.yarn
//	yarnspin repl -e world.yaml
//
// # Configuration
//
// Flag defaults are read from config.yaml in the configuration directory.
// Keys are flag names, with either hyphens or underscores:
//
//	log_level: debug
//	env: [world.yaml]
//
// The init command writes the current flag values to that file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
// It adds --pprof-mode (allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, trace) and --pprof-dir, which defaults to a pprof
// directory in the cache directory.
package cli

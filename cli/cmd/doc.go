// Package cmd implements the yarnspin subcommands: eval, lex, check, repl
// and init.
//
// Commands receive their environment through [context.Context]. The cli
// package stores the parsed [kong.Context], the I/O streams, the script
// sources and the environment files with [WithContext], [WithStreams],
// [WithSources] and [WithEnvironment].
package cmd

const (
	// CacheIdentifier is the kong variable holding the cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the configuration file
	// path.
	ConfigIdentifier = "config"
)

// historyFile is the base name of the REPL history file in the cache
// directory.
const historyFile = "history.utf8"

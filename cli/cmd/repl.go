package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/yarnspin/cli/cmd/repl"
	"github.com/ardnew/yarnspin/log"
)

// Repl starts the interactive shell.
type Repl struct {
	Var       map[string]string `help:"Set a variable, guessing its type from VALUE." mapsep:"none" placeholder:"NAME=VALUE" short:"v"`
	NoHistory bool              `help:"Do not read or write the history file."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := environmentFrom(ctx)
	if err != nil {
		return err
	}

	for name, text := range r.Var {
		env.Set(name, text)
	}

	streams := streamsFrom(ctx)

	opts := []repl.Option{
		repl.WithVariables(env.Variables),
		repl.WithFunctions(env.Functions),
		repl.WithCompileOptions(env.Options()...),
		repl.WithLogger(log.Default()),
		repl.WithIO(streams.In, streams.Out),
	}

	if path := r.historyPath(ctx); path != "" {
		opts = append(opts, repl.WithHistory(path))
	}

	return repl.Run(ctx, opts...)
}

// historyPath returns the history file in the cache directory, or "" when
// history is disabled.
func (r *Repl) historyPath(ctx context.Context) string {
	if r.NoHistory {
		return ""
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	dir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok || dir == "" {
		return ""
	}

	return filepath.Join(dir, historyFile)
}

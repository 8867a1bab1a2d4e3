package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/log"
)

// Eval compiles and evaluates expressions.
type Eval struct {
	Output output `embed:""`

	Var   map[string]string `help:"Set a variable, guessing its type from VALUE." mapsep:"none" placeholder:"NAME=VALUE" short:"v"`
	Exprs []string          `arg:""                                               help:"Expressions to evaluate. Without any, each non-blank line of the sources is one expression." optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := environmentFrom(ctx)
	if err != nil {
		return err
	}

	for name, text := range e.Var {
		env.Set(name, text)
	}

	exprs, err := e.expressions(ctx)
	if err != nil {
		return err
	}

	streams := streamsFrom(ctx)
	results := make([]lang.Result, 0, len(exprs))
	failed := 0

	for _, src := range exprs {
		res, err := env.Evaluate(ctx, src)
		if err != nil {
			failed++

			log.DebugContext(ctx, "evaluation failed",
				slog.String("source", src),
				slog.Any("error", err),
			)

			if e.Output.Format == "text" {
				report(streams.Err, "", src, err)

				continue
			}
		}

		results = append(results, res)
	}

	err = e.Output.write(ctx, streams.Out, results, func(w io.Writer) error {
		for _, res := range results {
			if _, err := fmt.Fprintln(w, res.String()); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if failed > 0 {
		return ErrEvaluate.With(slog.Int("failed", failed), slog.Int("total", len(exprs)))
	}

	return nil
}

// expressions returns the command arguments, or the non-blank lines of the
// sources when there are none.
func (e *Eval) expressions(ctx context.Context) ([]string, error) {
	if len(e.Exprs) > 0 {
		return e.Exprs, nil
	}

	srcs, err := sourcesFrom(ctx)
	if err != nil {
		return nil, err
	}

	var exprs []string

	for _, src := range srcs {
		for line := range strings.Lines(src.text) {
			if line = strings.TrimRight(line, "\r\n"); strings.TrimSpace(line) != "" {
				exprs = append(exprs, line)
			}
		}
	}

	return exprs, nil
}

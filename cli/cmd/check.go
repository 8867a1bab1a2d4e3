package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/lexer"
	"github.com/ardnew/yarnspin/lang/token"
	"github.com/ardnew/yarnspin/log"
)

// Check compiles every expression embedded in the commands of scripts.
//
// Conditions of <<if>> and <<elseif>> commands are always checked. Other
// commands are checked only when they begin with something that can only
// start an expression, so statements such as <<set>> or <<jump>> are
// skipped.
type Check struct {
	Output output `embed:""`

	Sources []string `arg:"" help:"Script files, '-' for stdin. Added to --source." optional:""`
}

// Diagnostic is one error found by [Check].
type Diagnostic struct {
	Source  string `json:"source"  yaml:"source"`
	Kind    string `json:"kind"    yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line"    yaml:"line"`
	Col     int    `json:"col"     yaml:"col"`

	err  error
	text string
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := environmentFrom(ctx)
	if err != nil {
		return err
	}

	srcs, err := sourcesFrom(ctx, c.Sources...)
	if err != nil {
		return err
	}

	var (
		diags   []Diagnostic
		checked int
	)

	for _, src := range srcs {
		d, n := checkSource(ctx, src, env.Options()...)
		diags = append(diags, d...)
		checked += n
	}

	log.InfoContext(ctx, "check complete",
		slog.Int("sources", len(srcs)),
		slog.Int("expressions", checked),
		slog.Int("errors", len(diags)),
	)

	err = c.Output.write(ctx, streamsFrom(ctx).Out, diags, func(w io.Writer) error {
		for _, d := range diags {
			report(w, d.Source, d.text, d.err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if len(diags) > 0 {
		return ErrCheck.With(slog.Int("errors", len(diags)))
	}

	return nil
}

// checkSource parses each command expression of src. It returns the errors
// found and the number of expressions parsed.
func checkSource(ctx context.Context, src source, opts ...lang.Option) ([]Diagnostic, int) {
	s := lexer.TokenizeContext(ctx, src.text, lexer.WithLogger(log.Default()))

	var (
		diags   []Diagnostic
		checked int
	)

	for i, tok := range s.All() {
		if tok.Type != token.StartCommand {
			continue
		}

		start, ok := expressionStart(s, i)
		if !ok {
			continue
		}

		checked++

		if err := checkCommand(s, start, opts...); err != nil {
			diags = append(diags, diagnose(src, err))
		}
	}

	return diags, checked
}

// expressionStart returns the index of the expression inside the command
// opened at i, or false if the command holds no expression.
func expressionStart(s *token.Stream, i int) (int, bool) {
	j := s.NextNonSpace(i)

	switch s.Type(j) {
	case token.If, token.ElseIf:
		return s.NextNonSpace(j), true

	case token.DollarSign, token.Quotation, token.LeftParen, token.Sub, token.Bang:
		return j, true

	case token.Word:
		return j, s.Is(j+1, token.LeftParen)

	default:
		return 0, false
	}
}

// checkCommand parses the expression at start and requires the command to
// close right after it.
func checkCommand(s *token.Stream, start int, opts ...lang.Option) error {
	out := lang.ParseExpression(s, start, opts...)

	switch {
	case out.Err() != nil:
		return out.Err()

	case out.Failed():
		return lang.ErrUnexpectedToken.At(s.Pos(start)).With(
			slog.String("token", s.Type(start).String()),
		)
	}

	end := s.NextNonSpace(out.Next() - 1)
	if !s.Is(end, token.EndCommand) {
		return lang.ErrUnexpectedToken.At(s.Pos(end)).With(
			slog.String("token", s.Type(end).String()),
			slog.String("text", s.Text(end)),
		)
	}

	return nil
}

func diagnose(src source, err error) Diagnostic {
	d := Diagnostic{Source: src.name, Message: err.Error(), err: err, text: src.text}

	var le *lang.Error
	if errors.As(err, &le) {
		d.Kind = le.Kind().String()

		if pos, ok := le.Position(); ok {
			d.Line, d.Col = pos.Line, pos.Col
		}
	}

	return d
}

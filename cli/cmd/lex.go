package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/lexer"
	"github.com/ardnew/yarnspin/lang/token"
	"github.com/ardnew/yarnspin/log"
)

// Lex dumps the token stream of scripts.
type Lex struct {
	Output output `embed:""`

	Merge   bool     `default:"true" help:"Fuse compound operators such as << and else if." negatable:""`
	Sources []string `arg:""         help:"Script files, '-' for stdin. Added to --source." optional:""`
}

// lexed is the structured output of one source.
type lexed struct {
	Source string             `json:"source" yaml:"source"`
	Tokens []lang.TokenRecord `json:"tokens" yaml:"tokens"`
}

// Run executes the lex command.
func (l *Lex) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	srcs, err := sourcesFrom(ctx, l.Sources...)
	if err != nil {
		return err
	}

	out := make([]lexed, len(srcs))
	streams := make([]*token.Stream, len(srcs))

	for i, src := range srcs {
		s := lexer.TokenizeContext(ctx, src.text,
			lexer.WithLogger(log.Default()),
			lexer.WithMerge(l.Merge),
		)

		streams[i] = s
		out[i] = lexed{Source: src.name, Tokens: lang.TokenRecords(s)}

		log.DebugContext(ctx, "lexed source",
			slog.String("source", src.name),
			slog.Int("tokens", s.Len()),
		)
	}

	return l.Output.write(ctx, streamsFrom(ctx).Out, out, func(w io.Writer) error {
		for i, src := range srcs {
			if len(srcs) > 1 {
				if _, err := fmt.Fprintf(w, "==> %s <==\n", src.name); err != nil {
					return err
				}
			}

			if err := lang.FormatTokens(ctx, w, streams[i]); err != nil {
				return err
			}

			if i < len(srcs)-1 {
				fmt.Fprintln(w)
			}
		}

		return nil
	})
}

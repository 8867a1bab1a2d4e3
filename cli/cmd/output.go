package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/yarnspin/lang"
)

// output holds the flags shared by commands that print structured results.
type output struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format."                                     short:"f"`
	Indent int    `default:"2"                           help:"Indent width of json and yaml output, 0 for compact."`
}

// write renders v as json or yaml, or calls text for the text format.
func (o output) write(ctx context.Context, w io.Writer, v any, text func(io.Writer) error) error {
	var err error

	switch o.Format {
	case "json":
		err = lang.FormatJSON(ctx, w, v, o.Indent)
	case "yaml":
		err = lang.FormatYAML(ctx, w, v, o.Indent)
	default:
		err = text(w)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", o.Format))
	}

	return nil
}

// report writes err to w, followed by a snippet of source marking its
// position when err is a [lang.Error].
func report(w io.Writer, name, source string, err error) {
	prefix := ""
	if name != "" {
		prefix = name + ": "
	}

	fmt.Fprintf(w, "%s%v\n", prefix, err)

	var le *lang.Error
	if errors.As(err, &le) {
		fmt.Fprint(w, le.Snippet(source))
	}
}

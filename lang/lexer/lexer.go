// Package lexer scans yarn dialogue source into a [token.Stream].
//
// Scanning is line oriented. Each line is bracketed by [token.StartLine] and
// [token.EndLine] markers, and the stream ends with a single [token.EOF].
// Within a line the scanner grows a candidate substring one byte at a time
// and checks it against an ordered table of literals. The first literal the
// candidate ends with splits it into an optional leading [token.Word] and
// the literal's own token. Anything left at the end of the line becomes a
// Word, so scanning never fails.
//
// A final pass fuses adjacent single-character tokens into compound
// operators such as `<<`, `==` and `---`.
package lexer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/yarnspin/lang/token"
	"github.com/ardnew/yarnspin/log"
)

// Option configures a scan.
type Option func(*config)

type config struct {
	logger log.Logger
	merge  bool
}

// WithLogger sets the logger used for trace records.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMerge controls whether compound operators are fused after scanning.
// It is enabled by default.
func WithMerge(enable bool) Option {
	return func(c *config) { c.merge = enable }
}

// Tokenize scans source with the default options.
func Tokenize(source string) *token.Stream {
	return TokenizeContext(context.Background(), source)
}

// TokenizeContext scans source into a token stream.
func TokenizeContext(
	ctx context.Context,
	source string,
	opts ...Option,
) *token.Stream {
	cfg := config{merge: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := token.NewStream(source)

	lines := 0
	for offset := 0; offset < len(source); lines++ {
		end := strings.IndexByte(source[offset:], '\n')
		next := len(source)

		if end < 0 {
			end = len(source)
		} else {
			end += offset
			next = end + 1
		}

		scanLine(s, lines, offset, strings.TrimSuffix(source[offset:end], "\r"))

		offset = next
	}

	s.Append(token.EOF, token.Position{Line: lines}, len(source), 0)

	scanned := s.Len()

	if cfg.merge {
		merge(s)
	}

	cfg.logger.TraceContext(ctx, "tokenize complete",
		slog.Int("source_bytes", len(source)),
		slog.Int("lines", lines),
		slog.Int("tokens", s.Len()),
		slog.Int("merged", scanned-s.Len()),
	)

	return s
}

// scanLine appends the tokens of one line of text beginning at byte offset
// base of the source.
func scanLine(s *token.Stream, line, base int, text string) {
	pos := func(col int) token.Position {
		return token.Position{Line: line, Col: col}
	}

	s.Append(token.StartLine, pos(0), base, 0)

	anchor := 0
	for i := 1; i <= len(text); i++ {
		lit, ok := match(text, anchor, i)
		if !ok {
			continue
		}

		start := i - len(lit.text)
		if start > anchor {
			s.Append(token.Word, pos(anchor), base+anchor, start-anchor)
		}

		s.Append(lit.typ, pos(start), base+start, len(lit.text))

		anchor = i
	}

	if anchor < len(text) {
		s.Append(token.Word, pos(anchor), base+anchor, len(text)-anchor)
	}

	s.Append(token.EndLine, pos(len(text)), base+len(text), 0)
}

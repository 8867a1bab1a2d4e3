package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/yarnspin/lang/lexer"
	"github.com/ardnew/yarnspin/lang/token"
	"github.com/ardnew/yarnspin/log"
)

// DefaultMaxDepth is the default limit on nested groups and call arguments.
// Users may modify this before compiling to change the default.
var DefaultMaxDepth = 64

// optionsKey holds compile options that affect the resulting tree.
// This type is gob-encodable for cache key hashing.
type optionsKey struct {
	maxDepth int
}

// Option configures compilation.
type Option func(*Expression)

// WithMaxDepth sets the maximum nesting depth of parenthesized groups and
// call arguments. A depth of 0 or less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(e *Expression) {
		e.opts.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Expression) {
		e.logger = logger
	}
}

func applyDefaults(e *Expression) {
	e.opts.maxDepth = DefaultMaxDepth
}

func applyOptions(e *Expression, opts ...Option) {
	for _, opt := range opts {
		opt(e)
	}
}

// Expression is a compiled expression together with the source and token
// stream it was built from. It is safe for concurrent evaluation.
type Expression struct {
	logger log.Logger
	root   Node
	stream *token.Stream
	source string
	opts   optionsKey
}

// Compile lexes source and compiles its first line as one expression.
func Compile(ctx context.Context, source string, opts ...Option) (*Expression, error) {
	e := &Expression{source: source}

	applyDefaults(e)
	applyOptions(e, opts...)

	e.stream = lexer.TokenizeContext(ctx, source, lexer.WithLogger(e.logger))

	out := compileStream(e.stream, e.opts)
	if err := out.Err(); err != nil {
		e.logger.TraceContext(ctx, "compile failed", slog.Any("error", err))

		return nil, err
	}

	if out.Failed() {
		i := 0
		if e.stream.Is(0, token.StartLine) {
			i = e.stream.NextNonSpace(0)
		}

		err := ErrUnexpectedToken.At(e.stream.Pos(i)).With(
			slog.String("token", e.stream.Type(i).String()),
			slog.String("text", e.stream.Text(i)),
		)
		e.logger.TraceContext(ctx, "compile failed", slog.Any("error", err))

		return nil, err
	}

	e.root = out.node

	e.logger.TraceContext(ctx, "compile complete",
		slog.Int("tokens", e.stream.Len()),
		slog.String("tree", e.root.String()),
	)

	return e, nil
}

// Evaluate evaluates the expression against vars and funcs.
func (e *Expression) Evaluate(
	ctx context.Context,
	vars Variables,
	funcs Functions,
) (Value, error) {
	v, err := e.root.Evaluate(vars, funcs)
	if err != nil {
		e.logger.TraceContext(ctx, "evaluate failed",
			slog.String("tree", e.root.String()),
			slog.Any("error", err),
		)

		return Value{}, err
	}

	e.logger.TraceContext(ctx, "evaluate complete",
		slog.String("tree", e.root.String()),
		slog.String("type", v.Type().String()),
		slog.String("value", v.Quote()),
	)

	return v, nil
}

// Root returns the root node of the tree.
func (e *Expression) Root() Node { return e.root }

// Source returns the compiled source text.
func (e *Expression) Source() string { return e.source }

// Tokens returns the token stream the expression was compiled from.
func (e *Expression) Tokens() *token.Stream { return e.stream }

// String renders the tree with every operation parenthesized.
func (e *Expression) String() string { return e.root.String() }

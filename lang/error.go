package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/yarnspin/lang/token"
)

// Kind classifies an [Error].
type Kind int

const (
	KindEOF                       Kind = iota // EOF
	KindEOL                                   // EOL
	KindInvalidNumber                         // InvalidNumber
	KindInvalidBoolean                        // InvalidBoolean
	KindVariableNotDeclared                   // VariableNotDeclared
	KindInvalidVariableIdentifier             // InvalidVariableIdentifier
	KindInvalidOperation                      // InvalidOperation
	KindUnexpectedToken                       // UnexpectedToken
	KindUndefinedFunction                     // UndefinedFunction
	KindNullFunctionArg                       // NullFunctionArg
	KindFailedToParseArg                      // FailedToParseArg
	KindTypeMismatch                          // TypeMismatch
	KindExpressionTooDeep                     // ExpressionTooDeep
	KindReadInput                             // ReadInput
)

// Predefined errors (sentinel values). Use [Error.At] to attach a position
// and [errors.Is] to test the kind of a returned error.
var (
	ErrEOF                       = NewError(KindEOF, "unterminated string at end of input")
	ErrEOL                       = NewError(KindEOL, "unterminated string at end of line")
	ErrInvalidNumber             = NewError(KindInvalidNumber, "invalid number")
	ErrInvalidBoolean            = NewError(KindInvalidBoolean, "invalid boolean")
	ErrVariableNotDeclared       = NewError(KindVariableNotDeclared, "variable not declared")
	ErrInvalidVariableIdentifier = NewError(KindInvalidVariableIdentifier, "invalid variable identifier")
	ErrInvalidOperation          = NewError(KindInvalidOperation, "invalid operation")
	ErrUnexpectedToken           = NewError(KindUnexpectedToken, "unexpected token")
	ErrUndefinedFunction         = NewError(KindUndefinedFunction, "undefined function")
	ErrNullFunctionArg           = NewError(KindNullFunctionArg, "function argument has no value")
	ErrFailedToParseArg          = NewError(KindFailedToParseArg, "failed to parse argument")
	ErrTypeMismatch              = NewError(KindTypeMismatch, "type mismatch")
	ErrExpressionTooDeep         = NewError(KindExpressionTooDeep, "expression nested too deeply")
	ErrReadInput                 = NewError(KindReadInput, "failed to read input")
)

// Error is a kind-tagged error with an optional source position and
// structured logging attributes. It implements [slog.LogValuer].
type Error struct {
	msg    string
	err    error
	attrs  []slog.Attr
	pos    token.Position
	kind   Kind
	placed bool
}

// NewError creates an unpositioned Error.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// WrapError returns err if it already is (or wraps) an *Error, otherwise it
// wraps err as a [KindReadInput] error.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return ErrReadInput.Wrap(err)
}

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// Position returns the source position and whether one was attached.
func (e *Error) Position() (token.Position, bool) { return e.pos, e.placed }

// Error renders "<kind>: <msg> at <line>:<col>: <cause>", omitting the parts
// that are not set.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.kind.String())
	b.WriteString(": ")
	b.WriteString(e.msg)

	if e.placed {
		b.WriteString(" at ")
		b.WriteString(e.pos.String())
	}

	if e.err != nil {
		b.WriteString(": ")
		b.WriteString(e.err.Error())
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrEOL) matches any positioned copy of ErrEOL.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)
	attrs = append(attrs,
		slog.String("error", e.msg),
		slog.String("kind", e.kind.String()),
	)

	if e.placed {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("col", e.pos.Col),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// At returns a copy of e positioned at pos.
func (e *Error) At(pos token.Position) *Error {
	c := *e
	c.pos, c.placed = pos, true

	return &c
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = append(append(make([]slog.Attr, 0, len(e.attrs)+len(attrs)),
		e.attrs...), attrs...)

	return &c
}

// Attr returns the value of the first attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// Snippet renders the source line containing e with a caret under the
// offending column. It returns "" when e has no position or the line is
// not in source.
func (e *Error) Snippet(source string) string {
	if !e.placed {
		return ""
	}

	lines := strings.Split(source, "\n")
	if e.pos.Line < 0 || e.pos.Line >= len(lines) {
		return ""
	}

	line := strings.TrimSuffix(lines[e.pos.Line], "\r")
	num := strconv.Itoa(e.pos.Line + 1)

	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(num)
	b.WriteString(" | ")
	b.WriteString(line)
	b.WriteByte('\n')
	// 2 leading spaces + " | "
	b.WriteString(strings.Repeat(" ", len(num)+5+min(e.pos.Col, len(line))))
	b.WriteString("^\n")

	return b.String()
}

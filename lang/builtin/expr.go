package builtin

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/token"
)

// exprFunc is a native function defined by an expr-lang program.
type exprFunc struct {
	program *vm.Program
	name    string
}

// exprEnv builds the program environment: the call arguments as `args`
// and the call position as `line` and `col`.
func exprEnv(args []any, pos token.Position) map[string]any {
	return map[string]any{
		"args": args,
		"line": pos.Line,
		"col":  pos.Col,
	}
}

// Expr compiles source as an expr-lang program and returns it as a
// function. The program sees its arguments as `args`, and its result must be
// a string, number, boolean or nil.
//
//	fn, err := builtin.Expr("max", `args[0] > args[1] ? args[0] : args[1]`)
func Expr(name, source string) (lang.Function, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv(nil, token.Position{})))
	if err != nil {
		return nil, lang.ErrFailedToParseArg.Wrap(err).With(
			slog.String("function", name),
			slog.String("source", source),
		)
	}

	return &exprFunc{program: program, name: name}, nil
}

// Exprs compiles every entry of sources with [Expr].
func Exprs(sources map[string]string) (lang.Functions, error) {
	funcs := make(lang.Functions, len(sources))

	for name, source := range sources {
		fn, err := Expr(name, source)
		if err != nil {
			return nil, err
		}

		funcs[name] = fn
	}

	return funcs, nil
}

func (f *exprFunc) Call(args []lang.Value, pos token.Position) (lang.Value, error) {
	in := make([]any, len(args))
	for i, a := range args {
		in[i] = a.Any()
	}

	out, err := vm.Run(f.program, exprEnv(in, pos))
	if err != nil {
		return lang.Value{}, lang.ErrInvalidOperation.At(pos).Wrap(err).With(
			slog.String("function", f.name),
		)
	}

	v, ok := lang.ValueOf(out)
	if !ok {
		return lang.Value{}, lang.ErrFailedToParseArg.At(pos).With(
			slog.String("function", f.name),
			slog.String("result_type", fmt.Sprintf("%T", out)),
		)
	}

	return v, nil
}

package builtin

import (
	"log/slog"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/token"
)

// number returns args[i] as a number. Extra arguments are ignored.
func number(args []lang.Value, i int, pos token.Position) (float64, error) {
	if i >= len(args) {
		return 0, lang.ErrNullFunctionArg.At(pos).With(slog.Int("arg", i))
	}

	n, ok := args[i].Num()
	if !ok {
		return 0, lang.ErrTypeMismatch.At(pos).With(
			slog.Int("arg", i),
			slog.String("expected", lang.TypeNumber.String()),
			slog.String("got", args[i].Type().String()),
		)
	}

	return n, nil
}

// unary wraps a one-argument numeric function.
func unary(fn func(float64) float64) lang.Function {
	return lang.FunctionFunc(func(args []lang.Value, pos token.Position) (lang.Value, error) {
		v, err := number(args, 0, pos)
		if err != nil {
			return lang.Value{}, err
		}

		return lang.NumberValue(fn(v)), nil
	})
}

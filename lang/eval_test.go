package lang_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/token"
)

func testFunctions() lang.Functions {
	return lang.Functions{
		"twice": lang.FunctionFunc(func(args []lang.Value, pos token.Position) (lang.Value, error) {
			if len(args) < 1 {
				return lang.Value{}, lang.ErrNullFunctionArg.At(pos)
			}

			n, ok := args[0].Num()
			if !ok {
				return lang.Value{}, lang.ErrTypeMismatch.At(pos)
			}

			return lang.NumberValue(2 * n), nil
		}),
		"nothing": lang.FunctionFunc(func([]lang.Value, token.Position) (lang.Value, error) {
			return lang.Value{}, nil
		}),
		"broken": lang.FunctionFunc(func([]lang.Value, token.Position) (lang.Value, error) {
			return lang.Value{}, errors.New("boom")
		}),
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	vars := lang.Variables{
		"gold":    lang.NumberValue(12),
		"name":    lang.StringValue("Ada"),
		"visited": lang.BoolValue(true),
	}

	tests := []struct {
		name   string
		source string
		want   lang.Value
	}{
		{"precedence", "1+1*2", lang.NumberValue(3)},
		{"comparison_vs_additive", "3 >= 2 + 1", lang.BoolValue(true)},
		{"negative_decimal", "-2.2", lang.NumberValue(-2.2)},
		{"left_associative", "1-2-3", lang.NumberValue(-4)},
		{"division", "10 / 4", lang.NumberValue(2.5)},
		{"divide_by_zero", "1 / 0", lang.NumberValue(math.Inf(1))},
		{"concat_number", `"a" + 1`, lang.StringValue("a1")},
		{"concat_after_sum", `1 + 2 + "a"`, lang.StringValue("3a")},
		{"concat_bool", `"x" + true`, lang.StringValue("xtrue")},
		{"concat_variable", `"Hi " + $name + "!"`, lang.StringValue("Hi Ada!")},
		{"epsilon_equal", "1 == 1.00000000001", lang.BoolValue(true)},
		{"not_equal", "2 != 3", lang.BoolValue(true)},
		{"string_equal", `$name == "Ada"`, lang.BoolValue(true)},
		{"variable_bool", "$visited", lang.BoolValue(true)},
		{"not", "!$visited", lang.BoolValue(false)},
		{"guard", "$gold >= 10", lang.BoolValue(true)},
		{"function", "twice($gold) - 4", lang.NumberValue(20)},
		{"function_in_group", "(twice(1) + 1) * 2", lang.NumberValue(6)},
		{"escaped_quote", `"say \"hi\""`, lang.StringValue(`say "hi"`)},
		{"escaped_backslash", `"a\\b"`, lang.StringValue(`a\b`)},
		{"no_value", "nothing()", lang.Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr, err := lang.Compile(t.Context(), tt.source)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.source, err)
			}

			got, err := expr.Evaluate(t.Context(), vars, testFunctions())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}

			if got.Type() != tt.want.Type() || !got.Equal(tt.want) {
				t.Errorf("Evaluate() = %s %s, want %s %s",
					got.Type(), got.Quote(), tt.want.Type(), tt.want.Quote())
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	vars := lang.Variables{"x": lang.BoolValue(true)}

	tests := []struct {
		name   string
		source string
		want   *lang.Error
		pos    token.Position
	}{
		{"bool_plus_number", "true + 1", lang.ErrInvalidOperation, token.Position{Col: 0}},
		{"number_plus_bool", "1 + true", lang.ErrInvalidOperation, token.Position{Col: 0}},
		{"position_is_left_operand", "  $x * 2", lang.ErrInvalidOperation, token.Position{Col: 2}},
		{"mixed_equality", `"1" == 1`, lang.ErrInvalidOperation, token.Position{Col: 0}},
		{"negate_bool", "-true", lang.ErrInvalidOperation, token.Position{Col: 0}},
		{"not_number", "!1", lang.ErrInvalidOperation, token.Position{Col: 0}},
		{"undeclared", "$missing", lang.ErrVariableNotDeclared, token.Position{Col: 1}},
		{"left_error_wins", "$a + $b", lang.ErrVariableNotDeclared, token.Position{Col: 1}},
		{"right_error", "1 + $b", lang.ErrVariableNotDeclared, token.Position{Col: 5}},
		{"undefined_function", "nope(1)", lang.ErrUndefinedFunction, token.Position{Col: 0}},
		{"null_argument", "twice(nothing())", lang.ErrNullFunctionArg, token.Position{Col: 0}},
		{"null_argument_at_call", "  twice(1, nothing())", lang.ErrNullFunctionArg, token.Position{Col: 2}},
		{"argument_error_first", "nope($missing)", lang.ErrVariableNotDeclared, token.Position{Col: 6}},
		{"function_error", "twice()", lang.ErrNullFunctionArg, token.Position{Col: 0}},
		{"foreign_error", "broken()", lang.ErrInvalidOperation, token.Position{Col: 0}},
		{"no_value_operand", "nothing() + 1", lang.ErrInvalidOperation, token.Position{Col: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr, err := lang.Compile(t.Context(), tt.source)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.source, err)
			}

			_, err = expr.Evaluate(t.Context(), vars, testFunctions())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Evaluate() error = %v, want %v", err, tt.want)
			}

			var e *lang.Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *lang.Error", err)
			}

			if pos, _ := e.Position(); pos != tt.pos {
				t.Errorf("position = %v, want %v", pos, tt.pos)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	t.Parallel()

	expr, err := lang.Compile(t.Context(), `"n=" + ($n * 2 + 1)`)
	if err != nil {
		t.Fatal(err)
	}

	vars := lang.Variables{"n": lang.NumberValue(4)}

	first, err := expr.Evaluate(t.Context(), vars, nil)
	if err != nil {
		t.Fatal(err)
	}

	second, err := expr.Evaluate(t.Context(), vars, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !first.Equal(second) || first.String() != "n=9" {
		t.Errorf("results differ: %s then %s", first.Quote(), second.Quote())
	}

	if len(vars) != 1 {
		t.Errorf("evaluation changed variables: %v", vars)
	}
}

func TestEvaluate_Dice(t *testing.T) {
	t.Parallel()

	seq := 0
	funcs := lang.Functions{
		"dice": lang.FunctionFunc(func(args []lang.Value, _ token.Position) (lang.Value, error) {
			sides, _ := args[0].Num()
			seq++

			return lang.NumberValue(math.Round(float64(seq%7) / 6 * sides)), nil
		}),
	}

	expr, err := lang.Compile(t.Context(), "dice(6)")
	if err != nil {
		t.Fatal(err)
	}

	for range 20 {
		v, err := expr.Evaluate(t.Context(), nil, funcs)
		if err != nil {
			t.Fatal(err)
		}

		n, ok := v.Num()
		if !ok || n < 0 || n > 6 {
			t.Fatalf("dice(6) = %s", v.Quote())
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	expr, err := lang.Compile(b.Context(), `$gold * 2 + 10 >= 50 == true`)
	if err != nil {
		b.Fatal(err)
	}

	vars := lang.Variables{"gold": lang.NumberValue(25)}

	for b.Loop() {
		_, _ = expr.Evaluate(b.Context(), vars, nil)
	}
}

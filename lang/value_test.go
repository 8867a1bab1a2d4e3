package lang

import (
	"math"
	"testing"
)

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		l, r Value
		want bool
	}{
		{"exact", NumberValue(1), NumberValue(1), true},
		{"within_epsilon", NumberValue(1), NumberValue(1 + 1e-11), true},
		{"within_epsilon_reversed", NumberValue(1 + 1e-11), NumberValue(1), true},
		{"far_greater", NumberValue(1), NumberValue(100), false},
		{"far_less", NumberValue(100), NumberValue(1), false},
		{"strings", StringValue("a"), StringValue("a"), true},
		{"string_case", StringValue("a"), StringValue("A"), false},
		{"bools", BoolValue(false), BoolValue(false), true},
		{"mixed", StringValue("1"), NumberValue(1), false},
		{"none", Value{}, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.l.Equal(tt.r); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.l.Quote(), tt.r.Quote(), got, tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    Value
		want string
	}{
		{NumberValue(3), "3"},
		{NumberValue(2.5), "2.5"},
		{NumberValue(-0.1), "-0.1"},
		{NumberValue(1e21), "1000000000000000000000"},
		{NumberValue(math.Inf(1)), "+Inf"},
		{StringValue("x"), "x"},
		{BoolValue(true), "true"},
		{Value{}, ""},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	if got := StringValue(`a"b`).Quote(); got != `"a\"b"` {
		t.Errorf("Quote() = %s", got)
	}

	if got := (Value{}).Quote(); got != "none" {
		t.Errorf("Quote() of no value = %s", got)
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := map[string]Value{
		"true":  BoolValue(true),
		"false": BoolValue(false),
		"42":    NumberValue(42),
		"-1.5":  NumberValue(-1.5),
		"True":  StringValue("True"),
		"gold":  StringValue("gold"),
		"":      StringValue(""),
	}

	for in, want := range tests {
		if got := ParseValue(in); !got.Equal(want) {
			t.Errorf("ParseValue(%q) = %s %s, want %s %s",
				in, got.Type(), got.Quote(), want.Type(), want.Quote())
		}
	}
}

func TestValueOf(t *testing.T) {
	t.Parallel()

	if v, ok := ValueOf(7); !ok || !v.Equal(NumberValue(7)) {
		t.Errorf("ValueOf(7) = %v, %v", v, ok)
	}

	if v, ok := ValueOf(nil); !ok || v.Valid() {
		t.Errorf("ValueOf(nil) = %v, %v", v, ok)
	}

	if _, ok := ValueOf([]int{1}); ok {
		t.Error("ValueOf(slice) should not convert")
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		op     Operator
		l, r   Value
		want   Value
		wantOK bool
	}{
		{"add_numbers", OpAdd, NumberValue(1), NumberValue(2), NumberValue(3), true},
		{"concat_string_number", OpAdd, StringValue("a"), NumberValue(1), StringValue("a1"), true},
		{"concat_number_string", OpAdd, NumberValue(1.5), StringValue("x"), StringValue("1.5x"), true},
		{"concat_string_bool", OpAdd, StringValue("is "), BoolValue(true), StringValue("is true"), true},
		{"add_bool_number", OpAdd, BoolValue(true), NumberValue(1), Value{}, false},
		{"add_bools", OpAdd, BoolValue(true), BoolValue(true), Value{}, false},
		{"sub_strings", OpSub, StringValue("a"), StringValue("b"), Value{}, false},
		{"div_zero", OpDiv, NumberValue(1), NumberValue(0), NumberValue(math.Inf(1)), true},
		{"less", OpLessThan, NumberValue(1), NumberValue(2), BoolValue(true), true},
		{"less_strings", OpLessThan, StringValue("a"), StringValue("b"), Value{}, false},
		{"greater_eq", OpGreaterThanEq, NumberValue(2), NumberValue(2), BoolValue(true), true},
		{"equal_mixed", OpEqual, StringValue("1"), NumberValue(1), Value{}, false},
		{"not_equal_bools", OpNotEqual, BoolValue(true), BoolValue(false), BoolValue(true), true},
		{"no_value", OpAdd, Value{}, NumberValue(1), Value{}, false},
		{"unary_as_binary", OpNot, BoolValue(true), BoolValue(true), Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Apply(tt.op, tt.l, tt.r)
			if ok != tt.wantOK {
				t.Fatalf("Apply() ok = %v, want %v", ok, tt.wantOK)
			}

			if ok && !got.Equal(tt.want) {
				t.Errorf("Apply() = %s, want %s", got.Quote(), tt.want.Quote())
			}
		})
	}
}

func TestApplyUnary(t *testing.T) {
	t.Parallel()

	if v, ok := ApplyUnary(OpNegate, NumberValue(2)); !ok || !v.Equal(NumberValue(-2)) {
		t.Errorf("negate = %v, %v", v.Quote(), ok)
	}

	if v, ok := ApplyUnary(OpNot, BoolValue(false)); !ok || !v.Equal(BoolValue(true)) {
		t.Errorf("not = %v, %v", v.Quote(), ok)
	}

	if _, ok := ApplyUnary(OpNegate, StringValue("x")); ok {
		t.Error("negate string should fail")
	}

	if _, ok := ApplyUnary(OpNot, NumberValue(0)); ok {
		t.Error("not number should fail")
	}
}

package lang

//go:generate go tool stringer --linecomment --type Type,Kind --output lang_string.go

import (
	"encoding/json"
	"math"
	"strconv"
)

// Type is the dynamic type of a [Value].
type Type int

const (
	TypeNone   Type = iota // NONE
	TypeString             // STRING
	TypeNumber             // NUMBER
	TypeBool               // BOOL

	typeCount = int(TypeBool) + 1
)

// NumberEpsilon is the tolerance used when comparing numbers for equality.
const NumberEpsilon = 1e-10

// Value is a string, number or boolean. The zero Value holds no value; it is
// what a native function returns when it produces nothing.
type Value struct {
	str string
	num float64
	typ Type
	b   bool
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{typ: TypeString, str: s} }

// NumberValue returns a number Value.
func NumberValue(f float64) Value { return Value{typ: TypeNumber, num: f} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{typ: TypeBool, b: b} }

// ParseValue interprets text the way a script author would type it:
// "true" and "false" are booleans, anything [strconv.ParseFloat] accepts is
// a number, and everything else is a string.
func ParseValue(text string) Value {
	switch text {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return NumberValue(f)
	}

	return StringValue(text)
}

// ValueOf converts a Go value to a Value. Nil converts to the zero Value.
func ValueOf(v any) (Value, bool) {
	switch v := v.(type) {
	case nil:
		return Value{}, true
	case Value:
		return v, true
	case string:
		return StringValue(v), true
	case bool:
		return BoolValue(v), true
	case float64:
		return NumberValue(v), true
	case float32:
		return NumberValue(float64(v)), true
	case int:
		return NumberValue(float64(v)), true
	case int8:
		return NumberValue(float64(v)), true
	case int16:
		return NumberValue(float64(v)), true
	case int32:
		return NumberValue(float64(v)), true
	case int64:
		return NumberValue(float64(v)), true
	case uint:
		return NumberValue(float64(v)), true
	case uint8:
		return NumberValue(float64(v)), true
	case uint16:
		return NumberValue(float64(v)), true
	case uint32:
		return NumberValue(float64(v)), true
	case uint64:
		return NumberValue(float64(v)), true
	default:
		return Value{}, false
	}
}

// Type returns the dynamic type of v.
func (v Value) Type() Type { return v.typ }

// Valid reports whether v holds a value.
func (v Value) Valid() bool { return v.typ != TypeNone }

// Str returns the string held by v.
func (v Value) Str() (string, bool) { return v.str, v.typ == TypeString }

// Num returns the number held by v.
func (v Value) Num() (float64, bool) { return v.num, v.typ == TypeNumber }

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) { return v.b, v.typ == TypeBool }

// Any returns v as a Go string, float64, bool or nil.
func (v Value) Any() any {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeNumber:
		return v.num
	case TypeBool:
		return v.b
	default:
		return nil
	}
}

// String returns the text used when v is concatenated to a string.
// Numbers print in their shortest exact decimal form without an exponent.
func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeNumber:
		return formatNumber(v.num)
	case TypeBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Quote returns v in script syntax: strings are quoted.
func (v Value) Quote() string {
	if v.typ == TypeString {
		return strconv.Quote(v.str)
	}

	if v.typ == TypeNone {
		return "none"
	}

	return v.String()
}

// Equal reports whether v and o have the same type and value. Numbers are
// equal when they differ by less than [NumberEpsilon].
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}

	switch v.typ {
	case TypeString:
		return v.str == o.str
	case TypeNumber:
		return numbersEqual(v.num, o.num)
	case TypeBool:
		return v.b == o.b
	default:
		return true
	}
}

// MarshalJSON encodes v as its JSON scalar, or null. Infinities and NaN,
// which JSON cannot represent, are encoded as the strings "+Inf", "-Inf"
// and "NaN".
func (v Value) MarshalJSON() ([]byte, error) {
	if v.typ == TypeNumber && (math.IsInf(v.num, 0) || math.IsNaN(v.num)) {
		return json.Marshal(formatNumber(v.num))
	}

	return json.Marshal(v.Any())
}

// MarshalYAML encodes v as its YAML scalar, or null.
func (v Value) MarshalYAML() (any, error) { return v.Any(), nil }

func numbersEqual(l, r float64) bool {
	if l == r {
		return true
	}

	return math.Abs(l-r) < NumberEpsilon
}

func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

package lang

import (
	"github.com/ardnew/yarnspin/lang/token"
)

// Operator is a unary or binary operator of the expression language.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMult
	OpDiv
	OpLessThan
	OpGreaterThan
	OpLessThanEq
	OpGreaterThanEq
	OpEqual
	OpNotEqual
	OpNegate
	OpNot

	binaryCount = int(OpNotEqual) + 1
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub, OpNegate:
		return "-"
	case OpMult:
		return "*"
	case OpDiv:
		return "/"
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpLessThanEq:
		return "<="
	case OpGreaterThanEq:
		return ">="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpNot:
		return "!"
	default:
		return "?"
	}
}

// Binary reports whether op takes two operands.
func (op Operator) Binary() bool { return op >= 0 && int(op) < binaryCount }

type binaryFunc func(l, r Value) Value

// binaryTable is indexed by operator, left type and right type. A nil entry
// means the operator is not defined for that pair.
var binaryTable = [binaryCount][typeCount][typeCount]binaryFunc{
	OpAdd: {
		TypeString: {TypeString: concat, TypeNumber: concat, TypeBool: concat},
		TypeNumber: {TypeString: concat, TypeNumber: arith(func(l, r float64) float64 { return l + r })},
		TypeBool:   {TypeString: concat},
	},
	OpSub: {
		TypeNumber: {TypeNumber: arith(func(l, r float64) float64 { return l - r })},
	},
	OpMult: {
		TypeNumber: {TypeNumber: arith(func(l, r float64) float64 { return l * r })},
	},
	OpDiv: {
		TypeNumber: {TypeNumber: arith(func(l, r float64) float64 { return l / r })},
	},
	OpLessThan: {
		TypeNumber: {TypeNumber: compare(func(l, r float64) bool { return l < r })},
	},
	OpGreaterThan: {
		TypeNumber: {TypeNumber: compare(func(l, r float64) bool { return l > r })},
	},
	OpLessThanEq: {
		TypeNumber: {TypeNumber: compare(func(l, r float64) bool { return l <= r })},
	},
	OpGreaterThanEq: {
		TypeNumber: {TypeNumber: compare(func(l, r float64) bool { return l >= r })},
	},
	OpEqual: {
		TypeString: {TypeString: equal},
		TypeNumber: {TypeNumber: equal},
		TypeBool:   {TypeBool: equal},
	},
	OpNotEqual: {
		TypeString: {TypeString: notEqual},
		TypeNumber: {TypeNumber: notEqual},
		TypeBool:   {TypeBool: notEqual},
	},
}

func concat(l, r Value) Value { return StringValue(l.String() + r.String()) }

func equal(l, r Value) Value { return BoolValue(l.Equal(r)) }

func notEqual(l, r Value) Value { return BoolValue(!l.Equal(r)) }

func arith(fn func(l, r float64) float64) binaryFunc {
	return func(l, r Value) Value { return NumberValue(fn(l.num, r.num)) }
}

func compare(fn func(l, r float64) bool) binaryFunc {
	return func(l, r Value) Value { return BoolValue(fn(l.num, r.num)) }
}

// Apply evaluates l op r. It reports false when op is not a binary
// operator or is undefined for the operand types; it never panics.
func Apply(op Operator, l, r Value) (Value, bool) {
	if !op.Binary() || !l.Valid() || !r.Valid() {
		return Value{}, false
	}

	fn := binaryTable[op][l.typ][r.typ]
	if fn == nil {
		return Value{}, false
	}

	return fn(l, r), true
}

// ApplyUnary evaluates op v for [OpNegate] on numbers and [OpNot] on
// booleans.
func ApplyUnary(op Operator, v Value) (Value, bool) {
	switch {
	case op == OpNegate && v.typ == TypeNumber:
		return NumberValue(-v.num), true
	case op == OpNot && v.typ == TypeBool:
		return BoolValue(!v.b), true
	default:
		return Value{}, false
	}
}

// Operator tables for each binary precedence layer.
var (
	equalityOps = map[token.Type]Operator{
		token.EqualToo:    OpEqual,
		token.NotEqualToo: OpNotEqual,
	}
	comparisonOps = map[token.Type]Operator{
		token.LessThan:      OpLessThan,
		token.GreaterThan:   OpGreaterThan,
		token.LessThanEq:    OpLessThanEq,
		token.GreaterThanEq: OpGreaterThanEq,
	}
	additiveOps = map[token.Type]Operator{
		token.Add: OpAdd,
		token.Sub: OpSub,
	}
	factorOps = map[token.Type]Operator{
		token.Mult: OpMult,
		token.Div:  OpDiv,
	}
)

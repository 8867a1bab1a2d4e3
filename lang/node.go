package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/yarnspin/lang/token"
)

// Node is one element of a compiled expression tree. Nodes are immutable
// once built, so a tree may be evaluated any number of times, including
// concurrently when each caller supplies its own variables.
type Node interface {
	Evaluate(vars Variables, funcs Functions) (Value, error)
	Pos() token.Position
	String() string
}

// NumberLiteral is an unsigned numeric constant.
type NumberLiteral struct {
	Value    float64
	Position token.Position
}

func (n *NumberLiteral) Evaluate(Variables, Functions) (Value, error) {
	return NumberValue(n.Value), nil
}

func (n *NumberLiteral) Pos() token.Position { return n.Position }
func (n *NumberLiteral) String() string      { return formatNumber(n.Value) }

// StringLiteral is a quoted constant with escapes already removed.
type StringLiteral struct {
	Value    string
	Position token.Position
}

func (n *StringLiteral) Evaluate(Variables, Functions) (Value, error) {
	return StringValue(n.Value), nil
}

func (n *StringLiteral) Pos() token.Position { return n.Position }
func (n *StringLiteral) String() string      { return strconv.Quote(n.Value) }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Position token.Position
	Value    bool
}

func (n *BoolLiteral) Evaluate(Variables, Functions) (Value, error) {
	return BoolValue(n.Value), nil
}

func (n *BoolLiteral) Pos() token.Position { return n.Position }
func (n *BoolLiteral) String() string      { return strconv.FormatBool(n.Value) }

// VariableRef reads a variable by name. Position is that of the name, not
// the sigil.
type VariableRef struct {
	Name     string
	Position token.Position
}

func (n *VariableRef) Evaluate(vars Variables, _ Functions) (Value, error) {
	v, ok := vars[n.Name]
	if !ok {
		return Value{}, ErrVariableNotDeclared.At(n.Position).With(
			slog.String("name", n.Name),
		)
	}

	return v, nil
}

func (n *VariableRef) Pos() token.Position { return n.Position }
func (n *VariableRef) String() string      { return "$" + n.Name }

// BinaryExpr applies a binary operator. Position is the start of the
// leftmost operand.
type BinaryExpr struct {
	Left     Node
	Right    Node
	Position token.Position
	Op       Operator
}

// Evaluate evaluates both operands before reporting either one's error, the
// left taking precedence.
func (n *BinaryExpr) Evaluate(vars Variables, funcs Functions) (Value, error) {
	l, lerr := n.Left.Evaluate(vars, funcs)
	r, rerr := n.Right.Evaluate(vars, funcs)

	if lerr != nil {
		return Value{}, lerr
	}

	if rerr != nil {
		return Value{}, rerr
	}

	v, ok := Apply(n.Op, l, r)
	if !ok {
		return Value{}, ErrInvalidOperation.At(n.Position).With(
			slog.String("op", n.Op.String()),
			slog.String("left", l.Type().String()),
			slog.String("right", r.Type().String()),
		)
	}

	return v, nil
}

func (n *BinaryExpr) Pos() token.Position { return n.Position }

func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " +
		n.Right.String() + ")"
}

// UnaryExpr applies [OpNegate] or [OpNot].
type UnaryExpr struct {
	Operand  Node
	Position token.Position
	Op       Operator
}

func (n *UnaryExpr) Evaluate(vars Variables, funcs Functions) (Value, error) {
	v, err := n.Operand.Evaluate(vars, funcs)
	if err != nil {
		return Value{}, err
	}

	r, ok := ApplyUnary(n.Op, v)
	if !ok {
		return Value{}, ErrInvalidOperation.At(n.Position).With(
			slog.String("op", n.Op.String()),
			slog.String("operand", v.Type().String()),
		)
	}

	return r, nil
}

func (n *UnaryExpr) Pos() token.Position { return n.Position }
func (n *UnaryExpr) String() string      { return "(" + n.Op.String() + n.Operand.String() + ")" }

// FunctionCall invokes a native function from the registry.
type FunctionCall struct {
	Name     string
	Args     []Node
	Position token.Position
}

// Evaluate evaluates the arguments left to right, stopping at the first
// error or the first argument with no value, then calls the function.
func (n *FunctionCall) Evaluate(vars Variables, funcs Functions) (Value, error) {
	args := make([]Value, 0, len(n.Args))

	for i, a := range n.Args {
		v, err := a.Evaluate(vars, funcs)
		if err != nil {
			return Value{}, err
		}

		if !v.Valid() {
			return Value{}, ErrNullFunctionArg.At(n.Position).With(
				slog.String("function", n.Name),
				slog.Int("arg", i),
			)
		}

		args = append(args, v)
	}

	fn, ok := funcs[n.Name]
	if !ok || fn == nil {
		return Value{}, ErrUndefinedFunction.At(n.Position).With(
			slog.String("function", n.Name),
		)
	}

	v, err := fn.Call(args, n.Position)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return Value{}, err
		}

		return Value{}, ErrInvalidOperation.At(n.Position).Wrap(err).With(
			slog.String("function", n.Name),
		)
	}

	return v, nil
}

func (n *FunctionCall) Pos() token.Position { return n.Position }

func (n *FunctionCall) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}

	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

package lang

import (
	"iter"
	"maps"
	"slices"

	"github.com/ardnew/yarnspin/lang/token"
)

// Variables maps variable names, without the `$` sigil, to values.
// Evaluation only reads it.
type Variables map[string]Value

// Functions maps function names to native implementations.
type Functions map[string]Function

// Function is a native function callable from expressions. pos is the
// position of the call, for error reporting. Returning the zero [Value]
// means the call produced no value.
type Function interface {
	Call(args []Value, pos token.Position) (Value, error)
}

// FunctionFunc adapts an ordinary function to [Function].
type FunctionFunc func(args []Value, pos token.Position) (Value, error)

// Call calls f(args, pos).
func (f FunctionFunc) Call(args []Value, pos token.Position) (Value, error) {
	return f(args, pos)
}

// Names returns the registered function names in sorted order.
func (f Functions) Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(f)))
}

// Merge returns a new registry holding f overlaid by each of others.
func (f Functions) Merge(others ...Functions) Functions {
	out := maps.Clone(f)
	if out == nil {
		out = make(Functions)
	}

	for _, o := range others {
		maps.Copy(out, o)
	}

	return out
}

// Names returns the variable names in sorted order.
func (v Variables) Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(v)))
}

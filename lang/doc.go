// Package lang compiles and evaluates the inline expressions of yarn
// dialogue scripts, such as the condition in `<<if $gold >= 10>>`.
//
// # Values
//
// An expression produces a [Value]: a string, a number (float64) or a
// boolean. The zero Value means "no value" and is what a native function
// returns when it has nothing to give back. The only operator defined
// across types is `+` with a string operand, which concatenates.
//
// # Grammar
//
// Informal EBNF, loosest binding first:
//
//	Equality    → Comparison (('==' | '!=') Comparison)*
//	Comparison  → Additive (('<' | '>' | '<=' | '>=') Additive)*
//	Additive    → Factor (('+' | '-') Factor)*
//	Factor      → Unary (('*' | '/') Unary)*
//	Unary       → ('-' | '!') Primary | Primary
//	Primary     → '$' Name | String | Number | Bool | Call | '(' Equality ')'
//	Call        → Name '(' (Equality (',' Equality)*)? ')'
//
// Every binary layer is left-associative. Whitespace between tokens is
// ignored.
//
// # Example
//
//	expr, err := lang.Compile(ctx, `"Gold: " + round($gold * 1.5)`)
//	if err != nil {
//		return err
//	}
//
//	v, err := expr.Evaluate(ctx,
//		lang.Variables{"gold": lang.NumberValue(7)},
//		builtin.Functions(),
//	)
//	// v.String() == "Gold: 11"
//
// # Errors
//
// Every failure is an [*Error] tagged with a [Kind] and, where one exists,
// the position of the offending token. Use [errors.Is] with the sentinel
// values such as [ErrVariableNotDeclared] to test the kind.
package lang

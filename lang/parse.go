package lang

import (
	"log/slog"

	"github.com/ardnew/yarnspin/lang/token"
)

// parser walks a token stream by offset. Rules never consume tokens; each
// returns the offset following what it matched, so alternatives can be
// retried from the same place.
type parser struct {
	s        *token.Stream
	alts     []func(int) Outcome
	maxDepth int
	depth    int
}

func newParser(s *token.Stream, maxDepth int) *parser {
	p := &parser{s: s, maxDepth: maxDepth}
	p.alts = []func(int) Outcome{
		p.variable,
		p.stringLiteral,
		p.number,
		p.boolean,
		p.call,
		p.group,
	}

	return p
}

// ParseExpression parses one expression starting at offset in s. It is the
// entry point for callers that locate expressions inside a larger line,
// such as the condition following `<<if`.
func ParseExpression(s *token.Stream, offset int, opts ...Option) Outcome {
	var tmp Expression

	applyDefaults(&tmp)
	applyOptions(&tmp, opts...)

	return newParser(s, tmp.opts.maxDepth).nested(offset)
}

// CompileStream parses the first line of s as a single expression. Leading
// and trailing whitespace is ignored; any other token left on the line, or
// on a later non-blank line, is an UnexpectedToken error.
func CompileStream(s *token.Stream, opts ...Option) Outcome {
	var tmp Expression

	applyDefaults(&tmp)
	applyOptions(&tmp, opts...)

	return compileStream(s, tmp.opts)
}

func compileStream(s *token.Stream, opts optionsKey) Outcome {
	p := newParser(s, opts.maxDepth)

	start := 0
	if s.Is(0, token.StartLine) {
		start = p.skip(1)
	}

	out := p.nested(start)
	if !out.Parsed() {
		return out
	}

	for i := out.next; i < s.Len(); i++ {
		switch s.Type(i) {
		case token.Space, token.Tab, token.StartLine, token.EndLine, token.EOF:
		default:
			return p.unexpected(i)
		}
	}

	return out
}

// skip returns the first offset at or after i that is not whitespace.
func (p *parser) skip(i int) int { return p.s.NextNonSpace(i - 1) }

func (p *parser) unexpected(i int) Outcome {
	return errored(ErrUnexpectedToken.At(p.s.Pos(i)).With(
		slog.String("token", p.s.Type(i).String()),
		slog.String("text", p.s.Text(i)),
	))
}

// nested parses a full expression, guarding the recursion depth. Every
// re-entry from a parenthesized group or a call argument goes through here.
func (p *parser) nested(offset int) Outcome {
	p.depth++
	defer func() { p.depth-- }()

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return errored(ErrExpressionTooDeep.At(p.s.Pos(offset)).With(
			slog.Int("max_depth", p.maxDepth),
		))
	}

	return p.equality(offset)
}

func (p *parser) equality(offset int) Outcome {
	return p.binary(offset, p.comparison, equalityOps)
}

func (p *parser) comparison(offset int) Outcome {
	return p.binary(offset, p.additive, comparisonOps)
}

func (p *parser) additive(offset int) Outcome {
	return p.binary(offset, p.factor, additiveOps)
}

func (p *parser) factor(offset int) Outcome {
	return p.binary(offset, p.unary, factorOps)
}

// binary parses a left-associative chain of operands from the next tighter
// layer joined by any operator in ops.
func (p *parser) binary(
	offset int,
	next func(int) Outcome,
	ops map[token.Type]Operator,
) Outcome {
	left := next(offset)
	if !left.Parsed() {
		return left
	}

	start := p.s.Pos(offset)

	for {
		i := p.skip(left.next)

		op, ok := ops[p.s.Type(i)]
		if !ok {
			return left
		}

		j := p.skip(i + 1)

		right := next(j)
		if right.Failed() {
			return p.unexpected(j)
		}

		if !right.Parsed() {
			return right
		}

		left = parsedAt(&BinaryExpr{
			Op:       op,
			Left:     left.node,
			Right:    right.node,
			Position: start,
		}, right.next)
	}
}

func (p *parser) unary(offset int) Outcome {
	var op Operator

	switch p.s.Type(offset) {
	case token.Sub:
		op = OpNegate
	case token.Bang:
		op = OpNot
	default:
		return p.primary(offset)
	}

	j := p.skip(offset + 1)

	operand := p.primary(j)
	if operand.Failed() {
		return p.unexpected(j)
	}

	if !operand.Parsed() {
		return operand
	}

	return parsedAt(&UnaryExpr{
		Op:       op,
		Operand:  operand.node,
		Position: p.s.Pos(offset),
	}, operand.next)
}

func (p *parser) primary(offset int) Outcome {
	for _, alt := range p.alts {
		if out := alt(offset); !out.Failed() {
			return out
		}
	}

	return failed
}

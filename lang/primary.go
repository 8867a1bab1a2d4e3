package lang

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/yarnspin/lang/token"
)

// variable parses `$name`. Once the sigil is seen, anything but a name
// is an error.
func (p *parser) variable(offset int) Outcome {
	if !p.s.Is(offset, token.DollarSign) {
		return failed
	}

	i := offset + 1
	if !isName(p.s.Type(i)) {
		return errored(ErrInvalidVariableIdentifier.At(p.s.Pos(i)).With(
			slog.String("token", p.s.Type(i).String()),
		))
	}

	return parsedAt(&VariableRef{
		Name:     p.s.Text(i),
		Position: p.s.Pos(i),
	}, i+1)
}

// isName reports whether typ can name a variable. Keywords are words too.
func isName(typ token.Type) bool {
	switch typ {
	case token.Word, token.If, token.Else, token.ElseIf, token.End, token.EndIf:
		return true
	default:
		return false
	}
}

// stringLiteral parses a double-quoted string. A backslash escapes the
// token after it; the backslash itself is dropped.
func (p *parser) stringLiteral(offset int) Outcome {
	if !p.s.Is(offset, token.Quotation) {
		return failed
	}

	var (
		b       strings.Builder
		escaped bool
	)

	for i := offset + 1; ; i++ {
		tok, ok := p.s.Peek(i)
		if !ok {
			return errored(ErrEOF.At(p.s.Pos(p.s.Len() - 1)))
		}

		switch {
		case tok.Type == token.EndLine:
			return errored(ErrEOL.At(tok.Position))
		case tok.Type == token.EOF:
			return errored(ErrEOF.At(tok.Position))
		case escaped:
			escaped = false
		case tok.Type == token.Backslash:
			escaped = true

			continue
		case tok.Type == token.Quotation:
			return parsedAt(&StringLiteral{
				Value:    b.String(),
				Position: p.s.Pos(offset),
			}, i+1)
		}

		b.WriteString(tok.Text())
	}
}

// number parses an unsigned decimal literal split by the lexer into
// Word [Period Word].
func (p *parser) number(offset int) Outcome {
	if !p.s.Is(offset, token.Word) || !isDigits(p.s.Text(offset)) {
		return failed
	}

	text, next := p.s.Text(offset), offset+1

	if p.s.Is(next, token.Period) {
		frac := next + 1
		if !p.s.Is(frac, token.Word) || !isDigits(p.s.Text(frac)) {
			return errored(ErrInvalidNumber.At(p.s.Pos(frac)).With(
				slog.String("text", p.s.Text(frac)),
			))
		}

		text, next = text+"."+p.s.Text(frac), frac+1
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return errored(ErrInvalidNumber.At(p.s.Pos(offset)).Wrap(err))
	}

	return parsedAt(&NumberLiteral{Value: f, Position: p.s.Pos(offset)}, next)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// boolean parses `true` or `false`. Any other word here is an error, except
// a word that opens a call, which is left for the call rule.
func (p *parser) boolean(offset int) Outcome {
	if !p.s.Is(offset, token.Word) || p.s.Is(offset+1, token.LeftParen) {
		return failed
	}

	switch text := p.s.Text(offset); text {
	case "true", "false":
		return parsedAt(&BoolLiteral{
			Value:    text == "true",
			Position: p.s.Pos(offset),
		}, offset+1)
	default:
		return errored(ErrInvalidBoolean.At(p.s.Pos(offset)).With(
			slog.String("text", text),
		))
	}
}

// call parses `name(arg, ...)`.
func (p *parser) call(offset int) Outcome {
	if !p.s.Is(offset, token.Word) || !p.s.Is(offset+1, token.LeftParen) {
		return failed
	}

	fn := &FunctionCall{
		Name:     p.s.Text(offset),
		Position: p.s.Pos(offset),
	}

	// want is true when an argument may start at i.
	want, comma := true, false

	for i := offset + 2; ; {
		switch typ := p.s.Type(i); {
		case typ.IsSpace():
			i++
		case typ == token.RightParen && !comma:
			return parsedAt(fn, i+1)
		case typ == token.Comma && !want:
			want, comma = true, true
			i++
		case want:
			arg := p.nested(i)
			if arg.Failed() {
				return p.unexpected(i)
			}

			if !arg.Parsed() {
				return arg
			}

			fn.Args = append(fn.Args, arg.node)
			want, comma = false, false
			i = arg.next
		default:
			return p.unexpected(i)
		}
	}
}

// group parses a parenthesized expression.
func (p *parser) group(offset int) Outcome {
	if !p.s.Is(offset, token.LeftParen) {
		return failed
	}

	i := p.skip(offset + 1)

	inner := p.nested(i)
	if inner.Failed() {
		return p.unexpected(i)
	}

	if !inner.Parsed() {
		return inner
	}

	end := p.skip(inner.next)
	if !p.s.Is(end, token.RightParen) {
		return p.unexpected(end)
	}

	return parsedAt(inner.node, end+1)
}

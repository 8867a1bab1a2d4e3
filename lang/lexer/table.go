package lexer

import (
	"strings"

	"github.com/ardnew/yarnspin/lang/token"
)

type literal struct {
	text    string
	typ     token.Type
	keyword bool
}

func lit(text string, typ token.Type) literal {
	return literal{text: text, typ: typ, keyword: isLetter(text[0])}
}

// literals is checked in order; the first entry that the growing candidate
// ends with wins. Longer keywords precede their prefixes.
var literals = [...]literal{
	lit(":", token.Colon),
	lit("->", token.Arrow),
	lit("---", token.StartNode),
	lit("===", token.EndNode),
	lit(" ", token.Space),
	lit("\t", token.Tab),
	lit("elseif", token.ElseIf),
	lit("endif", token.EndIf),
	lit("if", token.If),
	lit("else", token.Else),
	lit("end", token.End),
	lit(`"`, token.Quotation),
	lit(".", token.Period),
	lit(",", token.Comma),
	lit("<", token.LessThan),
	lit(">", token.GreaterThan),
	lit("<=", token.LessThanEq),
	lit(">=", token.GreaterThanEq),
	lit("=", token.Equal),
	lit("#", token.Hashtag),
	lit("[", token.LeftBracket),
	lit("]", token.RightBracket),
	lit("(", token.LeftParen),
	lit(")", token.RightParen),
	lit("/", token.Div),
	lit("*", token.Mult),
	lit("+", token.Add),
	lit("-", token.Sub),
	lit("$", token.DollarSign),
	lit("!", token.Bang),
	lit(`\`, token.Backslash),
}

// match returns the first literal that text[anchor:end] ends with.
// Keywords only match when they are not embedded in a longer identifier.
func match(text string, anchor, end int) (literal, bool) {
	candidate := text[anchor:end]

	for _, l := range literals {
		if !strings.HasSuffix(candidate, l.text) {
			continue
		}

		if l.keyword && !bounded(text, end-len(l.text), end) {
			continue
		}

		return l, true
	}

	return literal{}, false
}

// bounded reports whether text[start:end] is not adjacent to identifier
// bytes on either side.
func bounded(text string, start, end int) bool {
	if start > 0 && isIdent(text[start-1]) {
		return false
	}

	return end >= len(text) || !isIdent(text[end])
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isIdent treats every non-ASCII byte as part of an identifier so that
// multi-byte runes are never split.
func isIdent(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '_' || b >= 0x80
}

// Package token defines the lexical units of yarn dialogue scripts and a
// read-only cursor over a token sequence.
package token

//go:generate go tool stringer --linecomment --type Type --output type_string.go

import (
	"strconv"
)

// Type identifies the lexical class of a [Token].
type Type int

const (
	Invalid       Type = iota // invalid
	StartLine                 // start-line
	EndLine                   // end-line
	EOF                       // eof
	Word                      // word
	Space                     // space
	Tab                       // tab
	Colon                     // :
	Arrow                     // ->
	Quotation                 // "
	Period                    // .
	DollarSign                // $
	Comma                     // ,
	Hashtag                   // #
	LeftParen                 // (
	RightParen                // )
	LeftBracket               // [
	RightBracket              // ]
	Add                       // +
	Sub                       // -
	Mult                      // *
	Div                       // /
	Backslash                 // \
	Equal                     // =
	EqualToo                  // ==
	NotEqualToo               // !=
	LessThan                  // <
	GreaterThan               // >
	LessThanEq                // <=
	GreaterThanEq             // >=
	Bang                      // !
	StartCommand              // <<
	EndCommand                // >>
	StartNode                 // ---
	EndNode                   // ===
	If                        // if
	Else                      // else
	ElseIf                    // elseif
	End                       // end
	EndIf                     // endif
)

// IsSpace reports whether t is horizontal whitespace.
func (t Type) IsSpace() bool { return t == Space || t == Tab }

// Position is a 0-indexed line and byte column within a source.
type Position struct {
	Line int `json:"line" yaml:"line"`
	Col  int `json:"col"  yaml:"col"`
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Token is a typed, positioned view of a span of the source it was scanned
// from. It never copies the source text.
type Token struct {
	src string

	Type Type
	Position
	Offset int
	Length int
}

// Text returns the source text covered by the token.
func (t Token) Text() string {
	if t.Length == 0 {
		return ""
	}

	return t.src[t.Offset : t.Offset+t.Length]
}

// End returns the offset of the first byte after the token.
func (t Token) End() int { return t.Offset + t.Length }

// Merge returns a token of type typ spanning t through next.
// The position is taken from t.
func (t Token) Merge(next Token, typ Type) Token {
	end := max(t.End(), next.End())
	t.Type = typ
	t.Length = end - t.Offset

	return t
}

func (t Token) String() string {
	return t.Type.String() + "@" + t.Position.String() + " " +
		strconv.Quote(t.Text())
}

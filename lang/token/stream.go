package token

import (
	"fmt"
	"iter"
)

// Stream is an immutable sequence of tokens scanned from one source.
//
// All lookups are by index and never consume tokens, so a rule may try a
// match, give up, and let another rule retry from the same index.
type Stream struct {
	source string
	tokens []Token
}

// NewStream returns an empty stream over source.
func NewStream(source string) *Stream {
	return &Stream{source: source}
}

// Append adds a token covering source[offset:offset+length].
//
// Append panics if the span falls outside the source. That can only happen
// when the scanner miscomputes an offset.
func (s *Stream) Append(typ Type, pos Position, offset, length int) {
	if offset < 0 || length < 0 || offset+length > len(s.source) {
		panic(fmt.Sprintf(
			"token span [%d:%d] out of range for source of length %d",
			offset, offset+length, len(s.source),
		))
	}

	s.tokens = append(s.tokens, Token{
		src:      s.source,
		Type:     typ,
		Position: pos,
		Offset:   offset,
		Length:   length,
	})
}

// Replace substitutes the n tokens beginning at index i with tok.
func (s *Stream) Replace(i, n int, tok Token) {
	s.tokens[i] = tok
	s.tokens = append(s.tokens[:i+1], s.tokens[i+n:]...)
}

// Source returns the text the stream was scanned from.
func (s *Stream) Source() string { return s.source }

// Len returns the number of tokens.
func (s *Stream) Len() int { return len(s.tokens) }

// Peek returns the token at index i.
func (s *Stream) Peek(i int) (Token, bool) {
	if i < 0 || i >= len(s.tokens) {
		return Token{}, false
	}

	return s.tokens[i], true
}

// Is reports whether the token at index i has type typ.
func (s *Stream) Is(i int, typ Type) bool {
	t, ok := s.Peek(i)

	return ok && t.Type == typ
}

// Type returns the type of the token at index i, or [Invalid].
func (s *Stream) Type(i int) Type {
	t, _ := s.Peek(i)

	return t.Type
}

// Text returns the source text of the token at index i.
func (s *Stream) Text(i int) string {
	t, _ := s.Peek(i)

	return t.Text()
}

// Pos returns the position of the token at index i, or the zero Position.
func (s *Stream) Pos(i int) Position {
	t, _ := s.Peek(i)

	return t.Position
}

// Line returns the line of the token at index i, or 0.
func (s *Stream) Line(i int) int { return s.Pos(i).Line }

// Col returns the column of the token at index i, or 0.
func (s *Stream) Col(i int) int { return s.Pos(i).Col }

// NextNonSpace returns the index of the first token after i that is not
// horizontal whitespace.
func (s *Stream) NextNonSpace(i int) int {
	i++
	for i < len(s.tokens) && s.tokens[i].Type.IsSpace() {
		i++
	}

	return i
}

// All returns an iterator over the index and value of every token.
func (s *Stream) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i, t := range s.tokens {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Tokens returns a copy of the token sequence.
func (s *Stream) Tokens() []Token {
	return append([]Token(nil), s.tokens...)
}

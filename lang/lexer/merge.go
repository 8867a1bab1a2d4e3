package lexer

import (
	"github.com/ardnew/yarnspin/lang/token"
)

type pattern struct {
	seq []token.Type
	typ token.Type
}

// patterns is tried in order at every index, so `===` becomes EndNode
// rather than EqualToo followed by a stray Equal.
var patterns = [...]pattern{
	{[]token.Type{token.LessThan, token.LessThan}, token.StartCommand},
	{[]token.Type{token.GreaterThan, token.GreaterThan}, token.EndCommand},
	{[]token.Type{token.Sub, token.Sub, token.Sub}, token.StartNode},
	{[]token.Type{token.Equal, token.Equal, token.Equal}, token.EndNode},
	{[]token.Type{token.Equal, token.Equal}, token.EqualToo},
	{[]token.Type{token.Bang, token.Equal}, token.NotEqualToo},
	{[]token.Type{token.Sub, token.GreaterThan}, token.Arrow},
	{[]token.Type{token.GreaterThan, token.Equal}, token.GreaterThanEq},
	{[]token.Type{token.LessThan, token.Equal}, token.LessThanEq},
	{[]token.Type{token.Else, token.If}, token.ElseIf},
	{[]token.Type{token.End, token.If}, token.EndIf},
}

// merge fuses every run of adjacent tokens that matches a pattern into a
// single token spanning the run.
func merge(s *token.Stream) {
	for i := 0; i < s.Len(); i++ {
		for _, p := range patterns {
			if !matchAt(s, i, p.seq) {
				continue
			}

			first, _ := s.Peek(i)
			last, _ := s.Peek(i + len(p.seq) - 1)
			s.Replace(i, len(p.seq), first.Merge(last, p.typ))

			break
		}
	}
}

func matchAt(s *token.Stream, i int, seq []token.Type) bool {
	for j, typ := range seq {
		if !s.Is(i+j, typ) {
			return false
		}
	}

	return true
}

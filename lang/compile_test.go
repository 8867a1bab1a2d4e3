package lang_test

import (
	"errors"
	"testing"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/lexer"
	"github.com/ardnew/yarnspin/lang/token"
)

func TestCompile_Tree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		tree   string
	}{
		{"factor_binds_tighter", "1+1*2", "(1 + (1 * 2))"},
		{"additive_binds_tighter", "3 >= 2 + 1", "(3 >= (2 + 1))"},
		{"left_associative", "1-2-3", "((1 - 2) - 3)"},
		{"left_associative_factor", "8 / 4 / 2", "((8 / 4) / 2)"},
		{"equality_loosest", "$a + 1 == $b * 2", "(($a + 1) == ($b * 2))"},
		{"negative_decimal", "-2.2", "(-2.2)"},
		{"not_group", "!($x == 1)", "(!($x == 1))"},
		{"spaced_unary", "- 3", "(-3)"},
		{"group_overrides", "(1 + 2) * 3", "((1 + 2) * 3)"},
		{"call", "dice(6, 2)", "dice(6, 2)"},
		{"call_no_args", "random()", "random()"},
		{"call_nested", "round(random_range(1, $max) + 0.5)", "round((random_range(1, $max) + 0.5))"},
		{"string_escape", `"say \"hi\""`, `"say \"hi\""`},
		{"string_keywords", `"if else end"`, `"if else end"`},
		{"surrounding_space", "   true  ", "true"},
		{"keyword_variable", "$end", "$end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr, err := lang.Compile(t.Context(), tt.source)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.source, err)
			}

			if got := expr.String(); got != tt.tree {
				t.Errorf("tree = %s, want %s", got, tt.tree)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   *lang.Error
		pos    token.Position
	}{
		{"empty", "", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 0}},
		{"unterminated_string", `"abc`, lang.ErrEOL, token.Position{Line: 0, Col: 4}},
		{"unterminated_escape", `"abc\"`, lang.ErrEOL, token.Position{Line: 0, Col: 6}},
		{"bad_fraction", "1.x", lang.ErrInvalidNumber, token.Position{Line: 0, Col: 2}},
		{"dangling_period", "1.", lang.ErrInvalidNumber, token.Position{Line: 0, Col: 2}},
		{"bare_word", "maybe", lang.ErrInvalidBoolean, token.Position{Line: 0, Col: 0}},
		{"sigil_only", "$ 1", lang.ErrInvalidVariableIdentifier, token.Position{Line: 0, Col: 1}},
		{"missing_operand", "1 +", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 3}},
		{"missing_paren", "(1 + 2", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 6}},
		{"trailing_token", "1 2", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 2}},
		{"double_comma", "f(1,,2)", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 4}},
		{"leading_comma", "f(,1)", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 2}},
		{"trailing_comma", "f(1,)", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 4}},
		{"unclosed_call", "f(1", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 3}},
		{"unary_on_operator", "-*", lang.ErrUnexpectedToken, token.Position{Line: 0, Col: 1}},
		{"second_line", "1\n2", lang.ErrUnexpectedToken, token.Position{Line: 1, Col: 0}},
		{"error_in_argument", `f("x)`, lang.ErrEOL, token.Position{Line: 0, Col: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := lang.Compile(t.Context(), tt.source)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compile(%q) error = %v, want %v", tt.source, err, tt.want)
			}

			var e *lang.Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *lang.Error", err)
			}

			if pos, ok := e.Position(); !ok || pos != tt.pos {
				t.Errorf("position = %v (%v), want %v", pos, ok, tt.pos)
			}
		})
	}
}

func TestCompile_MaxDepth(t *testing.T) {
	t.Parallel()

	if _, err := lang.Compile(t.Context(), "((((1))))", lang.WithMaxDepth(3)); !errors.Is(err, lang.ErrExpressionTooDeep) {
		t.Errorf("error = %v, want ExpressionTooDeep", err)
	}

	if _, err := lang.Compile(t.Context(), "((((1))))", lang.WithMaxDepth(5)); err != nil {
		t.Errorf("error = %v, want nil", err)
	}

	if _, err := lang.Compile(t.Context(), "f(f(f(1)))", lang.WithMaxDepth(2)); !errors.Is(err, lang.ErrExpressionTooDeep) {
		t.Errorf("call nesting error = %v, want ExpressionTooDeep", err)
	}
}

func TestParseExpression_InsideCommand(t *testing.T) {
	t.Parallel()

	s := lexer.Tokenize("<<if $gold >= 10>>")

	out := lang.ParseExpression(s, 4)
	if !out.Parsed() {
		t.Fatalf("ParseExpression() failed: %v", out.Err())
	}

	if got := out.Node().String(); got != "($gold >= 10)" {
		t.Errorf("node = %s", got)
	}

	if !s.Is(out.Next(), token.EndCommand) {
		t.Errorf("next = %d (%s), want EndCommand", out.Next(), s.Type(out.Next()))
	}

	if out := lang.ParseExpression(s, 1); !out.Failed() {
		t.Errorf("ParseExpression at `<<` should fail, got err=%v", out.Err())
	}
}

func TestCompileStream(t *testing.T) {
	t.Parallel()

	out := lang.CompileStream(lexer.Tokenize("  1 + 1  \n\n"))
	if !out.Parsed() {
		t.Fatalf("CompileStream() = err %v", out.Err())
	}

	if out := lang.CompileStream(lexer.Tokenize(">>")); !out.Failed() {
		t.Errorf("CompileStream(>>) should fail, got err=%v", out.Err())
	}
}

package repl

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/builtin"
)

func newSession() *session {
	return &session{vars: lang.Variables{}, funcs: builtin.Functions()}
}

func TestSessionCommands(t *testing.T) {
	t.Parallel()

	s := newSession()
	ctx := t.Context()

	steps := []struct {
		line    string
		want    string
		wantErr error
	}{
		{line: "set gold 12", want: "$gold = 12"},
		{line: "set $name Mae Holt", want: `$name = "Mae Holt"`},
		{line: "set brave true", want: "$brave = true"},
		{line: "vars", want: "$brave = true (BOOL)\n$gold = 12 (NUMBER)\n$name = \"Mae Holt\" (STRING)"},
		{line: "unset brave", want: "unset $brave"},
		{line: "unset brave", wantErr: ErrUnknownVariable},
		{line: "set gold", wantErr: ErrUsage},
		{line: "set g-old 1", wantErr: ErrUsage},
		{line: "jump Start", wantErr: ErrUnknownCommand},
	}

	for _, step := range steps {
		r, err := s.command(ctx, step.line)
		if step.wantErr != nil {
			if !errors.Is(err, step.wantErr) {
				t.Errorf("%q: error = %v, want %v", step.line, err, step.wantErr)
			}

			continue
		}

		if err != nil {
			t.Fatalf("%q: error = %v", step.line, err)
		}

		if r.text != step.want {
			t.Errorf("%q: reply = %q, want %q", step.line, r.text, step.want)
		}
	}

	got, err := s.eval(ctx, `$name + " has " + $gold`)
	if err != nil {
		t.Fatal(err)
	}

	if want := `"Mae Holt has 12"`; got != want {
		t.Errorf("eval = %s, want %s", got, want)
	}
}

func TestSessionControl(t *testing.T) {
	t.Parallel()

	s := newSession()

	tests := []struct {
		line string
		want reply
	}{
		{"quit", reply{quit: true}},
		{"exit", reply{quit: true}},
		{"clear", reply{clear: true}},
	}

	for _, tt := range tests {
		r, err := s.command(t.Context(), tt.line)
		if err != nil || r != tt.want {
			t.Errorf("command(%q) = %+v, %v; want %+v", tt.line, r, err, tt.want)
		}
	}

	r, err := s.command(t.Context(), "source")
	if err != nil || !r.source {
		t.Errorf("command(source) = %+v, %v", r, err)
	}

	r, err = s.command(t.Context(), "funcs")
	if err != nil || !strings.Contains(r.text, "random_range\n") {
		t.Errorf("command(funcs) = %q, %v", r.text, err)
	}

	r, err = s.command(t.Context(), "help")
	if err != nil || !strings.Contains(r.text, "set NAME VALUE") {
		t.Errorf("command(help) = %q, %v", r.text, err)
	}
}

func TestSessionEval(t *testing.T) {
	t.Parallel()

	s := newSession()

	tests := []struct {
		line    string
		want    string
		wantErr *lang.Error
	}{
		{line: "1 + 2 * 3", want: "7"},
		{line: "round(2.5)", want: "3"},
		{line: `"a" == "a"`, want: "true"},
		{line: "$missing", wantErr: lang.ErrVariableNotDeclared},
		{line: "1 +", wantErr: lang.ErrUnexpectedToken},
	}

	for _, tt := range tests {
		got, err := s.eval(t.Context(), tt.line)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("eval(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}

			if !strings.Contains(renderError(tt.line, err), "^") {
				t.Errorf("renderError(%q) has no position marker", tt.line)
			}

			continue
		}

		if err != nil || got != tt.want {
			t.Errorf("eval(%q) = %q, %v; want %q", tt.line, got, err, tt.want)
		}
	}
}

func TestSessionTokens(t *testing.T) {
	t.Parallel()

	got, err := newSession().tokens(t.Context(), "<<if $a>>")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"<<", "if", "$", ">>"} {
		if !strings.Contains(got, want) {
			t.Errorf("tokens missing %q:\n%s", want, got)
		}
	}
}

func TestSessionSource(t *testing.T) {
	t.Parallel()

	s := newSession()
	s.vars["gold"] = lang.NumberValue(12)

	tests := []struct {
		name    string
		text    string
		want    string
		dump    []string
		stage   error
		wantErr *lang.Error
	}{
		{
			name: "value",
			text: "round($gold / 5) + 1",
			want: "3",
			dump: []string{`"round"`, `"$"`, `"gold"`, "eof"},
		},
		{
			name: "trailing blank line",
			text: "$gold >= 10\n",
			want: "true",
			dump: []string{">="},
		},
		{
			name:    "compile error",
			text:    "1 +",
			dump:    []string{`"+"`},
			stage:   ErrCompile,
			wantErr: lang.ErrUnexpectedToken,
		},
		{
			name:    "runtime error",
			text:    "$gold + $missing",
			dump:    []string{`"missing"`},
			stage:   ErrRuntime,
			wantErr: lang.ErrVariableNotDeclared,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dump, got, err := s.source(t.Context(), tt.text)

			for _, want := range tt.dump {
				if !strings.Contains(dump, want) {
					t.Errorf("dump missing %q:\n%s", want, dump)
				}
			}

			if tt.stage != nil {
				if !errors.Is(err, tt.stage) || !errors.Is(err, tt.wantErr) {
					t.Fatalf("source() error = %v, want %v and %v", err, tt.stage, tt.wantErr)
				}

				return
			}

			if err != nil || got != tt.want {
				t.Errorf("source() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestModelSourceMode(t *testing.T) {
	t.Parallel()

	s := newSession()
	s.vars["gold"] = lang.NumberValue(12)

	m := newModel(t.Context(), s, NewHistory(""))

	typeLine := func(m model, line string) (model, tea.Cmd) {
		for _, r := range line {
			m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}

		return m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl {
		t.Fatalf("mode = %v, want command mode", m.mode)
	}

	m, _ = typeLine(m, "source")
	if m.mode != modeSource {
		t.Fatalf("mode = %v, want source mode", m.mode)
	}

	m, _ = typeLine(m, "$gold * 2")

	if len(m.script) != 1 || m.script[0] != "$gold * 2" {
		t.Errorf("script = %q, want one line", m.script)
	}

	m, cmd := typeLine(m, "done")

	if m.mode != modeEval {
		t.Errorf("mode = %v, want eval mode", m.mode)
	}

	if m.script != nil {
		t.Errorf("script = %q, want it cleared", m.script)
	}

	if cmd == nil {
		t.Error("done returned no output")
	}

	if m.history.Len() != 3 {
		t.Errorf("history length = %d, want 3", m.history.Len())
	}
}

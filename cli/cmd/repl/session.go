package repl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/lexer"
	"github.com/ardnew/yarnspin/log"
)

// session is the state shared by every line entered in the REPL.
type session struct {
	vars   lang.Variables
	funcs  lang.Functions
	opts   []lang.Option
	logger log.Logger
}

// reply is the outcome of a control command.
type reply struct {
	text   string
	quit   bool
	clear  bool
	source bool
}

// commands lists the control commands with their usage, in help order.
var commands = []struct{ name, args, help string }{
	{"set", "NAME VALUE", "Assign a variable; VALUE is a boolean, number or string"},
	{"unset", "NAME", "Remove a variable"},
	{"vars", "", "List variables"},
	{"funcs", "", "List functions"},
	{"source", "", "Read lines until 'done', then dump their tokens and evaluate them"},
	{"clear", "", "Clear screen"},
	{"help", "", "Print this help"},
	{"quit", "", "Exit REPL"},
}

// commandNames returns the control command names for completion.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("\n: Commands (press Esc to toggle mode):\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-18s %s\n", strings.TrimSpace(c.name+" "+c.args), c.help)
	}

	b.WriteString(`
Usage:
  Type an expression to evaluate it, e.g. round($gold / 3) >= 2
  Completions for functions and $variables appear as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between eval and command modes
  Use Up/Down for history, Shift+Up/Shift+Down within the current mode
  Press Ctrl+C on an empty line or Ctrl+D to exit
`)

	return b.String()
}

// eval compiles and evaluates line, returning the result's display form.
func (s *session) eval(ctx context.Context, line string) (string, error) {
	e, err := lang.CompileCached(ctx, line, s.opts...)
	if err != nil {
		return "", err
	}

	v, err := e.Evaluate(ctx, s.vars, s.funcs)
	if err != nil {
		return "", err
	}

	s.logger.TraceContext(ctx, "repl eval result",
		slog.String("type", v.Type().String()),
		slog.String("tree", e.String()),
	)

	return display(v), nil
}

// source tokenizes text and returns its token dump, then compiles and
// evaluates text as one expression. Compile failures wrap [ErrCompile] and
// evaluation failures wrap [ErrRuntime]; the dump is returned either way.
func (s *session) source(ctx context.Context, text string) (dump, result string, err error) {
	dump, err = s.tokens(ctx, text)
	if err != nil {
		return "", "", err
	}

	e, err := lang.CompileCached(ctx, text, s.opts...)
	if err != nil {
		return dump, "", fmt.Errorf("%w: %w", ErrCompile, err)
	}

	v, err := e.Evaluate(ctx, s.vars, s.funcs)
	if err != nil {
		return dump, "", fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	s.logger.TraceContext(ctx, "repl source result",
		slog.Int("lines", strings.Count(text, "\n")+1),
		slog.String("tree", e.String()),
	)

	return dump, display(v), nil
}

func display(v lang.Value) string {
	if !v.Valid() {
		return "(no value)"
	}

	return v.Quote()
}

// tokens returns the token dump of line.
func (s *session) tokens(ctx context.Context, line string) (string, error) {
	var b strings.Builder

	stream := lexer.TokenizeContext(ctx, line, lexer.WithLogger(s.logger))
	if err := lang.FormatTokens(ctx, &b, stream); err != nil {
		return "", err
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// command executes a control command line.
func (s *session) command(ctx context.Context, line string) (reply, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return reply{}, nil
	}

	name, args := fields[0], fields[1:]

	s.logger.TraceContext(ctx, "repl command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	switch name {
	case "q", "quit", "exit":
		return reply{quit: true}, nil

	case "h", "help":
		return reply{text: helpMessage()}, nil

	case "c", "clear":
		return reply{clear: true}, nil

	case "source":
		return reply{text: "enter script lines, 'done' to finish", source: true}, nil

	case "vars":
		return reply{text: s.listVars()}, nil

	case "funcs":
		return reply{text: strings.Join(slices.Collect(s.funcs.Names()), "\n")}, nil

	case "set":
		return s.set(args)

	case "unset":
		return s.unset(args)

	default:
		return reply{}, fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, name)
	}
}

func (s *session) set(args []string) (reply, error) {
	if len(args) < 2 {
		return reply{}, fmt.Errorf("%w: set NAME VALUE", ErrUsage)
	}

	name := strings.TrimPrefix(args[0], "$")
	if !isName(name) {
		return reply{}, fmt.Errorf("%w: set NAME VALUE: invalid name %q", ErrUsage, args[0])
	}

	v := lang.ParseValue(strings.Join(args[1:], " "))
	s.vars[name] = v

	return reply{text: fmt.Sprintf("$%s = %s", name, v.Quote())}, nil
}

func (s *session) unset(args []string) (reply, error) {
	if len(args) != 1 {
		return reply{}, fmt.Errorf("%w: unset NAME", ErrUsage)
	}

	name := strings.TrimPrefix(args[0], "$")
	if _, ok := s.vars[name]; !ok {
		return reply{}, fmt.Errorf("%w: $%s", ErrUnknownVariable, name)
	}

	delete(s.vars, name)

	return reply{text: "unset $" + name}, nil
}

func (s *session) listVars() string {
	if len(s.vars) == 0 {
		return "(no variables)"
	}

	var b strings.Builder

	for name := range s.vars.Names() {
		v := s.vars[name]
		fmt.Fprintf(&b, "$%s = %s (%s)\n", name, v.Quote(), v.Type())
	}

	return strings.TrimRight(b.String(), "\n")
}

// isName reports whether name is a single word a variable reference can
// use.
func isName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

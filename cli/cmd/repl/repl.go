package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/log"
)

const (
	evalPrompt   = "➜ "
	ctrlPrompt   = " :"
	sourcePrompt = " …"
)

// inputMode is what an entered line is interpreted as.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
	modeSource
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	sourcePromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("3")).
				Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

var prompts = map[inputMode]string{
	modeEval:   promptStyle.Render(evalPrompt),
	modeCtrl:   ctrlPromptStyle.Render(ctrlPrompt),
	modeSource: sourcePromptStyle.Render(sourcePrompt),
}

type config struct {
	session
	history string
	program []tea.ProgramOption
}

// Option configures [Run].
type Option func(*config)

// WithVariables sets the initial variables. The map is modified by the set
// and unset commands.
func WithVariables(vars lang.Variables) Option {
	return func(c *config) {
		if vars != nil {
			c.vars = vars
		}
	}
}

// WithFunctions sets the functions available to expressions.
func WithFunctions(funcs lang.Functions) Option {
	return func(c *config) { c.funcs = funcs }
}

// WithCompileOptions sets the options every expression is compiled with.
func WithCompileOptions(opts ...lang.Option) Option {
	return func(c *config) { c.opts = opts }
}

// WithLogger sets the logger for trace records.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHistory persists the line history to path. Without it, the history
// lasts for the session only.
func WithHistory(path string) Option {
	return func(c *config) { c.history = path }
}

// WithIO replaces the terminal streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *config) {
		c.program = append(c.program, tea.WithInput(in), tea.WithOutput(out))
	}
}

// model is the bubbletea model of the REPL.
type model struct {
	ctxFunc      func() context.Context
	session      *session
	input        textinput.Model
	history      *History
	matches      fuzzy.Matches
	historyIdx   int
	wordStart    int
	wordEnd      int
	suggIdx      int
	preTabCursor int
	width        int
	mode         inputMode
	preTabText   string
	saved        map[inputMode]string
	script       []string
	tabActive    bool
	quitting     bool
}

// Run starts the interactive shell and blocks until the user quits.
func Run(ctx context.Context, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	c := config{session: session{vars: lang.Variables{}}}
	for _, opt := range opts {
		opt(&c)
	}

	history := NewHistory(c.history)
	if err := history.Load(); err != nil {
		c.logger.WarnContext(ctx, "could not load history",
			slog.String("path", c.history),
			slog.Any("error", err),
		)
	}

	c.logger.TraceContext(ctx, "repl start",
		slog.String("history", c.history),
		slog.Int("history_entries", history.Len()),
		slog.Int("variables", len(c.vars)),
		slog.Int("functions", len(c.funcs)),
	)

	p := tea.NewProgram(
		newModel(ctx, &c.session, history),
		append(c.program, tea.WithContext(ctx))...,
	)

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return context.Cause(ctx)
	}

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, s *session, history *History) model {
	ti := textinput.New()
	ti.Prompt = prompts[modeEval]
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		session:    s,
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
		saved:      map[inputMode]string{},
		suggIdx:    -1,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hint())
	b.WriteString("\n")

	return b.String()
}

// hint returns the line shown below the input.
func (m model) hint() string {
	switch {
	case m.historyIdx < m.history.Len():
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len(),
		))

	case len(m.matches) > 0:
		return m.renderCandidateBar()

	case strings.TrimSpace(m.input.Value()) != "":
		return ""

	case m.mode == modeCtrl:
		return hintStyle.Render("Type: " + strings.Join(commandNames(), ", ") + " (press Esc to return)")

	case m.mode == modeSource:
		return hintStyle.Render(fmt.Sprintf("Line %d: type a script line, or done to evaluate", len(m.script)+1))

	default:
		return hintStyle.Render("Type an expression or press Esc for commands")
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.session.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()

			return m, nil
		}

		if m.mode == modeCtrl {
			return m.switchMode(modeEval), nil
		}

		return m.switchMode(modeCtrl), nil
	}

	if msg.Type == tea.KeyRunes && m.tabActive && msg.String() == " " {
		m.tabActive = false
	}

	if msg.Type != tea.KeyRunes {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the completion selection by step and writes the selected
// candidate into the input. A single candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.matches = nil
		m.suggIdx = -1

		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = -1

		if step < 0 {
			m.suggIdx = 0
		}
	}

	m.suggIdx = (m.suggIdx + step + n) % n
	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord replaces the word under the cursor with text.
func (m *model) replaceWord(text string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + text + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(text))
	m.wordEnd = m.wordStart + len(text)
}

// refreshMatches recomputes the completion matches unless tab-cycling.
func (m *model) refreshMatches() {
	if m.tabActive {
		return
	}

	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1
}

func (m model) executeInput() (model, tea.Cmd) {
	raw := strings.TrimRight(m.input.Value(), "\r\n")
	line := strings.TrimSpace(raw)
	if line == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(line, m.mode); err != nil {
		m.session.logger.DebugContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()
	echo := tea.Println(prompts[m.mode] + inputStyle.Render(line))

	switch m.mode {
	case modeCtrl:
		r, err := m.session.command(m.ctxFunc(), line)
		if err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		switch {
		case r.quit:
			m.quitting = true

			return m, tea.Sequence(echo, tea.Quit)

		case r.clear:
			return m, tea.ClearScreen

		case r.source:
			m.script = nil
			m = m.switchMode(modeSource)
		}

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(r.text)))

	case modeSource:
		if line != "done" {
			m.script = append(m.script, raw)

			return m, echo
		}

		return m.finishScript(echo)

	default:
		out, err := m.session.eval(m.ctxFunc(), line)
		if err != nil {
			return m, tea.Sequence(echo, tea.Println(renderError(line, err)))
		}

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
	}
}

// finishScript dumps the tokens of the lines collected in source mode, then
// evaluates them as one expression.
func (m model) finishScript(echo tea.Cmd) (model, tea.Cmd) {
	text := strings.Join(m.script, "\n")
	m.script = nil
	m = m.switchMode(modeEval)

	if strings.TrimSpace(text) == "" {
		return m, echo
	}

	dump, out, err := m.session.source(m.ctxFunc(), text)

	cmds := []tea.Cmd{echo}
	if dump != "" {
		cmds = append(cmds, tea.Println(resultStyle.Render(dump)))
	}

	if err != nil {
		cmds = append(cmds, tea.Println(renderError(text, err)))
	} else {
		cmds = append(cmds, tea.Println(resultStyle.Render(out)))
	}

	return m, tea.Sequence(cmds...)
}

// renderError renders err with a marker under its position in line.
func renderError(line string, err error) string {
	text := errorStyle.Render("error: " + err.Error())

	var le *lang.Error
	if errors.As(err, &le) {
		if snippet := le.Snippet(line); snippet != "" {
			text += "\n" + hintStyle.Render(strings.TrimRight(snippet, "\n"))
		}
	}

	return text
}

// historyStep moves through the history by step. Unless sameMode is set, the
// input mode follows the mode of each entry.
func (m model) historyStep(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches()

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches()
	}

	return m
}

// switchMode switches to mode, keeping the unsubmitted input of each mode.
func (m model) switchMode(mode inputMode) model {
	if mode == m.mode {
		return m
	}

	m.saved[m.mode] = m.input.Value()
	m.mode = mode
	m.tabActive = false
	m.input.Prompt = prompts[mode]
	m.input.SetValue(m.saved[mode])
	m.input.CursorEnd()
	m.refreshMatches()

	return m
}

package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// isWordBoundary reports whether r separates completion words. The dollar
// sign is not a boundary, so a variable reference completes as one word.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '"', '.', ',',
		'(', ')', '[', ']',
		'+', '-', '*', '/',
		'<', '>', '=', '!':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its byte boundaries within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inString reports whether offset lies inside a string literal of input.
func inString(input string, offset int) bool {
	open, escaped := false, false

	for _, r := range input[:min(offset, len(input))] {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			open = !open
		}
	}

	return open
}

// candidates returns the completion candidates for the eval mode: function
// names, $variables and the boolean literals.
func (s *session) candidates() []string {
	names := slices.Collect(s.funcs.Names())

	for name := range s.vars.Names() {
		names = append(names, "$"+name)
	}

	return append(names, "true", "false")
}

// computeMatches returns the fuzzy matches for the word at the cursor,
// ranked best first, with the word boundaries. An empty word has no
// matches, which leaves room for the hint line.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)
	if word == "" {
		return nil, wordStart, wordEnd
	}

	var candidates []string

	switch m.mode {
	case modeCtrl:
		if strings.TrimSpace(input[:wordStart]) != "" {
			return nil, wordStart, wordEnd
		}

		candidates = commandNames()

	case modeEval:
		if inString(input, wordStart) {
			return nil, wordStart, wordEnd
		}

		candidates = m.session.candidates()

	default:
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar renders the completion bar, ellipsized to width. The
// selected candidate is highlighted while tab-cycling.
func (m model) renderCandidateBar() string {
	if len(m.matches) == 0 || m.width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	limit := m.width - lipgloss.Width(ellipsis) - lipgloss.Width(sep)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range m.matches {
		rendered := m.renderCandidate(match, m.tabActive && i == m.suggIdx)
		width := lipgloss.Width(rendered)

		if i > 0 {
			width += lipgloss.Width(sep)
		}

		if i > 0 && i < len(m.matches)-1 && used+width > limit {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += width
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters in
// bold. Functions get a "()" suffix that is not part of the completion.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, highlight = selectedStyle, selectedStyle.Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if _, ok := m.session.funcs[match.Str]; ok && m.mode == modeEval {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

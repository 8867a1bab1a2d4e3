package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

// defaultHistorySize bounds the number of entries kept in the history file.
const defaultHistorySize = 1000

// HistoryEntry is one line of history and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// modeTag prefixes each line of the history file.
var modeTag = map[inputMode]string{
	modeEval:   "E:",
	modeCtrl:   "C:",
	modeSource: "S:",
}

// History is a line history persisted to a file. An empty path keeps the
// history in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	max     int
	mu      sync.RWMutex
}

// NewHistory returns a history backed by path.
func NewHistory(path string) *History {
	return &History{path: path, max: defaultHistorySize}
}

// Load replaces the entries with those read from the history file. A missing
// file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := HistoryEntry{Line: line, Mode: modeEval}

		for mode, tag := range modeTag {
			if s, ok := strings.CutPrefix(line, tag); ok {
				entry = HistoryEntry{Line: s, Mode: mode}

				break
			}
		}

		h.entries = append(h.entries, entry)
	}

	h.trim()

	return scanner.Err()
}

// Add appends line to the history. An earlier identical entry in the same
// mode is moved to the end rather than repeated.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := HistoryEntry{Line: line, Mode: mode}

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	rewrite := false

	if i := slices.Index(h.entries, entry); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
		rewrite = true
	}

	h.entries = append(h.entries, entry)

	if h.trim() {
		rewrite = true
	}

	if h.path == "" {
		return nil
	}

	if rewrite {
		return h.rewrite()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(modeTag[mode] + line + "\n")

	return err
}

// Entry returns the entry at i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// trim drops the oldest entries beyond the size limit. h.mu must be held.
func (h *History) trim() bool {
	if h.max <= 0 || len(h.entries) <= h.max {
		return false
	}

	h.entries = slices.Delete(h.entries, 0, len(h.entries)-h.max)

	return true
}

// rewrite replaces the history file with the current entries. h.mu must be
// held.
func (h *History) rewrite() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, e := range h.entries {
		if _, err := w.WriteString(modeTag[e.Mode] + e.Line + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}

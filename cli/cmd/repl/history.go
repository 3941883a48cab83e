package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

const (
	baseHistory = "history.utf8"

	// DefaultHistorySize is the number of entries kept when no limit is
	// given to [NewHistory].
	DefaultHistorySize = 500
)

// modePrefix tags each line of the history file with its input mode.
//
//nolint:gochecknoglobals
var modePrefix = map[inputMode]string{
	modeEval: "E:",
	modeCtrl: "C:",
}

// HistoryEntry is one submitted line and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

func (e HistoryEntry) encode() string { return modePrefix[e.Mode] + e.Line }

func decodeEntry(line string) HistoryEntry {
	for mode, prefix := range modePrefix {
		if s, ok := strings.CutPrefix(line, prefix); ok {
			return HistoryEntry{Line: s, Mode: mode}
		}
	}

	return HistoryEntry{Line: line, Mode: modeEval}
}

// History is the persistent input history of the REPL, bounded to a fixed
// number of entries. An entry submitted again moves to the end.
type History struct {
	mu      sync.RWMutex
	path    string
	limit   int
	entries []HistoryEntry
}

// NewHistory returns an empty history backed by the file at path. A limit
// below 1 means [DefaultHistorySize].
func NewHistory(path string, limit int) *History {
	if limit < 1 {
		limit = DefaultHistorySize
	}

	return &History{path: path, limit: limit}
}

// Load replaces the in-memory entries with the contents of the history
// file. A missing file is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	h.entries = h.entries[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, decodeEntry(line))
		}
	}

	h.trim()

	return scanner.Err()
}

// Append records line in mode and persists it. Blank lines are ignored.
func (h *History) Append(line string, mode inputMode) error {
	entry := HistoryEntry{Line: strings.TrimSpace(line), Mode: mode}
	if entry.Line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	moved := false

	for i, e := range h.entries {
		if e == entry {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			moved = true

			break
		}
	}

	h.entries = append(h.entries, entry)

	if moved || h.trim() {
		return h.flush()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry.encode() + "\n")

	return err
}

// Entry returns entry i, oldest first.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return append([]HistoryEntry(nil), h.entries...)
}

// trim drops the oldest entries beyond the limit and reports whether any
// were dropped. h.mu must be held.
func (h *History) trim() bool {
	over := len(h.entries) - h.limit
	if over <= 0 {
		return false
	}

	h.entries = append(h.entries[:0], h.entries[over:]...)

	return true
}

// flush rewrites the history file from the in-memory entries. h.mu must
// be held.
func (h *History) flush() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, e := range h.entries {
		if _, err := w.WriteString(e.encode() + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}

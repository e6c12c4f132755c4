package content

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// History tracks recently shown entry keys across runs. It is read once at
// the start of a selection and written once after. Persistence failures are
// logged and never abort a run.
type History struct {
	path   string
	window int
	keys   []string
}

// LoadHistory reads the history file. A missing or unparsable file is treated
// as empty.
func LoadHistory(path string, window int) *History {
	h := &History{path: path, window: window}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("content: reading history %s: %v", path, err)
		}
		return h
	}
	if err := json.Unmarshal(data, &h.keys); err != nil {
		log.Printf("content: history %s is unparsable, starting fresh: %v", path, err)
		h.keys = nil
	}
	h.truncate()
	return h
}

// Recent returns the tracked keys, oldest first.
func (h *History) Recent() []string {
	return h.keys
}

// Record appends the newly shown keys and truncates to the window.
func (h *History) Record(keys ...string) {
	h.keys = append(h.keys, keys...)
	h.truncate()
}

// Reset drops all tracked keys, used when the exclusion left too small a pool.
func (h *History) Reset() {
	h.keys = nil
}

// Save writes the history file, creating the parent directory if needed.
// Failure is logged only.
func (h *History) Save() {
	if dir := filepath.Dir(h.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("content: creating history dir %s: %v", dir, err)
			return
		}
	}

	data, err := json.Marshal(h.keys)
	if err != nil {
		log.Printf("content: encoding history: %v", err)
		return
	}
	if err := os.WriteFile(h.path, data, 0o644); err != nil {
		log.Printf("content: writing history %s: %v", h.path, err)
	}
}

func (h *History) truncate() {
	if h.window > 0 && len(h.keys) > h.window {
		h.keys = h.keys[len(h.keys)-h.window:]
	}
}

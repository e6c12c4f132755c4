package store

import (
	"errors"
	"sync"
	"time"

	"github.com/yclin/taipei-brief/internal/weather"
)

var (
	// ErrNotFound is returned when no report has been generated yet.
	ErrNotFound = errors.New("no report available")
)

// Run records one pipeline iteration: the composed report, where the weather
// came from, and whether delivery succeeded.
type Run struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Source      weather.Source `json:"source,omitempty"`
	Report      string         `json:"report,omitempty"`
	Delivered   bool           `json:"delivered"`
	Error       string         `json:"error,omitempty"`
}

// MemoryStore is a concurrency-safe in-memory record of recent runs, feeding
// the status API in loop mode.
type MemoryStore struct {
	mu sync.RWMutex

	runs []Run

	maxHistory int           // max number of retained runs (<= 0 = unlimited)
	maxAge     time.Duration // optional max age of retained runs
}

// NewMemoryStore creates a MemoryStore with optional limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a run and enforces retention.
func (s *MemoryStore) Save(run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, run)

	if s.maxHistory > 0 && len(s.runs) > s.maxHistory {
		over := len(s.runs) - s.maxHistory
		s.runs = s.runs[over:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs); i++ {
			if !s.runs[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.runs = s.runs[i:]
		}
	}
}

// Latest returns the most recent run.
func (s *MemoryStore) Latest() (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return Run{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// Recent returns up to limit runs, newest last. limit <= 0 returns all.
func (s *MemoryStore) Recent(limit int) []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.runs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Run, n)
	copy(out, s.runs[len(s.runs)-n:])
	return out
}

package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/temperature-trend/internal/climate"
)

var (
	// ErrNotFound is returned when no run matches the lookup.
	ErrNotFound = errors.New("run not found")
)

// MemoryStore is a concurrency-safe in-memory history of runs, oldest first.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []climate.Run

	// retention configuration
	maxHistory int           // max number of runs kept
	maxAge     time.Duration // optional max age for runs
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveRun appends a run and enforces retention.
func (s *MemoryStore) SaveRun(run climate.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, run)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.runs) > s.maxHistory {
		over := len(s.runs) - s.maxHistory
		s.runs = s.runs[over:]
	}

	// Enforce retention by age. The newest run always survives.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs)-1; i++ {
			if !s.runs[i].StartedAt.Before(cutoff) {
				break
			}
		}
		s.runs = s.runs[i:]
	}
}

// Latest returns the most recently saved run.
func (s *MemoryStore) Latest() (climate.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return climate.Run{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// Get returns the run with the given id.
func (s *MemoryStore) Get(id string) (climate.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.runs) - 1; i >= 0; i-- {
		if s.runs[i].ID == id {
			return s.runs[i], nil
		}
	}
	return climate.Run{}, ErrNotFound
}

// List returns a copy of the retained runs, oldest first.
func (s *MemoryStore) List() []climate.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]climate.Run, len(s.runs))
	copy(out, s.runs)
	return out
}

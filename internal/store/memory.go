package store

import (
	"sync"
	"time"

	"github.com/i474232898/hydromet/internal/hydromet"
)

// MemoryStore is a concurrency-safe in-memory history of pipeline reports.
type MemoryStore struct {
	mu      sync.RWMutex
	reports []hydromet.Report

	// retention configuration
	maxHistory int           // max number of reports kept
	maxAge     time.Duration // optional max age of reports
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveReport appends a report and enforces retention.
func (s *MemoryStore) SaveReport(r hydromet.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, r)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.reports) > s.maxHistory {
		over := len(s.reports) - s.maxHistory
		s.reports = s.reports[over:]
	}

	// Enforce retention by age; the newest report is always kept.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.reports)-1; i++ {
			if !s.reports[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		s.reports = s.reports[i:]
	}
}

// Latest returns the most recent report.
func (s *MemoryStore) Latest() (hydromet.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.reports) == 0 {
		return hydromet.Report{}, hydromet.ErrNoReport
	}
	return s.reports[len(s.reports)-1], nil
}

// History returns the retained reports, oldest first.
func (s *MemoryStore) History() []hydromet.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]hydromet.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/shelf/internal/openlibrary"
)

// Snapshot represents the latest search results available to the UI.
type Snapshot struct {
	Page                openlibrary.Page
	HasPage             bool
	Pending             string // query currently in flight, empty when idle
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed searches
}

// IsOffline returns true when the catalog has failed several times in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates updates to the search snapshot between the search
// command goroutines and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	latest   uint64
}

// Begin records that a search for query has started and returns its ticket
// for Finish.
func (s *Store) Begin(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	s.snapshot.Pending = query
	return s.latest
}

// Finish records the outcome of the search holding ticket. Results of a
// search that has since been superseded by a newer Begin are dropped and
// Finish reports false.
func (s *Store) Finish(ticket uint64, page *openlibrary.Page, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.latest {
		return false
	}
	s.updateLocked(page, err)
	return true
}

// Update replaces the stored page. When err is non-nil the previous results
// are kept but the error is recorded for visibility.
func (s *Store) Update(page *openlibrary.Page, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateLocked(page, err)
}

func (s *Store) updateLocked(page *openlibrary.Page, err error) {
	s.snapshot.Pending = ""
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if page != nil {
		s.snapshot.Page = page.Clone()
		s.snapshot.HasPage = true
	} else {
		s.snapshot.Page = openlibrary.Page{}
		s.snapshot.HasPage = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Page = s.snapshot.Page.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

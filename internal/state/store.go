package state

import (
	"sync"

	"github.com/five82/folio/internal/catalog"
)

// Phase tracks data readiness. PhaseLoaded is terminal.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseLoaded
)

func (p Phase) String() string {
	if p == PhaseLoaded {
		return "loaded"
	}
	return "init"
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Books      []catalog.Book // full collection, server order
	Filtered   []catalog.Book // Books matching SearchText
	SearchText string
	Direction  Direction
	Phase      Phase
	LastError  error
	Failures   int // failed fetch attempts so far
}

// Loading is true until the collection has been committed.
func (s Snapshot) Loading() bool {
	return s.Phase != PhaseLoaded
}

// Failed reports whether the most recent fetch attempt failed.
func (s Snapshot) Failed() bool {
	return s.Loading() && s.LastError != nil
}

// Store holds the collection, the search text and the direction flag. The
// zero value is ready to use: empty, loading, LTR.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Load commits the fetched collection and recomputes the filtered view. It
// returns false and changes nothing when a collection was already loaded.
func (s *Store) Load(books []catalog.Book) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Phase == PhaseLoaded {
		return false
	}
	s.snapshot.Books = cloneBooks(books)
	s.snapshot.Filtered = Filter(s.snapshot.Books, s.snapshot.SearchText)
	s.snapshot.Phase = PhaseLoaded
	s.snapshot.LastError = nil
	return true
}

// Fail records a fetch failure. The collection stays empty and loading stays
// true.
func (s *Store) Fail(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Phase == PhaseLoaded {
		return
	}
	s.snapshot.LastError = err
	s.snapshot.Failures++
}

// SetSearchText stores text verbatim and rebuilds the filtered view from the
// full collection.
func (s *Store) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.SearchText = text
	s.snapshot.Filtered = Filter(s.snapshot.Books, text)
}

// ToggleDirection flips the direction flag and returns the new value.
func (s *Store) ToggleDirection() Direction {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Direction = s.snapshot.Direction.Toggle()
	return s.snapshot.Direction
}

// SetDirection sets the starting direction.
func (s *Store) SetDirection(d Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Direction = d
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Books = cloneBooks(s.snapshot.Books)
	snap.Filtered = cloneBooks(s.snapshot.Filtered)
	return snap
}

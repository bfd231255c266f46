// Package state holds the book collection, the search text and the
// direction flag, and derives the filtered view the UI renders.
//
// # Overview
//
// The package is split into a pure part and a thin container:
//
//   - filter.go: Filter and RowKey, pure functions over books
//   - direction.go: the cosmetic LTR/RTL flag with its labels
//   - store.go: Store, the mutex-guarded container, and Snapshot
//
// Filtering can be tested without any rendering dependency; the Store only
// sequences mutations and hands out copies.
//
// # Filtering
//
// A book is kept when its title, case folded, contains the search text, case
// folded. Folding uses golang.org/x/text/cases full case folding, so "STRASSE"
// finds "Straße". The search text is stored verbatim (no trimming). The
// filtered view is rebuilt from the full collection on every change, never
// patched:
//
//   - empty search text: filtered equals the full collection, same order
//   - filtering a filtered result again with the same text changes nothing
//   - order always follows the server response
//
// # Lifecycle
//
//	PhaseInit (loading, empty) ──Load──> PhaseLoaded (terminal)
//	    │
//	    └──Fail──> PhaseInit (loading, LastError set)
//
// A failed fetch leaves the store loading with an empty collection. Once
// loaded, further Load and Fail calls are ignored.
//
// # Concurrency Model
//
// The loader commits results from a command goroutine while the UI reads on
// its own event loop, so Store keeps a readers-writer lock:
//
//   - Load/Fail/SetSearchText/ToggleDirection: write lock
//   - Snapshot(): read lock, returns defensive copies
//
// # Usage Example
//
//	var store state.Store
//	store.Load(books)
//	store.SetSearchText("the")
//	for _, b := range store.Snapshot().Filtered {
//		fmt.Println(state.RowKey(b), b.Title)
//	}
package state

package state

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/folio/internal/catalog"
)

// Filter returns the books whose titles contain query once both are case
// folded, in collection order. An empty query matches every title. The result
// is always a fresh slice; books is never modified.
func Filter(books []catalog.Book, query string) []catalog.Book {
	if query == "" {
		return cloneBooks(books)
	}
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(fold.String(b.Title), needle) {
			out = append(out, b)
		}
	}
	return out
}

// RowKey returns the render identity of a book. Books without an id fall back
// to their response position so the key stays stable across filtering.
func RowKey(b catalog.Book) string {
	if id := strings.TrimSpace(b.ID); id != "" {
		return id
	}
	return "#" + strconv.Itoa(b.Index)
}

func cloneBooks(books []catalog.Book) []catalog.Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]catalog.Book, len(books))
	copy(dup, books)
	return dup
}

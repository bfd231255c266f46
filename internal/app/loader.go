package app

import (
	"context"

	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/state"
)

// Loader runs the startup fetch and commits its outcome to the store.
type Loader struct {
	Fetcher catalog.BookFetcher
	Store   *state.Store
}

// Load fetches the collection once. Failures are logged and recorded on the
// store, which stays loading. A result that arrives after ctx is cancelled is
// dropped without touching the store.
func (l Loader) Load(ctx context.Context) error {
	ctx = logging.ContextWithID(ctx, logging.NewRequestID())
	log := logging.For(ctx)

	done := logging.Track(ctx, "book fetch")
	books, err := l.Fetcher.FetchBooks(ctx)
	done()

	if ctx.Err() != nil {
		log.Debug("discarding book fetch result after cancellation")
		return ctx.Err()
	}
	if err != nil {
		l.Store.Fail(err)
		log.WithError(err).WithField("kind", catalog.KindOf(err)).Error("book fetch failed")
		return err
	}
	if !l.Store.Load(books) {
		log.Warn("collection already loaded; ignoring fetch result")
		return nil
	}
	log.WithField("books", len(books)).Info("books loaded")
	return nil
}

// Package catalog provides the HTTP client for the remote book catalog.
//
// # Overview
//
// The catalog is a single unauthenticated endpoint that returns every book in
// one JSON document. folio reads it once at startup; the client therefore
// exposes exactly one operation, FetchBooks, and leaves scheduling and retry
// policy to the caller.
//
// # Files
//
//   - client.go: Client, NewClient options and the request path
//   - book.go: Book and response parsing
//   - errors.go: FetchError and failure classification
//   - metrics.go: Prometheus collectors for fetches and row selections
//
// # Response Format
//
// The endpoint answers with an object holding the books under "data":
//
//	{
//	  "data": [
//	    {"_id": "65a1...", "title": "Anna Karenina", "author": "..."},
//	    {"_id": 2, "title": "Beloved"}
//	  ]
//	}
//
// Parsing goes through gjson so the document does not need a fixed schema:
//
//   - "_id" is preferred, "id" is the fallback; numbers and strings both
//     become Book.ID strings
//   - a missing title yields an empty Book.Title
//   - every other field is kept verbatim in Book.Raw
//   - non-object array elements are skipped
//
// A body that is not JSON, lacks "data", or whose "data" is not an array is a
// decode failure.
//
// # Error Handling
//
// Every failure of FetchBooks is a *FetchError. Its Kind (timeout, connection,
// status, decode, canceled, other) feeds log fields and the
// folio_fetch_errors_total metric; callers are expected to treat all kinds
// alike.
//
// Example error messages:
//   - "fetch books: execute request: dial tcp: connection refused"
//   - "fetch books: api /api/books returned status 500"
//   - "fetch books: decode response: response is not valid JSON"
//
// # Usage Example
//
//	client, err := catalog.NewClient(catalog.DefaultEndpoint,
//		catalog.WithTimeout(30*time.Second),
//		catalog.WithMetrics(catalog.NewMetrics()))
//	if err != nil {
//		return err
//	}
//	books, err := client.FetchBooks(ctx)
//
// # Thread Safety
//
// Client is safe for concurrent use; the underlying http.Client handles
// connection pooling.
package catalog

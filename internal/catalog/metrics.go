package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for catalog activity.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   prometheus.Counter
	RequestDuration prometheus.Histogram
	ErrorsTotal     *prometheus.CounterVec
	BooksLoaded     prometheus.Gauge
	SelectionsTotal prometheus.Counter
}

// NewMetrics constructs and registers all collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "folio_fetch_requests_total",
		Help: "Total catalog requests issued.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "folio_fetch_duration_seconds",
		Help:    "Catalog request latency, including body parsing.",
		Buckets: prometheus.DefBuckets,
	})
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_fetch_errors_total",
			Help: "Catalog fetch failures by kind.",
		},
		[]string{"kind"},
	)
	books := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "folio_books_loaded",
		Help: "Number of books in the loaded collection.",
	})
	selections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "folio_book_selections_total",
		Help: "Rows selected in the book list.",
	})

	registry.MustRegister(requests, duration, errorsTotal, books, selections)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		RequestDuration: duration,
		ErrorsTotal:     errorsTotal,
		BooksLoaded:     books,
		SelectionsTotal: selections,
	}
}

// IncRequest increments the request counter.
func (m *Metrics) IncRequest() {
	if m == nil {
		return
	}
	m.RequestsTotal.Inc()
}

// ObserveDuration records a request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncError increments the error counter for kind.
func (m *Metrics) IncError(kind ErrorKind) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(string(kind)).Inc()
}

// SetBooks records the size of the loaded collection.
func (m *Metrics) SetBooks(n int) {
	if m == nil {
		return
	}
	m.BooksLoaded.Set(float64(n))
}

// IncSelection increments the row selection counter.
func (m *Metrics) IncSelection() {
	if m == nil {
		return
	}
	m.SelectionsTotal.Inc()
}

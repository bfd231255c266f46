// Package app provides the orchestration layer for folio.
//
// # Overview
//
// This package wires together configuration, logging, the catalog client,
// the shared state store and the UI. It is the composition root: every
// dependency is built here and handed to the packages that use it.
//
// # Architecture
//
//  1. Load config from ~/.config/folio/config.toml (or --config)
//  2. Apply command-line overrides on top of the file
//  3. Point logrus at the log file (the terminal belongs to the UI)
//  4. Build the catalog client with a dedicated Prometheus registry
//  5. Create the state.Store, seeded with the configured direction
//  6. Optionally serve /metrics
//  7. Start the TUI, which issues the single startup fetch through Loader
//
// # Components
//
//   - app.go: Run (TUI) and List (headless) entry points and config merging
//   - loader.go: Loader, the one-shot fetch that commits to the store
//   - metrics.go: optional Prometheus listener
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read folio config
//	       ├─────> logging.Setup()       Open log file
//	       ├─────> catalog.NewClient()   Create HTTP client
//	       ├─────> state.Store{}         Shared state container
//	       ├─────> startMetrics()        Optional /metrics
//	       └─────> ui.Run()              Start TUI (blocks)
//	                 └─> Loader.Load()   One fetch, bound to the program context
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file invalid
//   - Endpoint or direction rejected
//   - Log file or metrics listener could not be opened
//
// Recoverable errors (logged, UI keeps running):
//   - The startup fetch failing for any reason. The store stays loading and
//     records the failure so the UI can offer a retry.
//
// A fetch that finishes after the program context is cancelled is dropped.
package app

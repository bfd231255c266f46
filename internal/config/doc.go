// Package config loads folio's startup configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/folio/config.toml (default)
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Files ending in .yaml or .yml are read as YAML; everything else is TOML.
//
// # Default Values
//
//   - Endpoint: https://dev.iqrakitab.net/api/books
//   - Timeout: 30s (zero disables it)
//   - Theme: Blossom
//   - Direction: ltr
//   - Log file: ~/.local/state/folio/folio.log
//   - Metrics address: none
//
// # TOML Format
//
//	endpoint = "https://dev.iqrakitab.net/api/books"
//	timeout = "30s"
//	theme = "Nightfox"
//	direction = "rtl"
//	log_file = "~/.local/state/folio/folio.log"
//	metrics_addr = "127.0.0.1:9464"
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, parse errors, an unparsable or negative timeout, and an
// unknown direction. A missing file is not an error.
//
// The configuration is read-only: folio never writes it back.
package config

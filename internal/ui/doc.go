// Package ui provides the Bubble Tea terminal interface for folio.
//
// # Screen
//
// From top to bottom:
//
//   - Title bar: "Book Reading App" and the direction button. The button is
//     labelled with the direction it switches to.
//   - Search box: a bubbles/textinput with a direction-specific placeholder,
//     pushed to the right edge in RTL.
//   - Body: "Loading..." until the collection arrives, then the filtered list
//     with each title aligned by direction.
//   - Footer: book count and key help (bubbles/help).
//
// f3 replaces the search box and body with the diagnostic log pane, a
// bubbles/viewport over the tail of the log file. It re-reads the file every
// two seconds and follows new entries until scrolled up.
//
// # Package Structure
//
//   - app.go: Model, Update loop, load command and Run
//   - header.go: title bar, direction button hit area, search box
//   - list.go: loading indicator and list rows
//   - help.go: footer
//   - pulse.go: per-row selection animation handles
//   - logs.go: diagnostic log pane
//   - keys.go, theme.go, layout.go, style_helpers.go: bindings, palettes, geometry
//
// # Loading
//
// Init issues exactly one load, bound to the program context. Results carry
// a generation number; a result from an older generation or one finishing
// after the context is cancelled is dropped. A failed load leaves the screen
// in its loading state with a muted hint. ctrl+r re-runs the load while the
// failure stands, at most once per five seconds.
//
// # Selection
//
// enter or a left click selects a row: the selection is logged, counted and
// the row's pulse runs (scale 1.0 to 1.1 over 50ms, then back over 50ms).
// Pulse handles are created once per row key and reused from an LRU cache.
//
// # Keys
//
// Printable keys always go to the search input, so bindings use control or
// function keys:
//
//   - ↑/↓, pgup/pgdown, home/end: Move the cursor
//   - enter: Select
//   - ctrl+t: Toggle RTL/LTR
//   - ctrl+r: Retry a failed load
//   - f1: Full key help
//   - f2: Cycle theme (Blossom, Nightfox, Slate)
//   - f3: Diagnostic log pane (↑/↓, pgup/pgdown, home/end scroll it)
//   - esc, ctrl+c: Quit
package ui

// Package version provides version information.
package version

// Version is set at build time via -ldflags "-X github.com/five82/folio/internal/version.Version=<value>".
var Version = "0.1.0"

// UserAgent is the User-Agent header folio sends with catalog requests.
func UserAgent() string {
	return "folio/" + Version
}

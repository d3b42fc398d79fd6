// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	return fmt.Sprintf("mcml version %s (commit: %s, built: %s)", Version, Commit, Date)
}

// UserAgent is sent with every broadcast request.
func UserAgent() string {
	return "mcml/" + Version
}

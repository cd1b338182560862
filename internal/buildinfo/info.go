// Package buildinfo carries version details stamped in at link time:
//
//	go build -ldflags "-X github.com/havenly-dev/havenly/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "fmt"

var (
	// Version will be set via ldflags during build.
	Version = "dev"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)

// String formats the build details for --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

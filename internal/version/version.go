// Package version holds build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/lexsearch/internal/version.Version=v1.2.0
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build as "v1.2.0 (abc1234, 2026-10-16)".
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}

// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X git.home.luguber.info/inful/threadtable/internal/version.Version=v0.3.0"
package version

import "fmt"

// Version is the release tag, "dev" for local builds.
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("threadtable %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}

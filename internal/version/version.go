// Package version holds the release identifiers printed by --version.
package version

import "fmt"

// Release builds override these via ldflags, e.g.
// -X github.com/ScorpionResponse/pelican/internal/version.Version=3.0.1.
var (
	Version   = "3.0"
	GitCommit = ""
	BuildTime = ""
)

// String is the --version text: the version, followed by the commit and
// build time when they were stamped in.
func String() string {
	switch {
	case GitCommit != "" && BuildTime != "":
		return fmt.Sprintf("%s (%s, built %s)", Version, GitCommit, BuildTime)
	case GitCommit != "":
		return fmt.Sprintf("%s (%s)", Version, GitCommit)
	default:
		return Version
	}
}

package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/syncd/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/syncd/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/syncd/internal/version.Date={{.Date}}
)

// String renders the build information for `syncd version`
func String() string {
	return fmt.Sprintf("syncd version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}

package version

// Set at build time, e.g.
// go build -ldflags "-X github.com/alexiusacademia/gorcc/internal/version.Version=1.0.0"
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// BuildTime is the time the binary was built (set via ldflags)
	BuildTime = "unknown"

	// GitCommit is the git commit hash (set via ldflags)
	GitCommit = "unknown"

	// Author of the application
	Author = "Alexius Academia"

	// Year of release
	Year = "2026"
)

// String returns the version line printed by `gorcc version`.
func String() string {
	return "gorcc v" + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}

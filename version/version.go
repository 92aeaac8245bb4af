// Package version holds build information injected with -ldflags, e.g.
// -X github.com/philipparndt/stlselect/version.Version=v1.2.0
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion adds the commit to release versions
func GetFullVersion() string {
	if Version == "dev" || GitCommit == "unknown" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}

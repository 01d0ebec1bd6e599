// Package buildinfo holds build-time metadata injected at link time,
// separate from the coefficient-table version reported by the registry.
package buildinfo

// Set via -ldflags at build time.
var (
	// Version holds the Git version tag from build.
	Version = "dev"

	// BuildDate is the time when the binary was built.
	BuildDate = "unknown"
)

// Context bundles the build metadata for callers that prefer a value over
// package variables.
type Context struct {
	Version   string
	BuildDate string
}

// Current returns the build metadata of the running binary.
func Current() Context {
	return Context{Version: Version, BuildDate: BuildDate}
}

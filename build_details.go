package asynctools

import (
	"fmt"
	"runtime"
)

// Build metadata, set via ldflags during release builds.
var (
	// version is the release tag; "dev" for builds from source
	version = "dev"
	// commit is the short git hash of the build
	commit = "unknown"
	// buildTime is the RFC3339 build timestamp
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit of the build or 'unknown' if run from source
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp or 'unknown' if run from source
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version the binary was built with
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo returns all build metadata as a multi-line string.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}

// FILE: hydrolog/src/internal/version/version.go
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is set at compile time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String returns the full version line
func String() string {
	return fmt.Sprintf("hydrolog %s (commit: %s, built: %s, %s)", Short(), GitCommit, BuildTime, runtime.Version())
}

// Short returns just the version tag
func Short() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

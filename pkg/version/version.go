package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version of the build, set with -ldflags.
	Version = "0.0.0-dev"

	// Revision is the VCS revision of the build, set with -ldflags.
	Revision = ""

	// BuildDate is the build timestamp, set with -ldflags.
	BuildDate = ""
)

func init() {
	if Revision != "" {
		return
	}

	Revision = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			Revision = s.Value
		}
	}
}

// String returns a one line summary of the build.
func String() string {
	return fmt.Sprintf("%s (revision: %s, go: %s)", Version, Revision, runtime.Version())
}

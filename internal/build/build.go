// Package build provides build-time information for the CLI application.
// Values are set via ldflags during build, with a fallback to the module
// information recorded by the Go toolchain.
package build

import (
	"runtime/debug"
)

// version can be overridden via ldflags:
// -X github.com/tacogips/scaffold/internal/build.version=x.y.z
var (
	version   string
	gitCommit string
	buildDate string
)

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
}

// Read returns the build information.
// Priority: ldflags > module build info > "dev"/"unknown"
func Read() Info {
	info := Info{Version: version, GitCommit: gitCommit, BuildDate: buildDate}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	return info
}

// Version returns the application version.
func Version() string {
	return Read().Version
}

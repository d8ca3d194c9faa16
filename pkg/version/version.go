// Package version exposes build metadata for the repostats binary.
package version

import "runtime/debug"

// Build metadata, overridden at link time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// InitBinaryVersion fills in version details from the embedded build info
// when they were not set at link time.
func InitBinaryVersion() {
	if Version != "dev" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			Commit = setting.Value
		case "vcs.time":
			Date = setting.Value
		}
	}
}

// Package version exposes build metadata injected via ldflags.
package version

// Set at build time with -ldflags "-X .../internal/version.Version=...".
var (
	Version   string
	Commit    string
	BuildDate string
)

// Info is the resolved build metadata.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// Get returns the build info, defaulting every unset field to "dev".
func Get() Info {
	info := Info{Version: Version, Commit: Commit, BuildDate: BuildDate}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "dev"
	}
	if info.BuildDate == "" {
		info.BuildDate = "dev"
	}
	return info
}

// Package version reports the footing build.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables injected via -ldflags, e.g.
//
//	-X github.com/geolab/footing/pkg/version.Version=v0.3.1
var (
	Version = "v0.3.0"
	Commit  = "none"
	Date    = "unknown"
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}

// String formats i for --version output.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s)", i.Version, i.Commit, i.Date, i.GoVersion)
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return Get().String()
}

package version

import (
	"fmt"
	"runtime"
)

var (
	// These values are set at build time via -ldflags
	Version   = "dev"     // Version is the semantic version (e.g., v1.2.0)
	GitCommit = "unknown" // GitCommit is the git commit hash
	BuildDate = "unknown" // BuildDate is when the binary was built
)

// GetVersion returns the version string
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	return fmt.Sprintf("dev-%s", GitCommit)
}

// GetShortVersion returns a concise version string for display
func GetShortVersion() string {
	v := GetVersion()
	if GitCommit != "unknown" && len(GitCommit) >= 7 {
		return fmt.Sprintf("%s (%s)", v, GitCommit[:7])
	}
	return v
}

// GetLongVersion returns detailed version information for version output
func GetLongVersion() string {
	var output string
	output += fmt.Sprintf("comfygen version %s\n", GetShortVersion())

	if BuildDate != "unknown" {
		output += fmt.Sprintf("Built: %s\n", BuildDate)
	}

	output += fmt.Sprintf("Go: %s\n", runtime.Version())
	output += fmt.Sprintf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	return output
}

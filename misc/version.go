// Package misc keeps build time information.
package misc

// Set by the linker.
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "chanfmt"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}

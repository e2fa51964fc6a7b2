// SPDX-License-Identifier: MPL-2.0

package config

// dirOverride allows tests to override the configuration root. Necessary
// because os.UserHomeDir() doesn't reliably respect the HOME environment
// variable on all platforms.
var dirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	dirOverride = ""
}

// SetDirOverride sets a custom configuration root, bypassing the
// home-directory lookup. Primarily intended for tests.
func SetDirOverride(dir string) {
	dirOverride = dir
}

// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the current platform is Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}

// BinDirName returns the name of the directory holding environment
// executables: "Scripts" on Windows, "bin" elsewhere.
func BinDirName() string {
	if IsWindows() {
		return "Scripts"
	}
	return "bin"
}

// IncludeDirName returns the name of the environment headers directory:
// "Include" on Windows, "include" elsewhere.
func IncludeDirName() string {
	if IsWindows() {
		return "Include"
	}
	return "include"
}

// SitePackagesGlob returns the glob pattern, relative to the environment
// root, that locates the site-packages directory. The POSIX pattern carries
// a wildcard for the interpreter build name (e.g. "python3.11").
func SitePackagesGlob() string {
	if IsWindows() {
		return filepath.Join("Lib", "site-packages")
	}
	return filepath.Join("lib", "*", "site-packages")
}

// PathListSeparator returns the separator used in the PATH environment
// variable as a string.
func PathListSeparator() string {
	return string(filepath.ListSeparator)
}

// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"os"
	"path/filepath"

	"vsh-cli/pkg/fspath"
	"vsh-cli/pkg/platform"
)

// EnvironmentDescriptor identifies an environment by name and absolute
// directory path. The two are always co-resolved: callers never hold one
// without the other.
type EnvironmentDescriptor struct {
	Name string
	Path string
}

// ResolveDescriptor co-resolves an environment name and path. Either may be
// empty, but not both. A given path wins over a given name (the name is then
// derived from the final path segment); a bare name is placed under the
// environments home.
func ResolveDescriptor(name, path, home string) (EnvironmentDescriptor, error) {
	if name == "" && path == "" {
		return EnvironmentDescriptor{}, &InvalidPathError{Path: path}
	}
	if path != "" {
		abs, err := fspath.Absolute(path)
		if err != nil {
			return EnvironmentDescriptor{}, &InvalidPathError{Path: path}
		}
		return EnvironmentDescriptor{Name: filepath.Base(abs), Path: abs}, nil
	}
	if home == "" {
		home = EnvironmentsHome()
	}
	return EnvironmentDescriptor{Name: name, Path: filepath.Join(home, name)}, nil
}

// BinDir returns the environment's binaries directory.
func (d EnvironmentDescriptor) BinDir() string {
	return filepath.Join(d.Path, platform.BinDirName())
}

// EnvironmentsHome returns the directory environments are created under by
// default: $WORKON_HOME when set, else ~/.virtualenvs (the user profile
// directory on Windows).
func EnvironmentsHome() string {
	if home := os.Getenv("WORKON_HOME"); home != "" {
		return home
	}
	if platform.IsWindows() {
		return filepath.Join(os.Getenv("HOMEDRIVE")+os.Getenv("HOMEPATH"), ".virtualenvs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".virtualenvs"
	}
	return filepath.Join(home, ".virtualenvs")
}

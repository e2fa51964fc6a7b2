// SPDX-License-Identifier: MPL-2.0

// Package fspath provides small helpers around path expansion and existence
// checks shared by the environment manager. They centralize tilde expansion
// and the expand-or-absolute rule applied to every user-supplied path.
package fspath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned when a path operation receives an empty string.
var ErrEmptyPath = errors.New("empty path")

// ExpandUser expands a leading "~" or "~/" segment to the current user's
// home directory. Paths without a tilde prefix are returned unchanged.
func ExpandUser(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// Absolute applies the expand-or-absolute rule: a tilde-prefixed path is
// expanded against the home directory, anything else is made absolute
// against the current working directory. An empty path is an error.
func Absolute(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	expanded, err := ExpandUser(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// Exists reports whether path exists on disk (file or directory).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

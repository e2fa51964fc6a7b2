// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"io/fs"
	"path/filepath"
)

// FindEnvironments walks root and returns every directory that validates as
// an environment. Found environments are not descended into, which keeps
// the walk fast on large trees.
func FindEnvironments(root string) ([]EnvironmentDescriptor, error) {
	var found []EnvironmentDescriptor
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if Validate(path).Valid() {
			found = append(found, EnvironmentDescriptor{Name: d.Name(), Path: path})
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vsh-cli/internal/config"
	"vsh-cli/pkg/fspath"
)

// Cascade performs the ordered, first-match-wins search across candidate
// locations for per-environment configuration and shell-init files.
//
// Precedence order: current working directory, explicit startup directory,
// the environment's own directory, the user's home directory, the per-user
// configuration root, the system-wide configuration root, and the root of
// the enclosing version-control repository when one is resolvable.
//
// Each root is probed for two config files: the environment's own record
// (<name>.cfg, the file written on create) and the shared vsh.cfg. The
// per-environment record written into the configuration root on create is
// therefore picked up on every subsequent entry.
type Cascade struct {
	// EnvName is the environment's name, used to probe each root for the
	// environment's own record file (optional).
	EnvName string
	// EnvPath is the environment's directory.
	EnvPath string
	// StartupDir is the explicit startup directory override (optional).
	StartupDir string
}

// roots returns the candidate directories in precedence order, with
// duplicates (same resolved absolute path) suppressed.
func (c Cascade) roots(ctx context.Context) []string {
	var candidates []string

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, cwd)
	}
	if c.StartupDir != "" && fspath.IsDir(c.StartupDir) {
		candidates = append(candidates, c.StartupDir)
	}
	if c.EnvPath != "" {
		candidates = append(candidates, c.EnvPath)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, home)
	}
	if dir, err := config.Dir(); err == nil {
		candidates = append(candidates, dir)
	}
	candidates = append(candidates, config.SystemDir)
	if top := gitToplevel(ctx); top != "" {
		candidates = append(candidates, top)
	}

	var (
		roots []string
		seen  = map[string]struct{}{}
	)
	for _, dir := range candidates {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		roots = append(roots, abs)
	}
	return roots
}

// ConfigFiles returns the existing config files in precedence order. Within
// a root the environment's own record precedes the shared file. A missing
// file at a candidate location is a non-match, not an error.
func (c Cascade) ConfigFiles(ctx context.Context) []string {
	names := []string{config.EnvFileName}
	if c.EnvName != "" && c.EnvName+config.EnvFileExt != config.EnvFileName {
		names = []string{c.EnvName + config.EnvFileExt, config.EnvFileName}
	}

	var found []string
	for _, root := range c.roots(ctx) {
		for _, name := range names {
			path := filepath.Join(root, name)
			if fspath.IsFile(path) {
				found = append(found, path)
			}
		}
	}
	return found
}

// RCFiles returns the shell-init files discovered by the cascade. A matched
// location may itself be a directory, in which case every regular file
// beneath it contributes, in discovery order.
func (c Cascade) RCFiles(ctx context.Context) []string {
	var found []string
	for _, root := range c.roots(ctx) {
		path := filepath.Join(root, config.RCFileName)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			found = append(found, path)
			continue
		}
		_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.Type().IsRegular() {
				found = append(found, p)
			}
			return nil
		})
	}
	return found
}

// MergedSettings merges the cascade's config files into one record. The
// first occurrence of each key wins; later locations never override keys
// already set. The merge happens entirely in memory.
func (c Cascade) MergedSettings(ctx context.Context) (config.EnvSettings, error) {
	merged := map[string]any{}
	for _, path := range c.ConfigFiles(ctx) {
		values, err := config.LoadEnvFileMap(path)
		if err != nil {
			return config.EnvSettings{}, err
		}
		for key, value := range values {
			if _, set := merged[key]; !set {
				merged[key] = value
			}
		}
	}

	var settings config.EnvSettings
	if v, ok := merged["starting_path"].(string); ok {
		settings.StartingPath = v
	}
	if v, ok := merged["venv_path"].(string); ok {
		settings.VenvPath = v
	}
	if v, ok := merged["python"].(string); ok {
		settings.Python = v
	}
	return settings, nil
}

// gitToplevel returns the root of the repository enclosing the working
// directory. A non-zero git exit means no such integration is available,
// which is not an error.
func gitToplevel(ctx context.Context) string {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	top := strings.TrimSpace(string(out))
	if top == "" || !fspath.IsDir(top) {
		return ""
	}
	return top
}

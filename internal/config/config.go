// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the application name.
	AppName = "vsh"
	// EnvFileExt is the extension of per-environment record files.
	EnvFileExt = ".cfg"
	// EnvFileName is the reserved per-environment config filename probed by
	// the cascade loader inside candidate directories.
	EnvFileName = "vsh.cfg"
	// RCFileName is the reserved shell-init filename probed by the cascade.
	RCFileName = ".vshrc"
	// SystemDir is the fixed system-wide configuration root.
	SystemDir = "/usr/local/etc/vsh"
)

// EnvSettings is the persisted per-environment record. Absent keys stay as
// zero values; an absent file is an empty record, not an error.
type EnvSettings struct {
	// StartingPath is the directory the shell starts in when entering.
	StartingPath string `toml:"starting_path,omitempty"`
	// VenvPath is the environment's own directory.
	VenvPath string `toml:"venv_path,omitempty"`
	// Python is the interpreter version or spec string used at creation.
	Python string `toml:"python,omitempty"`
}

// Dir returns the per-user configuration root (~/.vsh).
func Dir() (string, error) {
	if dirOverride != "" {
		return dirOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "."+AppName), nil
}

// EnvFilePath returns the record path for the named environment:
// <config-root>/<name>.cfg.
func EnvFilePath(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+EnvFileExt), nil
}

// LoadEnvFile reads a per-environment record. A missing file yields the
// zero record and no error.
func LoadEnvFile(path string) (EnvSettings, error) {
	var settings EnvSettings
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return settings, nil
}

// LoadEnvFileMap reads a per-environment record as a raw key/value map for
// cascade merging. A missing file yields an empty map.
func LoadEnvFileMap(path string) (map[string]any, error) {
	values := map[string]any{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return values, nil
}

// SaveEnvFile writes the record for the named environment in one whole-file
// rewrite, creating the configuration root if needed.
func SaveEnvFile(name string, settings EnvSettings) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	path := filepath.Join(dir, name+EnvFileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// RemoveEnvFile deletes the record for the named environment. A missing
// record is not an error.
func RemoveEnvFile(name string) error {
	path, err := EnvFilePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}
	return nil
}

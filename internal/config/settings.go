// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/viper"
)

const settingsFileName = "config.toml"

type (
	// Settings holds tool-level configuration read from
	// <config-root>/config.toml. All fields are optional.
	Settings struct {
		// Home overrides the environments home directory
		// (default: $WORKON_HOME, else ~/.virtualenvs).
		Home string `mapstructure:"home"`
		// UI holds output-related settings.
		UI UISettings `mapstructure:"ui"`
	}

	// UISettings controls CLI output behavior.
	UISettings struct {
		// Verbose enables verbose output by default.
		Verbose bool `mapstructure:"verbose"`
		// Interactive enables confirmation prompts by default.
		Interactive bool `mapstructure:"interactive"`
	}
)

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{}
}

// LoadSettings reads the tool settings file through viper. A missing file
// yields the defaults without error; a malformed file is an error.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	dir, err := Dir()
	if err != nil {
		return settings, err
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, settingsFileName))
	v.SetConfigType("toml")
	v.SetDefault("home", settings.Home)
	v.SetDefault("ui.verbose", settings.UI.Verbose)
	v.SetDefault("ui.interactive", settings.UI.Interactive)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := v.Unmarshal(&settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

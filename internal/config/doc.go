// SPDX-License-Identifier: MPL-2.0

// Package config persists vsh state: one TOML record per environment under
// the per-user configuration root, plus the tool-level settings file read
// through viper. Environment records are rewritten wholesale; concurrent
// writers against the same environment must be serialized by the caller.
package config

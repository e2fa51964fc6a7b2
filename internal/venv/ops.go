// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"fmt"
	"os"

	"vsh-cli/internal/config"
	"vsh-cli/pkg/fspath"
)

// CreateOptions configure environment creation.
type CreateOptions struct {
	// Env identifies the environment to create.
	Env EnvironmentDescriptor
	// Python is the interpreter token to resolve ("" for the default).
	Python string
	// Builder produces the environment tree.
	Builder EnvBuilder
	// StartingPath is recorded in the environment's config so later
	// entries start there ("" records the current directory).
	StartingPath string
}

// Create resolves the interpreter, builds the environment tree, and writes
// the per-environment config record. The record is written only after the
// build succeeds, so a failed creation never leaves a half-usable
// environment behind.
func Create(ctx context.Context, opts CreateOptions) (ResolvedInterpreter, error) {
	resolved, err := ResolveInterpreter(ctx, opts.Python)
	if err != nil {
		return ResolvedInterpreter{}, err
	}

	if err := opts.Builder.Create(ctx, opts.Env.Path, resolved.Path); err != nil {
		return ResolvedInterpreter{}, err
	}

	starting := opts.StartingPath
	if starting == "" {
		if cwd, err := os.Getwd(); err == nil {
			starting = cwd
		}
	}
	settings := config.EnvSettings{
		StartingPath: starting,
		VenvPath:     opts.Env.Path,
		Python:       opts.Python,
	}
	if err := config.SaveEnvFile(opts.Env.Name, settings); err != nil {
		return ResolvedInterpreter{}, fmt.Errorf("environment built but config not recorded: %w", err)
	}
	return resolved, nil
}

// Remove deletes an environment tree and its config record. In strict mode
// a missing or structurally invalid target is an error; otherwise removal
// degrades to a no-op.
func Remove(env EnvironmentDescriptor, strict bool) error {
	if strict {
		if !fspath.Exists(env.Path) {
			return &PathNotFoundError{Path: env.Path}
		}
		if result := Validate(env.Path); !result.Valid() {
			return &InvalidEnvironmentError{Path: env.Path, Rule: result.Rule}
		}
	}
	if fspath.Exists(env.Path) {
		if err := os.RemoveAll(env.Path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", env.Path, err)
		}
	}
	return config.RemoveEnvFile(env.Name)
}

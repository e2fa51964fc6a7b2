// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"vsh-cli/pkg/fspath"
)

// EnvBuilder describes how an environment tree is produced. The fields are
// fixed up front and threaded through the creation sequence; nothing is
// populated along the way.
type EnvBuilder struct {
	// SystemSitePackages gives the environment access to system packages.
	SystemSitePackages bool
	// Overwrite clears an existing tree before creating.
	Overwrite bool
	// Symlinks links the interpreter instead of copying it. Unavailable on
	// Windows; callers should clear it there.
	Symlinks bool
	// Upgrade relinks the environment's interpreter in place without
	// disturbing installed packages.
	Upgrade bool
	// WithPip bootstraps pip into the environment.
	WithPip bool
	// Prompt overrides the prompt recorded in the activation scripts.
	Prompt string
}

// Create produces the environment tree at dir by delegating to the resolved
// interpreter's venv module. The resulting tree satisfies the structural
// validation rules. On failure nothing is marked usable: callers must not
// write the environment's config record until Create returns nil.
func (b EnvBuilder) Create(ctx context.Context, dir, executable string) error {
	if dir == "" {
		return &InvalidPathError{Path: dir}
	}
	if !fspath.IsFile(executable) {
		return &InterpreterNotFoundError{Name: executable}
	}

	args := []string{"-m", "venv"}
	if b.Overwrite {
		args = append(args, "--clear")
	}
	if b.Upgrade {
		args = append(args, "--upgrade")
	}
	if b.Symlinks {
		args = append(args, "--symlinks")
	} else {
		args = append(args, "--copies")
	}
	if b.SystemSitePackages {
		args = append(args, "--system-site-packages")
	}
	if !b.WithPip {
		args = append(args, "--without-pip")
	}
	if b.Prompt != "" {
		args = append(args, "--prompt", b.Prompt)
	}
	args = append(args, dir)

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			return fmt.Errorf("failed to build environment at %s: %w: %s", dir, err, detail)
		}
		return fmt.Errorf("failed to build environment at %s: %w", dir, err)
	}
	return nil
}

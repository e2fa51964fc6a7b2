// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"vsh-cli/pkg/platform"

	"mvdan.cc/sh/v3/syntax"
)

// EnterOptions configure entering an environment.
type EnterOptions struct {
	// Env identifies the environment to enter.
	Env EnvironmentDescriptor
	// Command is the command to run inside the environment. Empty means an
	// interactive shell.
	Command []string
	// WorkDirOverride is the explicit startup directory.
	WorkDirOverride string
	// Stdin, Stdout, Stderr are the child's standard streams. Nil values
	// default to the process's own streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Enter spawns a configured shell or command inside the environment and
// blocks until it exits, returning the child's exit code. The environment's
// interpreter version, the cascade-loaded settings, and the activation
// variables are all re-resolved from scratch on every call.
func Enter(ctx context.Context, opts EnterOptions) (int, error) {
	cascade := Cascade{EnvName: opts.Env.Name, EnvPath: opts.Env.Path, StartupDir: opts.WorkDirOverride}
	settings, err := cascade.MergedSettings(ctx)
	if err != nil {
		return 1, err
	}

	activation := BuildActivationEnv(ActivationOptions{
		Env:                opts.Env,
		InterpreterVersion: queryVersion(ctx, opts.Env.Interpreter()),
		WorkDirOverride:    opts.WorkDirOverride,
		StartingPath:       settings.StartingPath,
	})

	script := composeScript(cascade.RCFiles(ctx), opts.Command, activation.Shell)

	cmd := spawnCommand(ctx, activation.Shell, script)
	cmd.Env = environSlice(activation.Vars)
	cmd.Dir = activation.WorkDir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = opts.Stdin, opts.Stdout, opts.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("failed to enter environment %s: %w", opts.Env.Name, err)
	}
	return 0, nil
}

// Interpreter returns the environment's own interpreter executable.
func (d EnvironmentDescriptor) Interpreter() string {
	name := "python"
	if platform.IsWindows() {
		name = "python.exe"
	}
	return filepath.Join(d.BinDir(), name)
}

// composeScript concatenates the discovered shell-init files ("source"
// instructions, shell-quoted) with the user's command. An empty command
// falls back to the interactive shell itself.
func composeScript(rcFiles, command []string, shell string) string {
	var parts []string
	for _, rc := range rcFiles {
		parts = append(parts, "source "+quoteForShell(rc))
	}

	userCmd := strings.Join(command, " ")
	if userCmd == "" {
		userCmd = shell
	}
	if userCmd != "" {
		parts = append(parts, userCmd)
	}
	return strings.Join(parts, "; ")
}

// quoteForShell quotes a path for safe interpolation into a shell command
// line.
func quoteForShell(path string) string {
	quoted, err := syntax.Quote(path, syntax.LangBash)
	if err != nil {
		return path
	}
	return quoted
}

// spawnCommand wraps the composed script for the shell family: bash and zsh
// run it through an interactive shell, Windows uses cmd.exe, and anything
// else goes through /bin/sh.
func spawnCommand(ctx context.Context, shell, script string) *exec.Cmd {
	if shell == "" {
		if script == "" {
			return exec.CommandContext(ctx, "cmd")
		}
		return exec.CommandContext(ctx, "cmd", "/K", script)
	}
	switch FamilyOf(shell) {
	case ShellFamilyBourne, ShellFamilyZsh:
		if filepath.Base(shell) == "sh" {
			return exec.CommandContext(ctx, shell, "-c", script)
		}
		return exec.CommandContext(ctx, shell, "-i", "-c", script)
	default:
		return exec.CommandContext(ctx, "/bin/sh", "-c", script)
	}
}

// environSlice flattens an activation mapping back into "KEY=VALUE" form,
// sorted for deterministic child environments.
func environSlice(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	environ := make([]string, 0, len(keys))
	for _, k := range keys {
		environ = append(environ, k+"="+vars[k])
	}
	return environ
}

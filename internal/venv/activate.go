// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vsh-cli/internal/config"
	"vsh-cli/pkg/fspath"
	"vsh-cli/pkg/platform"
)

// ShellFamily classifies the interactive shell for prompt injection. The
// dispatch is closed: unrecognized shells get an explicit no-op arm rather
// than a guessed prompt variable.
type ShellFamily int

// Recognized shell families.
const (
	ShellFamilyUnknown ShellFamily = iota
	ShellFamilyBourne              // bash, sh: prompt lives in PS1
	ShellFamilyZsh                 // zsh: prompt lives in PROMPT
	ShellFamilyCmd                 // Windows cmd.exe: prompt lives in PROMPT
)

type (
	// ActivationOptions are the inputs to BuildActivationEnv.
	ActivationOptions struct {
		// Env identifies the environment being entered.
		Env EnvironmentDescriptor
		// InterpreterVersion is the resolved interpreter version, composed
		// into the prompt.
		InterpreterVersion string
		// WorkDirOverride is the explicit startup directory, taking
		// precedence over the cascade-loaded starting path.
		WorkDirOverride string
		// StartingPath is the cascade-loaded starting path.
		StartingPath string
		// Environ is the base process environment as "KEY=VALUE" strings.
		// When nil, os.Environ() is used. Never mutated.
		Environ []string
	}

	// Activation is the process environment prepared for entering an
	// environment. It exists only for the lifetime of the spawned child.
	Activation struct {
		// Vars is the full variable mapping handed to the child process.
		Vars map[string]string
		// Shell is the interactive shell to launch ("" on Windows, where
		// cmd.exe is used instead).
		Shell string
		// WorkDir is the child's working directory ("" leaves the caller's
		// directory in effect).
		WorkDir string
	}
)

// DetectShell returns the interactive shell to launch: $SHELL (defaulting
// to /bin/sh) on POSIX platforms, "" on Windows.
func DetectShell() string {
	if platform.IsWindows() {
		return ""
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// FamilyOf classifies a shell path by its base name.
func FamilyOf(shell string) ShellFamily {
	switch filepath.Base(shell) {
	case "bash", "sh":
		return ShellFamilyBourne
	case "zsh":
		return ShellFamilyZsh
	case "cmd", "cmd.exe":
		return ShellFamilyCmd
	default:
		return ShellFamilyUnknown
	}
}

// BuildActivationEnv composes the process environment used to enter an
// environment. It is a pure function of its options plus the supplied base
// environ: the input is copied, never mutated, and repeated calls with the
// same inputs yield independent mappings.
func BuildActivationEnv(opts ActivationOptions) Activation {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	vars := make(map[string]string, len(environ)+3)
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	// Identity markers.
	vars[strings.ToUpper(config.AppName)] = opts.Env.Name
	vars["VIRTUAL_ENV"] = opts.Env.Path

	// The environment's binaries directory becomes the first PATH entry.
	sep := platform.PathListSeparator()
	vars["PATH"] = opts.Env.BinDir() + sep + vars["PATH"]

	shell := DetectShell()
	// Only a non-empty value disables the prompt; a variable set to ""
	// counts as unset.
	if vars["VIRTUAL_ENV_DISABLE_PROMPT"] == "" {
		injectPrompt(vars, shell, opts.Env.Name, opts.InterpreterVersion)
	}

	return Activation{
		Vars:    vars,
		Shell:   shell,
		WorkDir: resolveWorkDir(opts),
	}
}

// injectPrompt layers the environment tag onto the shell-appropriate prompt
// variable. Existing prompt content is kept, never discarded.
func injectPrompt(vars map[string]string, shell, name, version string) {
	tag := promptTag(name, version)

	if platform.IsWindows() {
		vars["PROMPT"] = tag + " " + vars["PROMPT"]
		return
	}

	switch FamilyOf(shell) {
	case ShellFamilyBourne:
		ps1 := vars["PS1"]
		if ps1 == "" {
			ps1 = `\w\$`
		}
		vars["PS1"] = tag + " " + ps1
	case ShellFamilyZsh:
		vars["PROMPT"] = strings.TrimSpace(tag + " " + vars["PROMPT"])
	case ShellFamilyCmd:
		vars["PROMPT"] = tag + " " + vars["PROMPT"]
	case ShellFamilyUnknown:
		// Unrecognized shells keep their prompt untouched. Known
		// limitation: fish and csh users get no environment tag.
	}
}

// promptTag composes the environment name and interpreter version into the
// prompt marker.
func promptTag(name, version string) string {
	if version == "" {
		return fmt.Sprintf("(%s)", name)
	}
	return fmt.Sprintf("(%s py%s)", name, version)
}

// resolveWorkDir picks the child's working directory: explicit override,
// else the cascade-loaded starting path, else the caller's current
// directory. A candidate only wins if it still exists as a directory.
func resolveWorkDir(opts ActivationOptions) string {
	candidates := []string{opts.WorkDirOverride, opts.StartingPath}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, cwd)
	}
	for _, dir := range candidates {
		if dir != "" && fspath.IsDir(dir) {
			return dir
		}
	}
	return ""
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"vsh-cli/internal/config"
	"vsh-cli/internal/issue"
	"vsh-cli/internal/venv"
	"vsh-cli/pkg/platform"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// runRoot dispatches the selected operation. vsh has no subcommands: the
// flags pick between list, remove, create, and enter, and the default flow
// is create-on-first-use followed by entering the environment.
func runRoot(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	if flagList {
		return runList(cmd)
	}

	name := ""
	var command []string
	if len(args) > 0 {
		name = args[0]
		command = args[1:]
	}

	env, err := venv.ResolveDescriptor(name, flagPath, environmentsHome())
	if err != nil {
		return issue.NewContext().
			WithOperation("resolve environment").
			WithSuggestion("Give an environment name, e.g. 'vsh demo', or an explicit --path").
			Wrap(err).
			BuildError()
	}
	logger.Debug("resolved environment", "name", env.Name, "path", env.Path)

	if flagRemove {
		return runRemove(cmd, logger, env)
	}

	exists := venv.Validate(env.Path).Valid()
	if !exists || flagOverwrite || flagUpgrade {
		if err := runCreate(cmd, logger, env, exists); err != nil {
			return err
		}
	}
	if flagCreateOnly || flagDryRun {
		return nil
	}

	return runEnter(cmd, logger, env, command)
}

// runList prints the environments found under the environments home, one
// per line. Structurally invalid directories are not environments and are
// not listed.
func runList(cmd *cobra.Command) error {
	home := environmentsHome()
	found, err := venv.FindEnvironments(home)
	if err != nil {
		return issue.NewContext().
			WithOperation("list environments").
			WithResource(home).
			Wrap(err).
			BuildError()
	}
	for _, env := range found {
		line := PathStyle.Render(env.Name)
		if flagVerbose > 0 {
			line += "  " + VerboseStyle.Render(env.Path)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

// runCreate builds the environment tree and records its config. The exists
// flag distinguishes first-time creation from an explicit rebuild.
func runCreate(cmd *cobra.Command, logger *log.Logger, env venv.EnvironmentDescriptor, exists bool) error {
	if exists && !flagOverwrite && !flagUpgrade {
		return nil
	}

	verb := "create"
	if exists {
		verb = "recreate"
	}
	if flagDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), VerboseStyle.Render(
			fmt.Sprintf("dry run: would %s environment %s at %s", verb, env.Name, env.Path)))
		return nil
	}

	if flagInteractive && !flagForce {
		ok, err := confirm(fmt.Sprintf("%s environment %q at %s?", verb, env.Name, env.Path))
		if err != nil {
			return err
		}
		if !ok {
			return silentExit(cmd, 1)
		}
	}

	builder := venv.EnvBuilder{
		SystemSitePackages: flagSystemSite,
		Overwrite:          flagOverwrite,
		Symlinks:           !flagCopy && !platform.IsWindows(),
		Upgrade:            flagUpgrade,
		WithPip:            !flagNoPip,
		Prompt:             flagPrompt,
	}
	resolved, err := venv.Create(cmd.Context(), venv.CreateOptions{
		Env:          env,
		Python:       flagPython,
		Builder:      builder,
		StartingPath: flagWorking,
	})
	if err != nil {
		return createError(env, err)
	}

	logger.Debug("environment created", "name", env.Name, "interpreter", resolved.Path, "version", resolved.Version)
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("created ")+PathStyle.Render(env.Name)+
		VerboseStyle.Render(fmt.Sprintf(" (python %s)", resolved.Version)))
	return nil
}

// createError attaches fix-it hints to the common creation failures.
func createError(env venv.EnvironmentDescriptor, err error) error {
	c := issue.NewContext().
		WithOperation("create environment").
		WithResource(env.Path).
		Wrap(err)
	if errors.Is(err, venv.ErrInterpreterNotFound) {
		c.WithSuggestion("Pick an installed interpreter with -p, e.g. 'vsh -p 3.12 " + env.Name + "'").
			WithSuggestion("Or pass the interpreter's path: 'vsh -p /usr/bin/python3 " + env.Name + "'")
	}
	return c.BuildError()
}

// runRemove deletes the environment tree and its config record. Without
// --force the target must exist and validate, and interactive mode asks
// first.
func runRemove(cmd *cobra.Command, logger *log.Logger, env venv.EnvironmentDescriptor) error {
	if flagDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), VerboseStyle.Render(
			fmt.Sprintf("dry run: would remove environment %s at %s", env.Name, env.Path)))
		return nil
	}

	if flagInteractive && !flagForce {
		ok, err := confirm(fmt.Sprintf("remove environment %q at %s?", env.Name, env.Path))
		if err != nil {
			return err
		}
		if !ok {
			return silentExit(cmd, 1)
		}
	}

	if err := venv.Remove(env, !flagForce); err != nil {
		c := issue.NewContext().
			WithOperation("remove environment").
			WithResource(env.Path).
			Wrap(err)
		switch {
		case errors.Is(err, venv.ErrPathNotFound):
			c.WithSuggestion("Nothing to remove; use --ls to see existing environments")
		case errors.Is(err, venv.ErrInvalidEnvironment):
			c.WithSuggestion("The directory does not look like an environment; pass --force to remove it anyway")
		}
		return c.BuildError()
	}

	logger.Debug("environment removed", "name", env.Name, "path", env.Path)
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("removed ")+PathStyle.Render(env.Name))
	return nil
}

// runEnter drops into the environment and propagates the child's exit code.
// Ephemeral environments are torn down after the session, best effort.
func runEnter(cmd *cobra.Command, logger *log.Logger, env venv.EnvironmentDescriptor, command []string) error {
	logger.Debug("entering environment", "name", env.Name, "command", command)

	// An explicit -w becomes the environment's recorded starting path so
	// later sessions start there too.
	if flagWorking != "" {
		if err := recordStartingPath(env, flagWorking); err != nil {
			fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+
				fmt.Sprintf("failed to record starting path for %s: %v", env.Name, err))
		}
	}

	code, err := venv.Enter(cmd.Context(), venv.EnterOptions{
		Env:             env,
		Command:         command,
		WorkDirOverride: flagWorking,
	})
	if err != nil {
		return issue.NewContext().
			WithOperation("enter environment").
			WithResource(env.Path).
			Wrap(err).
			BuildError()
	}

	if flagEphemeral {
		if rmErr := venv.Remove(env, false); rmErr != nil {
			fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+
				fmt.Sprintf("failed to remove ephemeral environment %s: %v", env.Name, rmErr))
		} else {
			logger.Debug("ephemeral environment removed", "name", env.Name)
		}
	}

	if code != 0 {
		return silentExit(cmd, code)
	}
	return nil
}

// recordStartingPath rewrites the environment's config record with a new
// starting path, keeping the other keys.
func recordStartingPath(env venv.EnvironmentDescriptor, dir string) error {
	path, err := config.EnvFilePath(env.Name)
	if err != nil {
		return err
	}
	record, err := config.LoadEnvFile(path)
	if err != nil {
		return err
	}
	if record.StartingPath == dir {
		return nil
	}
	record.StartingPath = dir
	if record.VenvPath == "" {
		record.VenvPath = env.Path
	}
	return config.SaveEnvFile(env.Name, record)
}

// environmentsHome returns the directory that bare environment names resolve
// under. The settings file may pin it; otherwise the conventional location
// applies.
func environmentsHome() string {
	if settings.Home != "" {
		return settings.Home
	}
	return venv.EnvironmentsHome()
}

// silentExit converts an exit code into an ExitError without cobra printing
// an error message or usage text. The child already said what it had to say.
func silentExit(cmd *cobra.Command, code int) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: code}
}

// newLogger builds the CLI logger. Verbosity is driven by -v; the default
// level keeps normal runs quiet.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "vsh",
	})
	switch {
	case flagVerbose >= 2:
		logger.SetLevel(log.DebugLevel)
	case flagVerbose == 1:
		logger.SetLevel(log.InfoLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

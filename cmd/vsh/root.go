// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the vsh CLI command.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"vsh-cli/internal/config"
	"vsh-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Flags. vsh is a single-command CLI: the flags select the operation
	// (list, remove, create, enter) rather than subcommands, matching the
	// workflow of activating an environment by name.
	flagCopy        bool
	flagCreateOnly  bool
	flagDryRun      bool
	flagEphemeral   bool
	flagForce       bool
	flagInteractive bool
	flagList        bool
	flagNoPip       bool
	flagOverwrite   bool
	flagPath        string
	flagPrompt      string
	flagPython      string
	flagRemove      bool
	flagSystemSite  bool
	flagUpgrade     bool
	flagVerbose     int
	flagWorking     string

	// settings are the tool-level settings loaded before the root command
	// runs. Defaults apply when the settings file is absent.
	settings = config.DefaultSettings()

	// rootCmd is the whole CLI: vsh [flags] [NAME] [COMMAND...]
	rootCmd = &cobra.Command{
		Use:   "vsh [flags] [name] [command...]",
		Short: "Create, enter, and manage isolated interpreter environments",
		Long: TitleStyle.Render("vsh") + SubtitleStyle.Render(" - isolated interpreter environments, one command") + `

vsh resolves an environment by name (under the environments home) or by
an explicit --path, creates it on first use, and drops you into a shell
with the environment activated. Pass a command after the name to run it
inside the environment instead of an interactive shell.

` + SubtitleStyle.Render("Examples:") + `
  vsh demo                  Enter the 'demo' environment (create on first use)
  vsh demo pytest -x        Run pytest inside 'demo'
  vsh -p 3.12 demo          Create 'demo' with a Python 3.12 interpreter
  vsh -e scratch            Ephemeral environment, removed on exit
  vsh -r demo               Remove 'demo' and its config record
  vsh --ls                  List environments under the environments home`,
		Args: cobra.ArbitraryArgs,
		RunE: runRoot,
	}
)

func init() {
	cobra.OnInitialize(initRootSettings)
	registerFlags(rootCmd.Flags())
}

// registerFlags wires the operation-selecting flags onto the root command.
func registerFlags(flags *pflag.FlagSet) {
	// Everything after the environment name belongs to the command that
	// runs inside it, including its flags.
	flags.SetInterspersed(false)

	flags.BoolVarP(&flagCopy, "copy", "c", false, "copy the interpreter into the environment instead of symlinking")
	flags.BoolVarP(&flagCreateOnly, "create-only", "C", false, "create the environment without entering it")
	flags.BoolVarP(&flagDryRun, "dry-run", "d", false, "show what would happen without doing it")
	flags.BoolVarP(&flagEphemeral, "ephemeral", "e", false, "remove the environment after the session ends")
	flags.BoolVarP(&flagForce, "force", "f", false, "skip confirmation prompts")
	flags.BoolVarP(&flagInteractive, "interactive", "i", false, "confirm before creating or removing environments")
	flags.BoolVarP(&flagList, "ls", "l", false, "list environments under the environments home")
	flags.BoolVar(&flagNoPip, "no-pip", false, "create the environment without pip")
	flags.BoolVarP(&flagOverwrite, "overwrite", "o", false, "recreate the environment even if it already exists")
	flags.StringVar(&flagPath, "path", "", "environment directory (overrides the name-based location)")
	flags.StringVar(&flagPrompt, "prompt", "", "prompt tag recorded in the environment's activation scripts")
	flags.StringVarP(&flagPython, "python", "p", "", "interpreter token, e.g. 3.12, p37, pypy3, or a path")
	flags.BoolVarP(&flagRemove, "remove", "r", false, "remove the environment and its config record")
	flags.BoolVar(&flagSystemSite, "system-site-packages", false, "give the environment access to system packages")
	flags.BoolVarP(&flagUpgrade, "upgrade", "u", false, "upgrade the environment's interpreter in place")
	flags.CountVarP(&flagVerbose, "verbose", "v", "increase output verbosity (repeatable)")
	flags.StringVarP(&flagWorking, "working", "w", "", "working directory for the session")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootSettings loads the tool settings file and folds it into the flag
// defaults. Flags given on the command line always win.
func initRootSettings() {
	loaded, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flagVerbose > 0))
		return
	}
	settings = loaded

	if settings.UI.Verbose && flagVerbose == 0 {
		flagVerbose = 1
	}
	if settings.UI.Interactive && !flagInteractive {
		flagInteractive = true
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// render their suggestion block; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

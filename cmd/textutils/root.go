// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the textutils command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/invowk/textutils/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	styles := newStyles(app.stdout, config.ColorAuto)

	rootCmd := &cobra.Command{
		Use:   "textutils",
		Short: "Classic text utilities and a shell that runs them in-process",
		Long: styles.Title.Render("textutils") + styles.Subtitle.Render(" - classic text utilities") + `

textutils bundles cat, head, tail, wc, uniq, cut, comm, grep, find, ls,
fortune and cal behind a single binary. Each utility is a subcommand that
parses its own flags, and 'textutils sh' runs POSIX shell scripts with the
utilities dispatched in-process.

` + styles.Subtitle.Render("Examples:") + `
  textutils tail -n +3 notes.txt    Print from the third line on
  textutils -v grep -i todo *.go    Search with debug logging
  textutils sh -c 'cat a | wc -l'   Run a pipeline
  textutils list                    Show utilities and their flags
  textutils config show             Show the effective configuration`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.prepare(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/textutils/config.cue)")

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetArgs(app.args)

	for _, name := range app.Registry.Names() {
		rootCmd.AddCommand(newUtilityCommand(app, name))
	}
	rootCmd.AddCommand(newShellCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// prepare parses root flags hidden from utilities, then loads configuration.
// A configuration error is reported as a warning and defaults are used.
func (a *App) prepare(cmd *cobra.Command) error {
	if parsesOwnArgs(cmd) {
		prefix := rootFlagPrefix(a.args, cmd.Name())
		if err := cmd.Root().PersistentFlags().Parse(prefix); err != nil {
			return &ExitError{Code: usageExitCode, Err: err}
		}
	}

	if err := a.loadConfig(cmd.Context()); err != nil {
		styles := newStyles(a.stderr, a.cfg.UI.Color)
		fmt.Fprintln(a.stderr, styles.Warning.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		if requiresConfig(cmd) {
			return &ExitError{Code: 1}
		}
	}

	a.logger.Debug("configuration loaded", "path", a.cfgPath, "color", a.cfg.UI.Color)
	return nil
}

// Execute runs the CLI and exits with the resulting status. It is called by
// main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

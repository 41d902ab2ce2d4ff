// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/textutils/internal/issue"
	"github.com/invowk/textutils/internal/shell"

	"github.com/spf13/cobra"
)

// scriptNotFoundExitCode matches POSIX sh for an unreadable script file.
const scriptNotFoundExitCode = 127

func newShellCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sh [-c SCRIPT | FILE] [ARGS...]",
		Short: "Run a POSIX shell script with the utilities built in",
		Long: `Run a POSIX shell script with mvdan/sh.

The script comes from -c, from FILE, or from standard input. Remaining
arguments become the positional parameters $1, $2, ... Bundled utilities
run in-process unless shell.enable_builtins is false; other commands are
looked up on PATH.`,
		DisableFlagParsing: true,
		Annotations:        map[string]string{annotationRawArgs: "sh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runShell(cmd, app.stripRootFlags("sh", args))
		},
	}
}

func (a *App) runShell(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return cmd.Help()
	}

	script, closeScript, err := a.scriptFromArgs(args)
	if err != nil {
		return err
	}
	defer closeScript()

	runner := shell.NewRunner(a.Registry, a.cfg.Shell.EnableBuiltins, a.logger)
	a.logger.Debug("running script", "name", script.Name, "builtins", a.cfg.Shell.EnableBuiltins)

	err = runner.Run(cmd.Context(), script)
	var status shell.ExitStatus
	if errors.As(err, &status) {
		return &ExitError{Code: int(status)}
	}
	return err
}

// scriptFromArgs selects the script source: -c SCRIPT, a FILE, or stdin.
func (a *App) scriptFromArgs(args []string) (shell.Script, func(), error) {
	script := shell.Script{
		Dir: a.dir,
		Env: a.shellEnviron(),
		IO: shell.IO{
			Stdin:  a.stdin,
			Stdout: a.stdout,
			Stderr: a.stderr,
		},
	}
	noop := func() {}

	switch {
	case len(args) == 0:
		script.Source = a.stdin
		script.Name = "stdin"
		// The parser consumes stdin before the script runs.
		script.IO.Stdin = strings.NewReader("")
		return script, noop, nil
	case args[0] == "-c":
		if len(args) < 2 {
			return script, noop, &ExitError{Code: usageExitCode, Err: errors.New("sh: -c: option requires an argument")}
		}
		script.Source = strings.NewReader(args[1])
		script.Name = "-c"
		script.Args = args[2:]
		return script, noop, nil
	}

	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		openErr := issue.NewErrorContext().
			WithOperation("open script").
			WithResource(args[0]).
			WithSuggestion("Check the script path, or pass the script text with 'textutils sh -c'").
			Wrap(err).
			BuildError()
		return script, noop, &ExitError{Code: scriptNotFoundExitCode, Err: openErr}
	}

	script.Source = f
	script.Name = args[0]
	script.Args = args[1:]
	return script, func() { closeQuietly(f) }, nil
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}

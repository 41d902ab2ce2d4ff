// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/invowk/textutils/internal/coreutils"

	"github.com/spf13/cobra"
)

const (
	// annotationRawArgs marks commands that parse their own arguments. Root
	// flags given before such a command reach it in args.
	annotationRawArgs = "textutils/raw-args"
	// annotationStrictConfig marks commands that fail when the configuration
	// cannot be loaded instead of falling back to defaults.
	annotationStrictConfig = "textutils/strict-config"
)

// newUtilityCommand wraps the registered utility name in a subcommand. The
// utility parses its own flags, including --help.
func newUtilityCommand(app *App, name string) *cobra.Command {
	short := ""
	if utility, ok := app.Registry.Lookup(name); ok {
		short = utility.Synopsis()
	}

	return &cobra.Command{
		Use:                name + " [FLAGS] [OPERANDS...]",
		Short:              short,
		DisableFlagParsing: true,
		Annotations:        map[string]string{annotationRawArgs: name},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runUtility(cmd, name, args)
		},
	}
}

// runUtility runs a utility with the CLI's streams.
func (a *App) runUtility(cmd *cobra.Command, name string, args []string) error {
	args = a.stripRootFlags(name, args)

	ctx := coreutils.WithHandlerContext(cmd.Context(), a.handlerContext())
	a.logger.Debug("running utility", "name", name, "args", args)

	err := a.Registry.Run(ctx, name, append([]string{name}, args...))
	if err == nil {
		return nil
	}

	code := failureExitCode
	if errors.Is(err, coreutils.ErrUsage) {
		code = usageExitCode
	}
	return &ExitError{Code: code, Err: err}
}

// stripRootFlags drops the root flags given before name from args.
func (a *App) stripRootFlags(name string, args []string) []string {
	prefix := rootFlagPrefix(a.args, name)
	if len(prefix) > len(args) {
		return args
	}
	return args[len(prefix):]
}

// rootFlagPrefix returns the leading tokens of raw that belong to the root
// command, i.e. everything before the first occurrence of name. The value of
// a separate "--config FILE" is skipped so that a file named like a utility
// is not mistaken for it.
func rootFlagPrefix(raw []string, name string) []string {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case name:
			return raw[:i]
		case "--config":
			i++
		case "--":
			return nil
		}
	}
	return nil
}

func parsesOwnArgs(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[annotationRawArgs]
	return ok
}

func requiresConfig(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[annotationStrictConfig]
	return ok
}

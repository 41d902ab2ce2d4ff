// SPDX-License-Identifier: MPL-2.0

package coreutils

import "context"

type (
	// Command defines the interface for a bundled utility.
	Command interface {
		// Name returns the command name (e.g., "tail", "grep").
		Name() string

		// Synopsis returns a one-line description for help and listings.
		Synopsis() string

		// Run executes the command with the given context and arguments.
		// The context carries the HandlerContext with stdin/stdout/stderr.
		// args[0] is the command name, args[1:] are the arguments.
		Run(ctx context.Context, args []string) error

		// SupportedFlags returns the flags this implementation accepts.
		SupportedFlags() []FlagInfo
	}

	// FlagInfo describes a flag accepted by a command.
	FlagInfo struct {
		// Name is the long flag name without dashes (e.g., "lines").
		Name string
		// ShortName is the single-character alias, empty if none.
		ShortName string
		// Description explains what the flag does.
		Description string
		// TakesValue indicates if the flag requires a value (e.g., -n 10).
		TakesValue bool
	}

	// baseCommand carries the static parts shared by every utility.
	baseCommand struct {
		name     string
		synopsis string
		// usage is the operand summary printed after the name by --help.
		usage string
		flags []FlagInfo
	}
)

// Name returns the command name.
func (b *baseCommand) Name() string {
	return b.name
}

// Synopsis returns the one-line description.
func (b *baseCommand) Synopsis() string {
	return b.synopsis
}

// SupportedFlags returns the flags supported by this command.
func (b *baseCommand) SupportedFlags() []FlagInfo {
	return b.flags
}

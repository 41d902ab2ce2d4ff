// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// newFlagSet returns a GNU-style flag set that reports errors instead of
// printing them.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// parseFlags parses args[1:] into fs. When --help is requested the usage is
// written to stdout and helped is true; callers return nil in that case.
func (b *baseCommand) parseFlags(hc *HandlerContext, fs *pflag.FlagSet, args []string) (helped bool, err error) {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			b.printUsage(hc.Stdout, fs)
			return true, nil
		}
		return false, usageError("%s", err.Error())
	}
	return false, nil
}

// printUsage writes the synopsis, the operand summary and the flag table.
func (b *baseCommand) printUsage(out io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(out, "%s - %s\n\nUsage: %s %s\n", b.name, b.synopsis, b.name, b.usage)
	if usages := fs.FlagUsages(); usages != "" {
		fmt.Fprintf(out, "\nFlags:\n%s", usages)
	}
}

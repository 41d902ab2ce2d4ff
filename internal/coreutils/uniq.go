// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type (
	// uniqCommand implements the uniq utility.
	uniqCommand struct {
		baseCommand
	}

	uniqOptions struct {
		count      bool
		repeated   bool
		unique     bool
		ignoreCase bool
	}
)

func init() {
	RegisterDefault(newUniqCommand())
}

// newUniqCommand creates a new uniq command.
func newUniqCommand() *uniqCommand {
	return &uniqCommand{
		baseCommand: baseCommand{
			name:     "uniq",
			synopsis: "Report or omit repeated lines",
			usage:    "[-c] [-d | -u] [-i] [IN_FILE [OUT_FILE]]",
			flags: []FlagInfo{
				{Name: "count", ShortName: "c", Description: "prefix lines by the number of occurrences"},
				{Name: "repeated", ShortName: "d", Description: "only print duplicate lines"},
				{Name: "unique", ShortName: "u", Description: "only print unique lines"},
				{Name: "ignore-case", ShortName: "i", Description: "ignore case when comparing"},
			},
		},
	}
}

// Run executes the uniq command.
func (c *uniqCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	var opts uniqOptions
	fs.BoolVarP(&opts.count, "count", "c", false, "prefix lines by the number of occurrences")
	fs.BoolVarP(&opts.repeated, "repeated", "d", false, "only print duplicate lines")
	fs.BoolVarP(&opts.unique, "unique", "u", false, "only print unique lines")
	fs.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "ignore case when comparing")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	operands := fs.Args()
	if len(operands) > 2 {
		return wrapError(c.name, usageError("extra operand %q", operands[2]))
	}

	inName := stdinOperand
	if len(operands) > 0 {
		inName = operands[0]
	}
	in, err := hc.open(inName)
	if err != nil {
		return wrapError(c.name, err)
	}
	defer in.Close()

	out := hc.Stdout
	if len(operands) == 2 {
		f, err := os.Create(hc.resolve(operands[1]))
		if err != nil {
			return wrapError(c.name, &OpenError{Path: operands[1], Err: err})
		}
		out = f
		err = uniqLines(out, in, opts)
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s: %w", operands[1], closeErr)
		}
		return wrapError(c.name, err)
	}

	return wrapError(c.name, uniqLines(out, in, opts))
}

// uniqLines collapses adjacent equal lines. Lines compare equal regardless
// of a missing final newline; the first line of each group is written
// verbatim.
func uniqLines(out io.Writer, in io.Reader, opts uniqOptions) error {
	br := bufio.NewReader(in)

	var first, key string
	count := 0

	flush := func() {
		if count == 0 {
			return
		}
		if (opts.repeated && count < 2) || (opts.unique && count > 1) {
			return
		}
		if opts.count {
			fmt.Fprintf(out, "%4d %s", count, first)
		} else {
			io.WriteString(out, first)
		}
	}

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			k := strings.TrimRight(line, "\r\n")
			if opts.ignoreCase {
				k = strings.ToLower(k)
			}
			if count > 0 && k == key {
				count++
			} else {
				flush()
				first, key, count = line, k, 1
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}

	flush()
	return nil
}

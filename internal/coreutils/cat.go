// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type (
	// catCommand implements the cat utility.
	catCommand struct {
		baseCommand
	}

	// numberMode selects which lines cat numbers.
	numberMode int
)

const (
	numberNone numberMode = iota
	numberAll
	numberNonBlank
)

func init() {
	RegisterDefault(newCatCommand())
}

// newCatCommand creates a new cat command.
func newCatCommand() *catCommand {
	return &catCommand{
		baseCommand: baseCommand{
			name:     "cat",
			synopsis: "Concatenate files to standard output",
			usage:    "[-n | -b] [FILE...]",
			flags: []FlagInfo{
				{Name: "number", ShortName: "n", Description: "number all output lines"},
				{Name: "number-nonblank", ShortName: "b", Description: "number non-blank output lines"},
			},
		},
	}
}

// Run executes the cat command.
func (c *catCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	number := fs.BoolP("number", "n", false, "number all output lines")
	nonBlank := fs.BoolP("number-nonblank", "b", false, "number non-blank output lines")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}
	if *number && *nonBlank {
		return wrapError(c.name, usageError("--number and --number-nonblank cannot be used together"))
	}

	mode := numberNone
	switch {
	case *number:
		mode = numberAll
	case *nonBlank:
		mode = numberNonBlank
	}

	return wrapError(c.name, ProcessOperands(hc, operandsOrStdin(fs.Args()), func(r io.Reader, name string) error {
		if err := catReader(hc.Stdout, r, mode); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}))
}

// catReader copies r to out, numbering lines as requested. Line numbers
// start at 1 for every input.
func catReader(out io.Writer, r io.Reader, mode numberMode) error {
	if mode == numberNone {
		_, err := io.Copy(out, r)
		return err
	}

	br := bufio.NewReader(r)
	num := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			blank := strings.TrimRight(line, "\r\n") == ""
			if mode == numberAll || !blank {
				num++
				fmt.Fprintf(out, "%6d\t%s", num, line)
			} else {
				io.WriteString(out, line)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// headCommand implements the head utility.
type headCommand struct {
	baseCommand
}

func init() {
	RegisterDefault(newHeadCommand())
}

// newHeadCommand creates a new head command.
func newHeadCommand() *headCommand {
	return &headCommand{
		baseCommand: baseCommand{
			name:     "head",
			synopsis: "Output the first part of files",
			usage:    "[-n N | -c N] [FILE...]",
			flags: []FlagInfo{
				{Name: "lines", ShortName: "n", Description: "number of lines to output", TakesValue: true},
				{Name: "bytes", ShortName: "c", Description: "number of bytes to output", TakesValue: true},
			},
		},
	}
}

// Run executes the head command.
func (c *headCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	linesStr := fs.StringP("lines", "n", "10", "number of lines")
	bytesStr := fs.StringP("bytes", "c", "", "number of bytes")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}
	if fs.Changed("lines") && fs.Changed("bytes") {
		return wrapError(c.name, usageError("--lines and --bytes cannot be used together"))
	}

	lines, err := parsePositive("line", *linesStr)
	if err != nil {
		return wrapError(c.name, err)
	}
	var byteCount int64
	if fs.Changed("bytes") {
		if byteCount, err = parsePositive("byte", *bytesStr); err != nil {
			return wrapError(c.name, err)
		}
	}

	files := operandsOrStdin(fs.Args())
	headers := newHeaderWriter(hc.Stdout, len(files) > 1)

	return wrapError(c.name, ProcessOperands(hc, files, func(r io.Reader, name string) error {
		headers.write(name)

		var err error
		if byteCount > 0 {
			_, err = io.CopyN(hc.Stdout, r, byteCount)
			if errors.Is(err, io.EOF) {
				err = nil
			}
		} else {
			err = headLines(hc.Stdout, r, lines)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}))
}

// parsePositive parses a count that must be greater than zero.
func parsePositive(unit, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, &CountError{Unit: unit, Value: value}
	}
	return n, nil
}

// headLines copies the first n lines of r, line terminators included.
func headLines(out io.Writer, r io.Reader, n int64) error {
	br := bufio.NewReader(r)
	for n > 0 {
		line, err := br.ReadSlice('\n')
		if len(line) > 0 {
			if _, werr := out.Write(line); werr != nil {
				return werr
			}
		}
		switch {
		case err == nil:
			n--
		case errors.Is(err, bufio.ErrBufferFull):
			// Long line: keep copying until its terminator.
		case errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/textutils/internal/take"
)

type (
	// tailCommand implements the tail utility.
	tailCommand struct {
		baseCommand
	}

	// tailOptions holds the parsed take specs. bytes is nil in line mode.
	tailOptions struct {
		lines take.Spec
		bytes *take.Spec
		quiet bool
	}

	// seekableFile is an opened operand that supports Stat and Seek.
	seekableFile interface {
		take.File
		io.Closer
	}

	// spooledFile is a temporary copy of stdin removed on Close.
	spooledFile struct {
		*os.File
	}
)

func init() {
	RegisterDefault(newTailCommand())
}

// newTailCommand creates a new tail command.
func newTailCommand() *tailCommand {
	return &tailCommand{
		baseCommand: baseCommand{
			name:     "tail",
			synopsis: "Output the last part of files",
			usage:    "[-n SPEC | -c SPEC] [-q] FILE...",
			flags: []FlagInfo{
				{Name: "lines", ShortName: "n", Description: "number of lines: N or -N for the last N, +N to start at line N", TakesValue: true},
				{Name: "bytes", ShortName: "c", Description: "number of bytes: N or -N for the last N, +N to start at byte N", TakesValue: true},
				{Name: "quiet", ShortName: "q", Description: "never print headers giving file names"},
			},
		},
	}
}

// Run executes the tail command.
func (c *tailCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	linesStr := fs.StringP("lines", "n", "10", "number of lines")
	bytesStr := fs.StringP("bytes", "c", "", "number of bytes")
	quiet := fs.BoolP("quiet", "q", false, "suppress headers")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	if fs.Changed("lines") && fs.Changed("bytes") {
		return wrapError(c.name, usageError("--lines and --bytes cannot be used together"))
	}

	opts := tailOptions{quiet: *quiet}
	var err error
	if opts.lines, err = parseTakeSpec("line", *linesStr); err != nil {
		return wrapError(c.name, err)
	}
	if fs.Changed("bytes") {
		spec, err := parseTakeSpec("byte", *bytesStr)
		if err != nil {
			return wrapError(c.name, err)
		}
		opts.bytes = &spec
	}

	files := fs.Args()
	if len(files) == 0 {
		return wrapError(c.name, usageError("missing file operand"))
	}

	return wrapError(c.name, c.run(hc, opts, files))
}

// parseTakeSpec parses a take spec, reporting failures as CountError.
func parseTakeSpec(unit, value string) (take.Spec, error) {
	spec, err := take.Parse(value)
	if err != nil {
		var parseErr *take.ParseError
		if errors.As(err, &parseErr) {
			return take.Spec{}, &CountError{Unit: unit, Value: parseErr.Token}
		}
		return take.Spec{}, err
	}
	return spec, nil
}

// run processes every operand. An unopenable operand is reported and
// skipped; an I/O error in the middle of an operand aborts the run.
func (c *tailCommand) run(hc *HandlerContext, opts tailOptions, files []string) error {
	headers := newHeaderWriter(hc.Stdout, len(files) > 1 && !opts.quiet)

	for _, name := range files {
		err := c.tailFile(hc, opts, name, headers)
		if err == nil || reportOpenError(hc.Stderr, err) {
			continue
		}
		return err
	}
	return nil
}

// tailFile emits the selected part of one operand.
func (c *tailCommand) tailFile(hc *HandlerContext, opts tailOptions, name string, headers *headerWriter) (err error) {
	f, err := c.openSeekable(hc, name)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s: %w", name, closeErr)
		}
	}()

	lines, size, err := take.Totals(f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	headers.write(name)

	if opts.bytes != nil {
		off := take.Resolve(*opts.bytes, size)
		hc.logger().Debug("tail bytes", "file", name, "total", size, "spec", opts.bytes.String(), "start", off)
		err = take.EmitBytes(hc.Stdout, f, off)
	} else {
		off := take.Resolve(opts.lines, lines)
		hc.logger().Debug("tail lines", "file", name, "total", lines, "spec", opts.lines.String(), "start", off)
		err = take.EmitLines(hc.Stdout, f, off)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// openSeekable opens an operand for random access. Standard input is copied
// to a temporary file first.
func (c *tailCommand) openSeekable(hc *HandlerContext, name string) (seekableFile, error) {
	if name != stdinOperand {
		f, err := os.Open(hc.resolve(name))
		if err != nil {
			return nil, &OpenError{Path: name, Err: err}
		}
		return f, nil
	}

	tmp, err := os.CreateTemp("", "textutils-tail-*")
	if err != nil {
		return nil, fmt.Errorf("spooling stdin: %w", err)
	}
	spool := &spooledFile{File: tmp}

	if _, err := io.Copy(tmp, hc.Stdin); err != nil {
		_ = spool.Close() // Best-effort cleanup on error path
		return nil, fmt.Errorf("spooling stdin: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = spool.Close() // Best-effort cleanup on error path
		return nil, fmt.Errorf("spooling stdin: %w", err)
	}
	return spool, nil
}

// Close closes and removes the temporary file.
func (s *spooledFile) Close() error {
	closeErr := s.File.Close()
	if err := os.Remove(s.Name()); err != nil && closeErr == nil {
		return err
	}
	return closeErr
}

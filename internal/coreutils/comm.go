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
	// commCommand implements the comm utility.
	commCommand struct {
		baseCommand
	}

	commOptions struct {
		show        [3]bool
		insensitive bool
		delimiter   string
	}

	// lineSource yields lines without their terminators, one ahead.
	lineSource struct {
		r    *bufio.Reader
		line string
		ok   bool
		err  error
	}
)

func init() {
	RegisterDefault(newCommCommand())
}

// newCommCommand creates a new comm command.
func newCommCommand() *commCommand {
	return &commCommand{
		baseCommand: baseCommand{
			name:     "comm",
			synopsis: "Compare two sorted files line by line",
			usage:    "[-123i] [-d DELIM] FILE1 FILE2",
			flags: []FlagInfo{
				{Name: "suppress-1", ShortName: "1", Description: "suppress column 1 (lines unique to FILE1)"},
				{Name: "suppress-2", ShortName: "2", Description: "suppress column 2 (lines unique to FILE2)"},
				{Name: "suppress-3", ShortName: "3", Description: "suppress column 3 (lines that appear in both files)"},
				{Name: "insensitive", ShortName: "i", Description: "case-insensitive comparison of lines"},
				{Name: "output-delimiter", ShortName: "d", Description: "output delimiter (defaults to TAB)", TakesValue: true},
			},
		},
	}
}

// Run executes the comm command.
func (c *commCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	suppress1 := fs.BoolP("suppress-1", "1", false, "suppress column 1")
	suppress2 := fs.BoolP("suppress-2", "2", false, "suppress column 2")
	suppress3 := fs.BoolP("suppress-3", "3", false, "suppress column 3")
	insensitive := fs.BoolP("insensitive", "i", false, "case-insensitive comparison of lines")
	delim := fs.StringP("output-delimiter", "d", "\t", "output delimiter")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	operands := fs.Args()
	if len(operands) != 2 {
		return wrapError(c.name, usageError("expected FILE1 and FILE2, got %d operand(s)", len(operands)))
	}
	if operands[0] == stdinOperand && operands[1] == stdinOperand {
		return wrapError(c.name, usageError(`Both input files cannot be STDIN ("-")`))
	}

	opts := commOptions{
		show:        [3]bool{!*suppress1, !*suppress2, !*suppress3},
		insensitive: *insensitive,
		delimiter:   *delim,
	}

	in1, err := hc.open(operands[0])
	if err != nil {
		return wrapError(c.name, err)
	}
	defer in1.Close()
	in2, err := hc.open(operands[1])
	if err != nil {
		return wrapError(c.name, err)
	}
	defer in2.Close()

	return wrapError(c.name, commMerge(hc.Stdout, in1, in2, opts))
}

// commMerge walks both inputs like a sorted merge and writes each line in
// its column.
func commMerge(out io.Writer, r1, r2 io.Reader, opts commOptions) error {
	a := newLineSource(r1)
	b := newLineSource(r2)
	w := bufio.NewWriter(out)

	for a.ok || b.ok {
		var col int
		var text string

		switch {
		case !b.ok:
			col, text = 0, a.line
			a.next()
		case !a.ok:
			col, text = 1, b.line
			b.next()
		default:
			switch cmp := compareLines(a.line, b.line, opts.insensitive); {
			case cmp == 0:
				col, text = 2, a.line
				a.next()
				b.next()
			case cmp < 0:
				col, text = 0, a.line
				a.next()
			default:
				col, text = 1, b.line
				b.next()
			}
		}

		if !opts.show[col] {
			continue
		}
		w.WriteString(opts.indent(col))
		w.WriteString(text)
		w.WriteByte('\n')
	}

	if err := errors.Join(a.err, b.err); err != nil {
		return err
	}
	return w.Flush()
}

// indent returns one delimiter per visible column preceding col.
func (o commOptions) indent(col int) string {
	n := 0
	for i := range col {
		if o.show[i] {
			n++
		}
	}
	return strings.Repeat(o.delimiter, n)
}

func compareLines(a, b string, insensitive bool) int {
	if insensitive {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	return strings.Compare(a, b)
}

func newLineSource(r io.Reader) *lineSource {
	s := &lineSource{r: bufio.NewReader(r)}
	s.next()
	return s
}

// next advances to the following line. ok is false at end of input or after
// a read error.
func (s *lineSource) next() {
	line, err := s.r.ReadString('\n')
	if line == "" && err != nil {
		s.ok = false
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("reading input: %w", err)
		}
		return
	}
	s.line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	s.ok = true
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = fmt.Errorf("reading input: %w", err)
	}
}

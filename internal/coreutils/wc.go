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
	// wcCommand implements the wc utility.
	wcCommand struct {
		baseCommand
	}

	// wcCounts holds the counts for one input.
	wcCounts struct {
		lines int64
		words int64
		bytes int64
		chars int64
	}

	// wcColumns selects the printed counts.
	wcColumns struct {
		lines, words, bytes, chars bool
	}
)

func init() {
	RegisterDefault(newWcCommand())
}

// newWcCommand creates a new wc command.
func newWcCommand() *wcCommand {
	return &wcCommand{
		baseCommand: baseCommand{
			name:     "wc",
			synopsis: "Print line, word and byte counts",
			usage:    "[-l] [-w] [-c | -m] [FILE...]",
			flags: []FlagInfo{
				{Name: "lines", ShortName: "l", Description: "print line count"},
				{Name: "words", ShortName: "w", Description: "print word count"},
				{Name: "bytes", ShortName: "c", Description: "print byte count"},
				{Name: "chars", ShortName: "m", Description: "print character count"},
			},
		},
	}
}

// Run executes the wc command.
func (c *wcCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	var cols wcColumns
	fs.BoolVarP(&cols.lines, "lines", "l", false, "print line count")
	fs.BoolVarP(&cols.words, "words", "w", false, "print word count")
	fs.BoolVarP(&cols.bytes, "bytes", "c", false, "print byte count")
	fs.BoolVarP(&cols.chars, "chars", "m", false, "print character count")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}
	if cols.bytes && cols.chars {
		return wrapError(c.name, usageError("--bytes and --chars cannot be used together"))
	}

	// No selection means lines, words and bytes.
	if !cols.lines && !cols.words && !cols.bytes && !cols.chars {
		cols = wcColumns{lines: true, words: true, bytes: true}
	}

	files := operandsOrStdin(fs.Args())
	var total wcCounts

	err := ProcessOperands(hc, files, func(r io.Reader, name string) error {
		counts, err := countReader(r)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		total.add(counts)

		label := name
		if name == stdinOperand {
			label = ""
		}
		fmt.Fprint(hc.Stdout, cols.format(counts, label))
		return nil
	})
	if err != nil {
		return wrapError(c.name, err)
	}

	if len(files) > 1 {
		fmt.Fprint(hc.Stdout, cols.format(total, "total"))
	}
	return nil
}

// countReader streams r and counts lines, words, bytes and characters. An
// unterminated final line still counts as a line.
func countReader(r io.Reader) (wcCounts, error) {
	var counts wcCounts
	br := bufio.NewReader(r)
	inWord := false
	lineOpen := false

	for {
		ru, size, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return counts, err
		}

		counts.bytes += int64(size)
		counts.chars++
		lineOpen = ru != '\n'
		if ru == '\n' {
			counts.lines++
		}

		if isASCIISpace(ru) {
			inWord = false
		} else if !inWord {
			inWord = true
			counts.words++
		}
	}
	if lineOpen {
		counts.lines++
	}

	return counts, nil
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (w *wcCounts) add(o wcCounts) {
	w.lines += o.lines
	w.words += o.words
	w.bytes += o.bytes
	w.chars += o.chars
}

// format renders the selected counts, each right-aligned in 8 columns.
func (cols wcColumns) format(counts wcCounts, name string) string {
	var sb strings.Builder
	field := func(show bool, v int64) {
		if show {
			fmt.Fprintf(&sb, "%8d", v)
		}
	}
	field(cols.lines, counts.lines)
	field(cols.words, counts.words)
	field(cols.bytes, counts.bytes)
	field(cols.chars, counts.chars)

	if name != "" {
		sb.WriteString(" " + name)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type (
	// cutCommand implements the cut utility.
	cutCommand struct {
		baseCommand
	}

	// posRange is a zero-based, half-open selection.
	posRange struct {
		start int
		end   int
	}

	// extractMode selects what cut extracts from each line.
	extractMode int

	cutOptions struct {
		mode      extractMode
		positions []posRange
		delimiter byte
	}
)

const (
	extractBytes extractMode = iota
	extractChars
	extractFields
)

func init() {
	RegisterDefault(newCutCommand())
}

// newCutCommand creates a new cut command.
func newCutCommand() *cutCommand {
	return &cutCommand{
		baseCommand: baseCommand{
			name:     "cut",
			synopsis: "Remove sections from each line of files",
			usage:    "(-b LIST | -c LIST | -f LIST) [-d DELIM] [FILE...]",
			flags: []FlagInfo{
				{Name: "bytes", ShortName: "b", Description: "select only these bytes", TakesValue: true},
				{Name: "characters", ShortName: "c", Description: "select only these characters", TakesValue: true},
				{Name: "fields", ShortName: "f", Description: "select only these fields", TakesValue: true},
				{Name: "delimiter", ShortName: "d", Description: "use DELIM instead of TAB for field delimiter", TakesValue: true},
			},
		},
	}
}

// Run executes the cut command.
func (c *cutCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	bytesList := fs.StringP("bytes", "b", "", "select only these bytes")
	charsList := fs.StringP("characters", "c", "", "select only these characters")
	fieldsList := fs.StringP("fields", "f", "", "select only these fields")
	delim := fs.StringP("delimiter", "d", "\t", "field delimiter")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	opts, err := c.options(fs.Changed, *bytesList, *charsList, *fieldsList, *delim)
	if err != nil {
		return wrapError(c.name, err)
	}

	return wrapError(c.name, ProcessOperands(hc, operandsOrStdin(fs.Args()), func(r io.Reader, name string) error {
		var err error
		if opts.mode == extractFields {
			err = cutFields(hc.Stdout, r, opts)
		} else {
			err = cutLines(hc.Stdout, r, opts)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}))
}

// options validates the flag combination and parses the position list.
func (c *cutCommand) options(changed func(string) bool, bytesList, charsList, fieldsList, delim string) (cutOptions, error) {
	var opts cutOptions

	selected := 0
	list := ""
	for _, sel := range []struct {
		flag  string
		value string
		mode  extractMode
	}{
		{"bytes", bytesList, extractBytes},
		{"characters", charsList, extractChars},
		{"fields", fieldsList, extractFields},
	} {
		if changed(sel.flag) {
			selected++
			list = sel.value
			opts.mode = sel.mode
		}
	}
	switch {
	case selected == 0:
		return opts, usageError("you must specify a list of bytes, characters, or fields")
	case selected > 1:
		return opts, usageError("only one type of list may be specified")
	}

	switch {
	case delim == "":
		return opts, usageError("Delimiter must not be empty")
	case len(delim) > 1:
		return opts, usageError("Delimiter is larger than 1 byte")
	}
	opts.delimiter = delim[0]

	positions, err := parsePositions(list)
	if err != nil {
		return opts, err
	}
	opts.positions = positions
	return opts, nil
}

// parsePositions parses a comma separated list of 1-based positions "N" and
// ranges "N-M" with N < M.
func parsePositions(list string) ([]posRange, error) {
	values := strings.Split(list, ",")
	positions := make([]posRange, 0, len(values))

	for _, value := range values {
		parts := strings.SplitN(value, "-", 2)
		bounds := make([]int, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.ParseUint(part, 10, 31)
			if err != nil || n == 0 {
				return nil, usageError("illegal list value: %q", value)
			}
			bounds = append(bounds, int(n))
		}

		if len(bounds) == 1 {
			positions = append(positions, posRange{start: bounds[0] - 1, end: bounds[0]})
			continue
		}
		if bounds[1] <= bounds[0] {
			return nil, usageError("First number in range (%d) must be lower than second number (%d)", bounds[0], bounds[1])
		}
		positions = append(positions, posRange{start: bounds[0] - 1, end: bounds[1]})
	}
	return positions, nil
}

// cutLines writes the selected bytes or characters of every line.
func cutLines(out io.Writer, r io.Reader, opts cutOptions) error {
	br := bufio.NewReader(r)
	w := bufio.NewWriter(out)

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if opts.mode == extractBytes {
				w.Write(selectBytes([]byte(line), opts.positions))
			} else {
				w.WriteString(string(selectRunes([]rune(line), opts.positions)))
			}
			w.WriteByte('\n')
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return w.Flush()
			}
			return err
		}
	}
}

func selectBytes(line []byte, positions []posRange) []byte {
	var out []byte
	for _, p := range positions {
		for i := p.start; i < p.end && i < len(line); i++ {
			out = append(out, line[i])
		}
	}
	return out
}

func selectRunes(line []rune, positions []posRange) []rune {
	var out []rune
	for _, p := range positions {
		for i := p.start; i < p.end && i < len(line); i++ {
			out = append(out, line[i])
		}
	}
	return out
}

// cutFields parses r as delimited records and writes the selected fields
// back with the same delimiter.
func cutFields(out io.Writer, r io.Reader, opts cutOptions) error {
	reader := csv.NewReader(r)
	reader.Comma = rune(opts.delimiter)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	writer := csv.NewWriter(out)
	writer.Comma = rune(opts.delimiter)

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		var selected []string
		for _, p := range opts.positions {
			for i := p.start; i < p.end && i < len(record); i++ {
				selected = append(selected, record[i])
			}
		}
		if err := writer.Write(selected); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

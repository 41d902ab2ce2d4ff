// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	// ColorEnv sets the default for grep --color when the flag is not given.
	ColorEnv = "TEXTUTILS_GREP_COLOR"
	// noColorEnv disables --color=auto when set to a non-empty value.
	noColorEnv = "NO_COLOR"
)

type (
	// grepCommand implements the grep utility.
	grepCommand struct {
		baseCommand
		// isTerminal reports whether w is an interactive terminal.
		isTerminal func(w io.Writer) bool
	}

	// lineMatcher abstracts over the RE2 and backtracking engines.
	lineMatcher interface {
		MatchString(s string) bool
		// Locate returns the byte ranges of every match in s.
		Locate(s string) [][2]int
	}

	re2Matcher struct {
		re *regexp.Regexp
	}

	perlMatcher struct {
		re *regexp2.Regexp
	}

	grepOptions struct {
		count       bool
		invert      bool
		lineNumbers bool
		highlight   *color.Color
	}

	// grepInput is a resolved operand: a file to search or an error to
	// report in its place.
	grepInput struct {
		name string
		err  error
	}
)

func init() {
	RegisterDefault(newGrepCommand())
}

// newGrepCommand creates a new grep command.
func newGrepCommand() *grepCommand {
	return &grepCommand{
		baseCommand: baseCommand{
			name:     "grep",
			synopsis: "Print lines that match a pattern",
			usage:    "[-rcvinP] [--color WHEN] PATTERN [FILE...]",
			flags: []FlagInfo{
				{Name: "recursive", ShortName: "r", Description: "recursive search"},
				{Name: "count", ShortName: "c", Description: "count occurrences"},
				{Name: "invert-match", ShortName: "v", Description: "invert match"},
				{Name: "insensitive", ShortName: "i", Description: "case-insensitive"},
				{Name: "line-number", ShortName: "n", Description: "prefix each line with its line number"},
				{Name: "perl-regexp", ShortName: "P", Description: "use the backtracking regexp engine"},
				{Name: "color", Description: "highlight matches: auto, always or never", TakesValue: true},
			},
		},
		isTerminal: isTerminalWriter,
	}
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run executes the grep command.
func (c *grepCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	recursive := fs.BoolP("recursive", "r", false, "recursive search")
	var opts grepOptions
	fs.BoolVarP(&opts.count, "count", "c", false, "count occurrences")
	fs.BoolVarP(&opts.invert, "invert-match", "v", false, "invert match")
	insensitive := fs.BoolP("insensitive", "i", false, "case-insensitive")
	fs.BoolVarP(&opts.lineNumbers, "line-number", "n", false, "prefix each line with its line number")
	perl := fs.BoolP("perl-regexp", "P", false, "use the backtracking regexp engine")
	defaultColor := "auto"
	if v := hc.getenv(ColorEnv); v != "" {
		defaultColor = v
	}
	colorMode := fs.String("color", defaultColor, "highlight matches: auto, always or never")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	operands := fs.Args()
	if len(operands) == 0 {
		return wrapError(c.name, usageError("missing PATTERN"))
	}

	matcher, err := compileMatcher(operands[0], *insensitive, *perl)
	if err != nil {
		return wrapError(c.name, err)
	}
	if opts.highlight, err = c.highlighter(hc, *colorMode); err != nil {
		return wrapError(c.name, err)
	}

	inputs := c.findInputs(hc, operandsOrStdin(operands[1:]), *recursive)
	withPrefix := len(inputs) > 1

	for _, in := range inputs {
		if in.err != nil {
			fmt.Fprintln(hc.Stderr, in.err)
			continue
		}
		prefix := ""
		if withPrefix {
			prefix = in.name + ":"
		}
		err := processOperand(hc, in.name, func(r io.Reader, name string) error {
			if err := grepReader(hc.Stdout, r, matcher, prefix, opts); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
		if err != nil && !reportOpenError(hc.Stderr, err) {
			return wrapError(c.name, err)
		}
	}
	return nil
}

// compileMatcher compiles the pattern with the selected engine.
func compileMatcher(pattern string, insensitive, perl bool) (lineMatcher, error) {
	if perl {
		opts := regexp2.None
		if insensitive {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(pattern, opts)
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		return perlMatcher{re: re}, nil
	}

	expr := pattern
	if insensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return re2Matcher{re: re}, nil
}

// highlighter returns the match color, or nil when output stays plain.
// NO_COLOR is read from the handler environment.
func (c *grepCommand) highlighter(hc *HandlerContext, mode string) (*color.Color, error) {
	enabled := false
	switch mode {
	case "always":
		enabled = true
	case "never":
	case "auto":
		if c.isTerminal(hc.Stdout) && hc.getenv(noColorEnv) == "" {
			enabled = true
		}
	default:
		return nil, usageError("invalid --color %q: want auto, always or never", mode)
	}
	if !enabled {
		return nil, nil
	}
	hl := color.New(color.FgRed, color.Bold)
	hl.EnableColor()
	return hl, nil
}

// findInputs expands the operands into files. Directories are walked when
// recursive and reported otherwise; walk errors take the place of the entry.
func (c *grepCommand) findInputs(hc *HandlerContext, operands []string, recursive bool) []grepInput {
	var inputs []grepInput
	for _, operand := range operands {
		if operand == stdinOperand {
			inputs = append(inputs, grepInput{name: operand})
			continue
		}

		root := hc.resolve(operand)
		info, err := os.Stat(root)
		if err == nil && info.IsDir() && !recursive {
			inputs = append(inputs, grepInput{err: fmt.Errorf("%s is a directory", operand)})
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			name := displayPath(operand, root, path)
			if err != nil {
				inputs = append(inputs, grepInput{err: &OpenError{Path: name, Err: err}})
				return nil
			}
			if !d.IsDir() {
				inputs = append(inputs, grepInput{name: name})
			}
			return nil
		})
		if walkErr != nil {
			inputs = append(inputs, grepInput{err: &OpenError{Path: operand, Err: walkErr}})
		}
	}
	return inputs
}


// grepReader writes the selected lines of r, or their count.
func grepReader(out io.Writer, r io.Reader, m lineMatcher, prefix string, opts grepOptions) error {
	br := bufio.NewReader(r)
	w := bufio.NewWriter(out)
	count := 0
	lineNo := 0

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			if m.MatchString(line) != opts.invert {
				count++
				if !opts.count {
					w.WriteString(prefix)
					if opts.lineNumbers {
						fmt.Fprintf(w, "%d:", lineNo)
					}
					w.WriteString(colorize(line, m, opts))
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			break
		}
	}

	if opts.count {
		fmt.Fprintf(w, "%s%d\n", prefix, count)
	}
	return w.Flush()
}

// colorize wraps every match in line with the highlight color.
func colorize(line string, m lineMatcher, opts grepOptions) string {
	if opts.highlight == nil || opts.invert {
		return line
	}

	var sb strings.Builder
	last := 0
	for _, loc := range m.Locate(line) {
		if loc[1] == loc[0] {
			continue
		}
		sb.WriteString(line[last:loc[0]])
		sb.WriteString(opts.highlight.Sprint(line[loc[0]:loc[1]]))
		last = loc[1]
	}
	sb.WriteString(line[last:])
	return sb.String()
}

// MatchString reports whether s contains a match.
func (m re2Matcher) MatchString(s string) bool {
	return m.re.MatchString(s)
}

// Locate returns the byte ranges of every match in s.
func (m re2Matcher) Locate(s string) [][2]int {
	var locs [][2]int
	for _, loc := range m.re.FindAllStringIndex(s, -1) {
		locs = append(locs, [2]int{loc[0], loc[1]})
	}
	return locs
}

// MatchString reports whether s contains a match. A match timeout counts as
// no match.
func (m perlMatcher) MatchString(s string) bool {
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

// Locate returns the byte ranges of every match in s. regexp2 reports rune
// offsets, which are converted here.
func (m perlMatcher) Locate(s string) [][2]int {
	var locs [][2]int
	match, err := m.re.FindStringMatch(s)
	for err == nil && match != nil {
		start := runeOffsetToByte(s, match.Index)
		end := runeOffsetToByte(s, match.Index+match.Length)
		locs = append(locs, [2]int{start, end})
		match, err = m.re.FindNextMatch(match)
	}
	return locs
}

func runeOffsetToByte(s string, runes int) int {
	offset := 0
	for i := 0; i < runes && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return offset
}

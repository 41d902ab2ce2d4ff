// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// FortunePathEnv lists default fortune sources, separated like PATH.
const FortunePathEnv = "FORTUNE_PATH"

type (
	// fortuneCommand implements the fortune utility.
	fortuneCommand struct {
		baseCommand
	}

	// fortune is one entry of a fortune file.
	fortune struct {
		source string
		text   string
	}
)

func init() {
	RegisterDefault(newFortuneCommand())
}

// newFortuneCommand creates a new fortune command.
func newFortuneCommand() *fortuneCommand {
	return &fortuneCommand{
		baseCommand: baseCommand{
			name:     "fortune",
			synopsis: "Print a random, hopefully interesting, adage",
			usage:    "[-m PATTERN] [-i] [-s SEED] [SOURCE...]",
			flags: []FlagInfo{
				{Name: "pattern", ShortName: "m", Description: "print every fortune matching PATTERN", TakesValue: true},
				{Name: "insensitive", ShortName: "i", Description: "case-insensitive pattern matching"},
				{Name: "seed", ShortName: "s", Description: "random seed", TakesValue: true},
			},
		},
	}
}

// Run executes the fortune command.
func (c *fortuneCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	pattern := fs.StringP("pattern", "m", "", "print every fortune matching PATTERN")
	insensitive := fs.BoolP("insensitive", "i", false, "case-insensitive pattern matching")
	seed := fs.Uint64P("seed", "s", 0, "random seed")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	var re *regexp.Regexp
	if fs.Changed("pattern") {
		expr := *pattern
		if *insensitive {
			expr = "(?i)" + expr
		}
		var err error
		if re, err = regexp.Compile(expr); err != nil {
			return wrapError(c.name, &PatternError{Flag: "pattern", Pattern: *pattern, Err: err})
		}
	}

	sources := fs.Args()
	if len(sources) == 0 {
		if env := hc.getenv(FortunePathEnv); env != "" {
			sources = filepath.SplitList(env)
		}
	}
	if len(sources) == 0 {
		return wrapError(c.name, usageError("missing SOURCE and %s is not set", FortunePathEnv))
	}

	files, err := findFortuneFiles(hc, sources)
	if err != nil {
		return wrapError(c.name, err)
	}
	fortunes, err := readFortunes(files)
	if err != nil {
		return wrapError(c.name, err)
	}
	hc.logger().Debug("fortunes loaded", "files", len(files), "fortunes", len(fortunes))

	if re != nil {
		printMatchingFortunes(hc.Stdout, hc.Stderr, fortunes, re)
		return nil
	}

	var rng *rand.Rand
	if fs.Changed("seed") {
		rng = rand.New(rand.NewPCG(*seed, *seed))
	}
	if f, ok := pickFortune(fortunes, rng); ok {
		fmt.Fprintln(hc.Stdout, f)
	} else {
		fmt.Fprintln(hc.Stdout, "No fortunes found")
	}
	return nil
}

// findFortuneFiles expands sources into a sorted, duplicate-free list of
// regular files. A missing source is an error.
func findFortuneFiles(hc *HandlerContext, sources []string) ([]string, error) {
	var files []string
	for _, source := range sources {
		root := hc.resolve(source)
		if _, err := os.Stat(root); err != nil {
			return nil, &OpenError{Path: source, Err: err}
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// readFortunes reads every fortune of every file in order.
func readFortunes(files []string) ([]fortune, error) {
	var fortunes []fortune
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, &OpenError{Path: path, Err: err}
		}
		texts, err := splitFortunes(f)
		_ = f.Close() // Read-only file; close error is not actionable
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, text := range texts {
			fortunes = append(fortunes, fortune{source: filepath.Base(path), text: text})
		}
	}
	return fortunes, nil
}

// splitFortunes splits r on lines consisting of "%". Each fortune is
// right-trimmed; empty fortunes are dropped.
func splitFortunes(r io.Reader) ([]string, error) {
	var texts []string
	var current strings.Builder

	flush := func() {
		if text := strings.TrimRight(current.String(), " \t\r\n"); text != "" {
			texts = append(texts, text)
		}
		current.Reset()
	}

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if strings.TrimRight(line, " \t\r\n") == "%" {
			flush()
		} else {
			current.WriteString(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}
	flush()
	return texts, nil
}

// printMatchingFortunes prints every fortune matching re, each followed by
// "%". The source name is announced on stderr whenever it changes.
func printMatchingFortunes(stdout, stderr io.Writer, fortunes []fortune, re *regexp.Regexp) {
	current := ""
	for _, f := range fortunes {
		if !re.MatchString(f.text) {
			continue
		}
		if f.source != current {
			current = f.source
			fmt.Fprintf(stderr, "(%s)\n%%\n", f.source)
		}
		fmt.Fprintf(stdout, "%s\n%%\n", f.text)
	}
}

// pickFortune chooses one fortune. A nil rng uses the global source.
func pickFortune(fortunes []fortune, rng *rand.Rand) (string, bool) {
	if len(fortunes) == 0 {
		return "", false
	}
	if rng == nil {
		return fortunes[rand.IntN(len(fortunes))].text, true
	}
	return fortunes[rng.IntN(len(fortunes))].text, true
}

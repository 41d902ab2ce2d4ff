// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

type (
	// findCommand implements the find utility.
	findCommand struct {
		baseCommand
	}

	// entryType is a --type filter value.
	entryType byte

	findOptions struct {
		names    []*regexp.Regexp
		types    []entryType
		maxDepth int
		exclude  *gitignore.GitIgnore
	}
)

const (
	typeFile entryType = 'f'
	typeDir  entryType = 'd'
	typeLink entryType = 'l'
)

func init() {
	RegisterDefault(newFindCommand())
}

// newFindCommand creates a new find command.
func newFindCommand() *findCommand {
	return &findCommand{
		baseCommand: baseCommand{
			name:     "find",
			synopsis: "Search for files in a directory hierarchy",
			usage:    "[-n NAME]... [-t f|d|l]... [--maxdepth N] [--exclude-from FILE] [PATH...]",
			flags: []FlagInfo{
				{Name: "name", ShortName: "n", Description: "regular expression matched against the base name", TakesValue: true},
				{Name: "type", ShortName: "t", Description: "entry type: f (file), d (directory) or l (link)", TakesValue: true},
				{Name: "maxdepth", Description: "descend at most N levels below the starting points", TakesValue: true},
				{Name: "exclude-from", Description: "skip entries matching the gitignore patterns in FILE", TakesValue: true},
			},
		},
	}
}

// Run executes the find command.
func (c *findCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	names := fs.StringArrayP("name", "n", nil, "regular expression matched against the base name")
	types := fs.StringArrayP("type", "t", nil, "entry type")
	maxDepth := fs.Int("maxdepth", -1, "descend at most N levels")
	excludeFrom := fs.String("exclude-from", "", "gitignore pattern file")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	if fs.Changed("maxdepth") && *maxDepth < 0 {
		return wrapError(c.name, usageError("invalid --maxdepth %d", *maxDepth))
	}

	opts, err := c.options(hc, *names, *types, *maxDepth, *excludeFrom)
	if err != nil {
		return wrapError(c.name, err)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		if err := c.walk(ctx, hc, p, opts); err != nil {
			return wrapError(c.name, err)
		}
	}
	return nil
}

func (c *findCommand) options(hc *HandlerContext, names, types []string, maxDepth int, excludeFrom string) (findOptions, error) {
	opts := findOptions{maxDepth: maxDepth}

	for _, name := range names {
		re, err := regexp.Compile(name)
		if err != nil {
			return opts, &PatternError{Flag: "name", Pattern: name, Err: err}
		}
		opts.names = append(opts.names, re)
	}

	for _, t := range types {
		if len(t) != 1 || !strings.Contains("fdl", t) {
			return opts, usageError("invalid --type %q", t)
		}
		opts.types = append(opts.types, entryType(t[0]))
	}

	if excludeFrom != "" {
		ignore, err := gitignore.CompileIgnoreFile(hc.resolve(excludeFrom))
		if err != nil {
			return opts, &OpenError{Path: excludeFrom, Err: err}
		}
		opts.exclude = ignore
	}
	return opts, nil
}

// walk prints every entry under root that passes the filters. Entries that
// cannot be read are reported and skipped.
func (c *findCommand) walk(ctx context.Context, hc *HandlerContext, operand string, opts findOptions) error {
	root := hc.resolve(operand)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		name := displayPath(operand, root, path)
		if err != nil {
			fmt.Fprintln(hc.Stderr, (&OpenError{Path: name, Err: err}).Error())
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		depth := 0
		if rel != "." {
			depth = strings.Count(filepath.ToSlash(rel), "/") + 1
		}

		if opts.exclude != nil && rel != "." {
			candidate := rel
			if d.IsDir() {
				candidate += string(filepath.Separator)
			}
			if opts.exclude.MatchesPath(candidate) {
				hc.logger().Debug("find excluded", "path", name)
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if opts.maxDepth >= 0 && depth > opts.maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.matchesType(d) && opts.matchesName(filepath.Base(name)) {
			fmt.Fprintln(hc.Stdout, name)
		}
		return nil
	})
}

func (o findOptions) matchesType(d fs.DirEntry) bool {
	if len(o.types) == 0 {
		return true
	}
	for _, t := range o.types {
		switch {
		case t == typeFile && d.Type().IsRegular(),
			t == typeDir && d.IsDir(),
			t == typeLink && d.Type()&fs.ModeSymlink != 0:
			return true
		}
	}
	return false
}

func (o findOptions) matchesName(base string) bool {
	if len(o.names) == 0 {
		return true
	}
	for _, re := range o.names {
		if re.MatchString(base) {
			return true
		}
	}
	return false
}

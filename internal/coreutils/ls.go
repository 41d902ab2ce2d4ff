// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

type (
	// lsCommand implements the ls utility.
	lsCommand struct {
		baseCommand
	}

	// lsEntry is one listed path with its resolved metadata.
	lsEntry struct {
		name string
		info fs.FileInfo
	}

	// ownership is the link count and owner names of an entry.
	ownership struct {
		links uint64
		user  string
		group string
	}
)

// lsTimeLayout renders the modification time like "%e %b %H:%M".
const lsTimeLayout = "_2 Jan 15:04"

func init() {
	RegisterDefault(newLsCommand())
}

// newLsCommand creates a new ls command.
func newLsCommand() *lsCommand {
	return &lsCommand{
		baseCommand: baseCommand{
			name:     "ls",
			synopsis: "List directory contents",
			usage:    "[-l] [-a] [PATH...]",
			flags: []FlagInfo{
				{Name: "long", ShortName: "l", Description: "long listing"},
				{Name: "all", ShortName: "a", Description: "show all files"},
			},
		},
	}
}

// Run executes the ls command.
func (c *lsCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	long := fs.BoolP("long", "l", false, "long listing")
	all := fs.BoolP("all", "a", false, "show all files")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	entries, err := c.collect(hc, paths, *all)
	if err != nil {
		return wrapError(c.name, err)
	}

	if !*long {
		for _, e := range entries {
			fmt.Fprintln(hc.Stdout, e.name)
		}
		return nil
	}
	writeLongListing(hc.Stdout, entries)
	return nil
}

// collect expands directory operands into their entries. Operands that do
// not exist are reported and skipped; unreadable directories are fatal.
func (c *lsCommand) collect(hc *HandlerContext, paths []string, all bool) ([]lsEntry, error) {
	var entries []lsEntry
	for _, path := range paths {
		resolved := hc.resolve(path)
		info, err := os.Stat(resolved)
		if err != nil {
			reportOpenError(hc.Stderr, &OpenError{Path: path, Err: err})
			continue
		}
		if !info.IsDir() {
			entries = append(entries, lsEntry{name: path, info: info})
			continue
		}

		dirEntries, err := os.ReadDir(resolved)
		if err != nil {
			return nil, &OpenError{Path: path, Err: err}
		}
		for _, de := range dirEntries {
			if !all && strings.HasPrefix(de.Name(), ".") {
				continue
			}
			name := joinOperand(path, de.Name())
			childInfo, err := os.Stat(hc.resolve(name))
			if err != nil {
				// Dangling symlinks are listed with their own metadata.
				if childInfo, err = de.Info(); err != nil {
					return nil, &OpenError{Path: name, Err: err}
				}
			}
			entries = append(entries, lsEntry{name: name, info: childInfo})
		}
	}
	return entries, nil
}

// writeLongListing prints one aligned row per entry: mode, links, owner,
// group, size, modification time and path.
func writeLongListing(out io.Writer, entries []lsEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		own := ownerOf(e.info)
		rows = append(rows, []string{
			formatMode(e.info),
			strconv.FormatUint(own.links, 10),
			own.user,
			own.group,
			strconv.FormatInt(e.info.Size(), 10),
			e.info.ModTime().Local().Format(lsTimeLayout),
			e.name,
		})
	}

	// Right-aligned: link count and size.
	rightAligned := []bool{false, true, false, false, true, false, false}
	widths := make([]int, len(rightAligned))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			switch i {
			case 0:
			case 1, 3, 4:
				sb.WriteString("  ")
			default:
				sb.WriteByte(' ')
			}
			switch {
			case rightAligned[i]:
				fmt.Fprintf(&sb, "%*s", widths[i], cell)
			case i == len(row)-1:
				sb.WriteString(cell)
			default:
				fmt.Fprintf(&sb, "%-*s", widths[i], cell)
			}
		}
		sb.WriteByte('\n')
		io.WriteString(out, sb.String())
	}
}

// formatMode renders the type marker and the rwx permission triplets.
func formatMode(info fs.FileInfo) string {
	kind := "-"
	if info.IsDir() {
		kind = "d"
	}
	return kind + info.Mode().Perm().String()[1:]
}

// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	// calMonthWidth is the width of one rendered month including its
	// trailing separator column.
	calMonthWidth = 22
	// calMonthLines is the height of one rendered month.
	calMonthLines = 8
	calDayHeader  = "Su Mo Tu We Th Fr Sa"
)

type (
	// calCommand implements the cal utility.
	calCommand struct {
		baseCommand
		// now returns the current time; replaced in tests.
		now func() time.Time
	}

	// highlightFunc renders today's day number.
	highlightFunc func(string) string
)

func init() {
	RegisterDefault(newCalCommand())
}

// newCalCommand creates a new cal command.
func newCalCommand() *calCommand {
	return &calCommand{
		baseCommand: baseCommand{
			name:     "cal",
			synopsis: "Display a calendar",
			usage:    "[-m MONTH] [-y] [YEAR]",
			flags: []FlagInfo{
				{Name: "month", ShortName: "m", Description: "month name or number (1-12)", TakesValue: true},
				{Name: "year", ShortName: "y", Description: "show the whole current year"},
			},
		},
		now: time.Now,
	}
}

// Run executes the cal command.
func (c *calCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	monthStr := fs.StringP("month", "m", "", "month name or number (1-12)")
	wholeYear := fs.BoolP("year", "y", false, "show the whole current year")

	if helped, err := c.parseFlags(hc, fs, args); helped || err != nil {
		return wrapError(c.name, err)
	}

	operands := fs.Args()
	if len(operands) > 1 {
		return wrapError(c.name, usageError("extra operand %q", operands[1]))
	}
	if *wholeYear && (fs.Changed("month") || len(operands) > 0) {
		return wrapError(c.name, usageError("--year cannot be used with --month or YEAR"))
	}

	today := c.now()
	year := today.Year()
	month := 0

	if fs.Changed("month") {
		m, err := parseMonth(*monthStr)
		if err != nil {
			return wrapError(c.name, err)
		}
		month = m
	}
	if len(operands) == 1 {
		y, err := parseYear(operands[0])
		if err != nil {
			return wrapError(c.name, err)
		}
		year = y
	} else if !*wholeYear && month == 0 {
		month = int(today.Month())
	}

	reverse := lipgloss.NewRenderer(hc.Stdout).NewStyle().Reverse(true)
	highlight := func(s string) string { return reverse.Render(s) }

	var lines []string
	if month != 0 {
		lines = formatMonth(year, time.Month(month), true, today, highlight)
	} else {
		lines = formatYear(year, today, highlight)
	}
	for _, line := range lines {
		fmt.Fprintln(hc.Stdout, line)
	}
	return nil
}

// parseMonth accepts 1-12 or a unique case-insensitive prefix of a month
// name.
func parseMonth(value string) (int, error) {
	if n, err := strconv.ParseUint(value, 10, 32); err == nil {
		if n < 1 || n > 12 {
			return 0, usageError("month %q not in the range 1 through 12", strconv.FormatUint(n, 10))
		}
		return int(n), nil
	}

	lower := strings.ToLower(value)
	match := 0
	for m := time.January; m <= time.December; m++ {
		if value != "" && strings.HasPrefix(strings.ToLower(m.String()), lower) {
			if match != 0 {
				return 0, usageError("Invalid month %q", value)
			}
			match = int(m)
		}
	}
	if match == 0 {
		return 0, usageError("Invalid month %q", value)
	}
	return match, nil
}

// parseYear accepts 1 through 9999.
func parseYear(value string) (int, error) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, usageError("Invalid year %q", value)
	}
	if n < 1 || n > 9999 {
		return 0, usageError("year %q not in the range 1 through 9999", strconv.FormatInt(n, 10))
	}
	return int(n), nil
}

// formatMonth renders one month as calMonthLines lines of calMonthWidth
// visible columns. Today's day number goes through highlight.
func formatMonth(year int, month time.Month, withYear bool, today time.Time, highlight highlightFunc) []string {
	title := month.String()
	if withYear {
		title += " " + strconv.Itoa(year)
	}

	lines := make([]string, 0, calMonthLines)
	lines = append(lines, center(title, 20)+" ", calDayHeader+" ")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	ty, tm, td := today.Date()

	var line strings.Builder
	visible := int(first.Weekday()) * 3
	line.WriteString(strings.Repeat(" ", visible))

	for day := 1; day <= daysInMonth; day++ {
		num := fmt.Sprintf("%2d", day)
		if ty == year && tm == month && td == day {
			num = highlight(num)
		}
		line.WriteString(num + " ")
		visible += 3

		if first.AddDate(0, 0, day-1).Weekday() == time.Saturday {
			lines = append(lines, line.String())
			line.Reset()
			visible = 0
		}
	}
	lines = append(lines, line.String()+strings.Repeat(" ", 21-visible))

	for len(lines) < calMonthLines {
		lines = append(lines, strings.Repeat(" ", 21))
	}
	for i := range lines {
		lines[i] += " "
	}
	return lines
}

// formatYear renders the year number right-aligned over four rows of three
// months, rows separated by a blank line.
func formatYear(year int, today time.Time, highlight highlightFunc) []string {
	lines := []string{fmt.Sprintf("%32d", year)}
	for row := range 4 {
		months := make([][]string, 3)
		for col := range 3 {
			months[col] = formatMonth(year, time.Month(row*3+col+1), false, today, highlight)
		}
		for i := range calMonthLines {
			lines = append(lines, months[0][i]+months[1][i]+months[2][i])
		}
		if row < 3 {
			lines = append(lines, "")
		}
	}
	return lines
}

// center pads s to width, placing the odd space on the right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

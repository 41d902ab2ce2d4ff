// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/invowk/textutils/internal/coreutils"

	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [UTILITY...]",
		Short: "List the bundled utilities and their flags",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.printList(cmd.OutOrStdout(), args)
		},
	}
}

// printList writes the named utilities, or all of them, with their synopsis
// and flag table.
func (a *App) printList(w io.Writer, names []string) error {
	if len(names) == 0 {
		names = a.Registry.Names()
	}

	utilities := make([]coreutils.Command, 0, len(names))
	width := 0
	for _, name := range names {
		utility, ok := a.Registry.Lookup(name)
		if !ok {
			return fmt.Errorf("%s: %w", name, coreutils.ErrCommandNotFound)
		}
		utilities = append(utilities, utility)
		width = max(width, len(name))
	}

	styles := newStyles(w, a.cfg.UI.Color)
	fmt.Fprintln(w, styles.Title.Render("Utilities"))

	for _, utility := range utilities {
		name := utility.Name()
		fmt.Fprintf(w, "\n  %s%s  %s\n",
			styles.Cmd.Render(name), strings.Repeat(" ", width-len(name)),
			styles.Subtitle.Render(utility.Synopsis()))

		for _, flag := range utility.SupportedFlags() {
			label := flagLabel(flag)
			fmt.Fprintf(w, "      %s%s  %s\n",
				styles.Value.Render(label), strings.Repeat(" ", max(0, 24-len(label))),
				flag.Description)
		}
	}
	return nil
}

// flagLabel renders a flag as "-n, --lines LINES" or "    --color COLOR".
func flagLabel(flag coreutils.FlagInfo) string {
	var sb strings.Builder
	if flag.ShortName != "" {
		sb.WriteString("-" + flag.ShortName + ", ")
	} else {
		sb.WriteString("    ")
	}
	sb.WriteString("--" + flag.Name)
	if flag.TakesValue {
		sb.WriteString(" " + strings.ToUpper(flag.Name))
	}
	return sb.String()
}

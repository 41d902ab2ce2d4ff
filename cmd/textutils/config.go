// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/invowk/textutils/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `textutils config` command tree. The
// configuration is loaded once by the root command before these run.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage textutils configuration",
		Long: `Manage textutils configuration.

Configuration is read from the --config file, otherwise from:
  - Linux: $XDG_CONFIG_HOME/textutils/config.cue (~/.config by default)
  - macOS: ~/Library/Application Support/textutils/config.cue
  - Windows: %APPDATA%\textutils\config.cue
and finally ./config.cue. TEXTUTILS_* environment variables override
individual keys, e.g. TEXTUTILS_UI_COLOR=never.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	strict := map[string]string{annotationStrictConfig: "true"}

	cfgCmd.AddCommand(&cobra.Command{
		Use:         "show",
		Short:       "Show the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: strict,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.showConfig(cmd.OutOrStdout())
			return nil
		},
	})

	dumpCmd := &cobra.Command{
		Use:         "dump",
		Short:       "Output the effective configuration as CUE or TOML",
		Args:        cobra.NoArgs,
		Annotations: strict,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			return app.dumpConfig(cmd.OutOrStdout(), format)
		},
	}
	dumpCmd.Flags().String("format", "cue", "output format: cue or toml")
	cfgCmd.AddCommand(dumpCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.showConfigPath(cmd.OutOrStdout())
		},
	})

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return app.initConfig(cmd.OutOrStdout(), force)
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

func (a *App) showConfig(w io.Writer) {
	styles := newStyles(w, a.cfg.UI.Color)
	key := styles.Cmd.Render
	value := styles.Value.Render

	fmt.Fprintln(w, styles.Title.Render("Current Configuration"))
	fmt.Fprintln(w)

	if a.cfgPath != "" {
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), a.cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), styles.Subtitle.Render("(using defaults)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", value(fmt.Sprintf("%v", a.cfg.UI.Verbose)))
	fmt.Fprintf(w, "  color: %s\n", value(a.cfg.UI.Color.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("shell"))
	fmt.Fprintf(w, "  enable_builtins: %s\n", value(fmt.Sprintf("%v", a.cfg.Shell.EnableBuiltins)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("fortune"))
	if len(a.cfg.Fortune.Sources) == 0 {
		fmt.Fprintf(w, "  %s\n", styles.Subtitle.Render("(no sources configured)"))
		return
	}
	for _, src := range a.cfg.Fortune.Sources {
		fmt.Fprintf(w, "  - %s\n", value(src))
	}
}

func (a *App) dumpConfig(w io.Writer, format string) error {
	switch format {
	case "cue":
		fmt.Fprint(w, config.GenerateCUE(a.cfg))
		return nil
	case "toml":
		out, err := config.GenerateTOML(a.cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil
	default:
		return &ExitError{Code: usageExitCode, Err: fmt.Errorf("invalid --format %q: want cue or toml", format)}
	}
}

// showConfigPath prints the file that would be loaded, or where `config init`
// would write when none exists.
func (a *App) showConfigPath(w io.Writer) error {
	path, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: a.cfgFile, WorkDir: a.dir})
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintln(w, path)
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	styles := newStyles(w, a.cfg.UI.Color)
	fmt.Fprintf(w, "%s %s\n",
		filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt),
		styles.Subtitle.Render("(not created)"))
	return nil
}

func (a *App) initConfig(w io.Writer, force bool) error {
	path, err := config.CreateDefaultConfig(a.cfgFile, force)
	if err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			styles := newStyles(w, a.cfg.UI.Color)
			fmt.Fprintf(w, "%s %s\n", styles.Warning.Render("Configuration already exists:"), path)
			fmt.Fprintln(w, styles.Subtitle.Render("Use --force to overwrite it."))
			return nil
		}
		return err
	}

	styles := newStyles(w, a.cfg.UI.Color)
	fmt.Fprintf(w, "%s %s\n", styles.Value.Render("Created configuration:"), path)
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/invowk/textutils/internal/config"
	"github.com/invowk/textutils/internal/coreutils"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives the App and reads streams, environment and the loaded
	// configuration through it.
	App struct {
		Config   config.Provider
		Registry *coreutils.Registry

		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer
		lookupEnv func(string) (string, bool)
		environ   func() []string
		dir       string
		// args are the raw command-line arguments, kept to locate root flags
		// given before a utility name.
		args []string

		verbose bool
		cfgFile string
		cfg     *config.Config
		cfgPath string
		logger  *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		Registry  *coreutils.Registry
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
		LookupEnv func(string) (string, bool)
		Environ   func() []string
		// Dir is the working directory; empty means the process directory.
		Dir  string
		Args []string
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		Registry:  deps.Registry,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		lookupEnv: deps.LookupEnv,
		environ:   deps.Environ,
		dir:       deps.Dir,
		args:      deps.Args,
		cfg:       config.DefaultConfig(),
	}

	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Registry == nil {
		app.Registry = coreutils.DefaultRegistry
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.lookupEnv == nil {
		app.lookupEnv = os.LookupEnv
	}
	if app.environ == nil {
		app.environ = os.Environ
	}
	if app.dir == "" {
		if wd, err := os.Getwd(); err == nil {
			app.dir = wd
		}
	}
	if app.args == nil {
		app.args = os.Args[1:]
	}

	app.logger = log.NewWithOptions(app.stderr, log.Options{
		Prefix: config.AppName,
		Level:  log.InfoLevel,
	})

	return app
}

// loadConfig loads the configuration selected by --config. On failure the
// defaults stay in effect and the error is returned for the caller to report.
func (a *App) loadConfig(ctx context.Context) error {
	cfg, path, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: a.cfgFile,
		WorkDir:        a.dir,
	})
	if err != nil {
		a.applyConfig(config.DefaultConfig(), "")
		return err
	}
	a.applyConfig(cfg, path)
	return nil
}

func (a *App) applyConfig(cfg *config.Config, path string) {
	a.cfg = cfg
	a.cfgPath = path
	if cfg.UI.Verbose {
		a.verbose = true
	}
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
}

// lookupUtilityEnv resolves environment variables for utilities. Variables
// set in the process environment win; otherwise configured defaults are
// exported under the names the utilities read.
func (a *App) lookupUtilityEnv(name string) (string, bool) {
	if v, ok := a.lookupEnv(name); ok {
		return v, true
	}
	switch name {
	case coreutils.FortunePathEnv:
		if p := a.cfg.Fortune.FortunePath(); p != "" {
			return p, true
		}
	case coreutils.ColorEnv:
		return a.cfg.UI.Color.String(), true
	}
	return "", false
}

// shellEnviron returns the process environment plus configured defaults
// that are not already set.
func (a *App) shellEnviron() []string {
	env := a.environ()
	for _, name := range []string{coreutils.FortunePathEnv, coreutils.ColorEnv} {
		if _, ok := a.lookupEnv(name); ok {
			continue
		}
		if v, ok := a.lookupUtilityEnv(name); ok {
			env = append(env, name+"="+v)
		}
	}
	return env
}

// handlerContext returns the execution environment for a utility run
// directly from the command line.
func (a *App) handlerContext() *coreutils.HandlerContext {
	return &coreutils.HandlerContext{
		Stdin:     a.stdin,
		Stdout:    a.stdout,
		Stderr:    a.stderr,
		Dir:       a.dir,
		LookupEnv: a.lookupUtilityEnv,
		Logger:    a.logger,
	}
}

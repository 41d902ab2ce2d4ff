// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/invowk/textutils/internal/config"
	"github.com/invowk/textutils/internal/coreutils"

	"github.com/charmbracelet/fang"
)

type (
	// stubProvider returns a fixed configuration and records load options.
	stubProvider struct {
		cfg  *config.Config
		path string
		err  error
		opts []config.LoadOptions
	}

	harness struct {
		app    *App
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}

	harnessOptions struct {
		provider config.Provider
		registry *coreutils.Registry
		stdin    string
		dir      string
		env      map[string]string
	}
)

func (p *stubProvider) Load(_ context.Context, opts config.LoadOptions) (*config.Config, string, error) {
	p.opts = append(p.opts, opts)
	if p.err != nil {
		return nil, "", p.err
	}
	cfg := p.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg, p.path, nil
}

func newHarness(t *testing.T, opts harnessOptions, args ...string) *harness {
	t.Helper()

	if opts.provider == nil {
		opts.provider = &stubProvider{}
	}
	if opts.dir == "" {
		opts.dir = t.TempDir()
	}

	var stdout, stderr bytes.Buffer
	env := opts.env
	app := NewApp(Dependencies{
		Config:   opts.provider,
		Registry: opts.registry,
		Stdin:    strings.NewReader(opts.stdin),
		Stdout:   &stdout,
		Stderr:   &stderr,
		LookupEnv: func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		},
		Environ: func() []string {
			list := make([]string, 0, len(env))
			for k, v := range env {
				list = append(list, k+"="+v)
			}
			return list
		},
		Dir:  opts.dir,
		Args: append([]string{}, args...),
	})

	return &harness{app: app, stdout: &stdout, stderr: &stderr}
}

// run executes the command tree the way Execute does, minus fang's help
// and version wiring.
func (h *harness) run(t *testing.T) error {
	t.Helper()

	root := NewRootCommand(h.app)
	root.SilenceErrors = true
	root.SilenceUsage = true

	err := root.ExecuteContext(t.Context())
	if err != nil {
		h.app.handleError(h.stderr, fang.Styles{}, err)
	}
	return err
}

// configWith returns the defaults modified by fn.
func configWith(fn func(*config.Config)) *config.Config {
	cfg := config.DefaultConfig()
	fn(cfg)
	return cfg
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/textutils/internal/config"
	"github.com/invowk/textutils/internal/testutil"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		cfg: configWith(func(c *config.Config) {
			c.UI.Color = config.ColorNever
			c.Fortune.Sources = []string{"/srv/fortunes"}
		}),
		path: "/etc/textutils/config.cue",
	}
	h := newHarness(t, harnessOptions{provider: provider}, "config", "show")

	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}

	out := h.stdout.String()
	for _, want := range []string{
		"Current Configuration",
		"Config file: /etc/textutils/config.cue",
		"color: never",
		"enable_builtins: true",
		"- /srv/fortunes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShow_Defaults(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harnessOptions{}, "config", "show")
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if out := h.stdout.String(); !strings.Contains(out, "(using defaults)") || !strings.Contains(out, "(no sources configured)") {
		t.Errorf("output:\n%s", out)
	}
}

func TestConfigShow_FailsOnLoadError(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{err: errors.New("config.cue:3:2: field not allowed")}
	h := newHarness(t, harnessOptions{provider: provider}, "config", "show")

	if code := exitCode(t, h.run(t)); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(h.stderr.String(), "field not allowed") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
	if h.stdout.Len() != 0 {
		t.Errorf("nothing should be shown, stdout = %q", h.stdout.String())
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	cfg := configWith(func(c *config.Config) { c.UI.Verbose = true })
	h := newHarness(t, harnessOptions{provider: &stubProvider{cfg: cfg}}, "config", "dump")

	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if got, want := h.stdout.String(), config.GenerateCUE(cfg); got != want {
		t.Errorf("dump = %q, want %q", got, want)
	}
}

func TestConfigDump_TOML(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harnessOptions{}, "config", "dump", "--format", "toml")
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	want, err := config.GenerateTOML(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if h.stdout.String() != want {
		t.Errorf("dump = %q, want %q", h.stdout.String(), want)
	}

	bad := newHarness(t, harnessOptions{}, "config", "dump", "--format", "yaml")
	if code := exitCode(t, bad.run(t)); code != usageExitCode {
		t.Errorf("exit code = %d, want %d", code, usageExitCode)
	}
}

func TestConfigPath_Explicit(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harnessOptions{}, "--config", "/opt/textutils.cue", "config", "path")
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if h.stdout.String() != "/opt/textutils.cue\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestConfigInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.cue")

	h := newHarness(t, harnessOptions{}, "--config", path, "config", "init")
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "Created configuration: "+path) {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	if got := testutil.MustReadFile(t, path); got != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("written config = %q", got)
	}

	again := newHarness(t, harnessOptions{}, "--config", path, "config", "init")
	if err := again.run(t); err != nil {
		t.Fatalf("second init returned error: %v", err)
	}
	if !strings.Contains(again.stdout.String(), "already exists") {
		t.Errorf("stdout = %q", again.stdout.String())
	}

	testutil.MustWriteFile(t, filepath.Dir(path), "config.cue", "ui: verbose: true\n")
	forced := newHarness(t, harnessOptions{}, "--config", path, "config", "init", "--force")
	if err := forced.run(t); err != nil {
		t.Fatalf("forced init returned error: %v", err)
	}
	if got := testutil.MustReadFile(t, path); got != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("--force should overwrite, got %q", got)
	}
}

func TestConfigShow_LoadsCUEFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.MustWriteFile(t, dir, "custom.cue", `
ui: color: "never"
fortune: sources: ["/data/fortunes"]
`)

	h := newHarness(t, harnessOptions{provider: config.NewProvider(), dir: dir}, "--config", path, "config", "show")
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v (stderr %q)", err, h.stderr.String())
	}
	out := h.stdout.String()
	if !strings.Contains(out, "Config file: "+path) || !strings.Contains(out, "- /data/fortunes") {
		t.Errorf("output:\n%s", out)
	}
}

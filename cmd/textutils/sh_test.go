// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/invowk/textutils/internal/config"
	"github.com/invowk/textutils/internal/coreutils"
	"github.com/invowk/textutils/internal/testutil"
)

// echoArgsCommand prints its arguments.
type echoArgsCommand struct{}

func (echoArgsCommand) Name() string                         { return "echo-args" }
func (echoArgsCommand) Synopsis() string                     { return "print arguments" }
func (echoArgsCommand) SupportedFlags() []coreutils.FlagInfo { return nil }

func (echoArgsCommand) Run(ctx context.Context, args []string) error {
	hc := coreutils.GetHandlerContext(ctx)
	_, err := hc.Stdout.Write([]byte(strings.Join(args[1:], ",") + "\n"))
	return err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *ExitError", err)
	}
	return exitErr.Code
}

func TestShellCommand_InlineScript(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harnessOptions{}, "sh", "-c", `printf 'a\nb\n' | wc -l`)
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v (stderr %q)", err, h.stderr.String())
	}
	if h.stdout.String() != "       2\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestShellCommand_PositionalArgs(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harnessOptions{}, "sh", "-c", `echo "$1|$2"`, "-n", "x")
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if h.stdout.String() != "-n|x\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestShellCommand_ScriptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "data.txt", "b\na\nb\n")
	testutil.MustWriteFile(t, dir, "count.sh", "grep -c \"$1\" data.txt\n")

	h := newHarness(t, harnessOptions{dir: dir}, "sh", "count.sh", "b")
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v (stderr %q)", err, h.stderr.String())
	}
	if h.stdout.String() != "2\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestShellCommand_ScriptFromStdin(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harnessOptions{stdin: "echo from-stdin\n"}, "sh")
	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if h.stdout.String() != "from-stdin\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestShellCommand_ExitStatus(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harnessOptions{}, "sh", "-c", "exit 4")
	if code := exitCode(t, h.run(t)); code != 4 {
		t.Errorf("exit code = %d, want 4", code)
	}
	if h.stderr.String() != "" {
		t.Errorf("a script exit status should print nothing, stderr = %q", h.stderr.String())
	}
}

func TestShellCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"missing -c argument", []string{"sh", "-c"}, usageExitCode, "sh: -c: option requires an argument"},
		{"missing script file", []string{"sh", "missing.sh"}, scriptNotFoundExitCode, "failed to open script: missing.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, harnessOptions{}, tt.args...)
			if code := exitCode(t, h.run(t)); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(h.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", h.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestShellCommand_BuiltinsFollowConfig(t *testing.T) {
	t.Parallel()

	registry := coreutils.NewRegistry()
	registry.Register(echoArgsCommand{})

	enabled := newHarness(t, harnessOptions{registry: registry}, "sh", "-c", "echo-args a b")
	if err := enabled.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if enabled.stdout.String() != "a,b\n" {
		t.Errorf("stdout = %q", enabled.stdout.String())
	}

	provider := &stubProvider{cfg: configWith(func(c *config.Config) { c.Shell.EnableBuiltins = false })}
	disabled := newHarness(t, harnessOptions{registry: registry, provider: provider}, "sh", "-c", "echo-args a b")
	if code := exitCode(t, disabled.run(t)); code != 127 {
		t.Errorf("exit code = %d, want 127 from the host lookup", code)
	}
}

func TestShellCommand_SeesConfiguredEnvironment(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{cfg: configWith(func(c *config.Config) { c.Fortune.Sources = []string{"/srv/fortunes"} })}
	h := newHarness(t, harnessOptions{provider: provider}, "-v", "sh", "-c", `echo "$FORTUNE_PATH"`)

	if err := h.run(t); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if h.stdout.String() != "/srv/fortunes\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	if !h.app.verbose {
		t.Error("-v before sh should enable verbose mode")
	}
}

// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newFindTree lays out a small tree under env.dir/d with one symlink.
func newFindTree(t *testing.T, env *testEnv) {
	t.Helper()

	env.write(t, "d/a.txt", "a")
	env.write(t, "d/b.csv", "b")
	env.write(t, "d/sub/c.txt", "c")
	env.write(t, "d/sub/deep/e.mp3", "e")
	if err := os.Symlink("a.txt", filepath.Join(env.dir, "d", "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestFindCommand_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"everything", nil, []string{"d", "d/a.txt", "d/b.csv", "d/link", "d/sub", "d/sub/c.txt", "d/sub/deep", "d/sub/deep/e.mp3"}},
		{"files", []string{"-t", "f"}, []string{"d/a.txt", "d/b.csv", "d/sub/c.txt", "d/sub/deep/e.mp3"}},
		{"links", []string{"--type", "l"}, []string{"d/link"}},
		{"dirs", []string{"-t", "d"}, []string{"d", "d/sub", "d/sub/deep"}},
		{"files or links", []string{"-t", "f", "-t", "l", "-n", "^[al]"}, []string{"d/a.txt", "d/link"}},
		{"name regex", []string{"-n", `\.txt$`}, []string{"d/a.txt", "d/sub/c.txt"}},
		{"repeated names", []string{"-n", "txt", "--name", "csv"}, []string{"d/a.txt", "d/b.csv", "d/sub/c.txt"}},
		{"maxdepth one", []string{"-t", "f", "--maxdepth", "1"}, []string{"d/a.txt", "d/b.csv"}},
		{"maxdepth zero", []string{"--maxdepth", "0"}, []string{"d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, "")
			newFindTree(t, env)

			args := append(append([]string{"find"}, tt.args...), "d")
			if err := newFindCommand().Run(env.ctx, args); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			got := strings.Split(strings.TrimSuffix(env.stdout.String(), "\n"), "\n")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindCommand_Run_ExcludeFrom(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	newFindTree(t, env)
	ignore := env.write(t, "ignore.txt", "sub/\n*.csv\n")

	if err := newFindCommand().Run(env.ctx, []string{"find", "--exclude-from", ignore, "d"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got, want := env.stdout.String(), "d\nd/a.txt\nd/link\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestFindCommand_Run_MissingPath(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	env.write(t, "here/x", "")

	if err := newFindCommand().Run(env.ctx, []string{"find", "nope", "here"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got, want := env.stdout.String(), "here\nhere/x\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if got, want := env.stderr.String(), "nope: no such file or directory\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestFindCommand_Run_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid name", []string{"-n", "*"}, `find: Invalid --name "*"`},
		{"invalid type", []string{"-t", "x"}, `find: invalid --type "x"`},
		{"long type", []string{"-t", "fd"}, `find: invalid --type "fd"`},
		{"negative depth", []string{"--maxdepth", "-2"}, "find: invalid --maxdepth -2"},
		{"missing exclude file", []string{"--exclude-from", "none.txt"}, "find: none.txt: no such file or directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, "")
			err := newFindCommand().Run(env.ctx, append([]string{"find"}, tt.args...))
			if err == nil {
				t.Fatal("Run() expected error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

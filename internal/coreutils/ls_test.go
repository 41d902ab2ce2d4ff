// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newLsTree(t *testing.T, env *testEnv) {
	t.Helper()

	env.write(t, "in/bustle.txt", "Now is the time\n")
	env.write(t, "in/empty.txt", "")
	env.write(t, "in/.hidden", "secret")
	env.write(t, "in/dir/spiders.txt", "Don't worry, spiders,\n")

	if err := os.Chmod(filepath.Join(env.dir, "in", "bustle.txt"), 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if err := os.Chmod(filepath.Join(env.dir, "in", "dir"), 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}
}

func TestLsCommand_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"directory", []string{"in"}, []string{"in/bustle.txt", "in/dir", "in/empty.txt"}},
		{"all", []string{"-a", "in"}, []string{"in/.hidden", "in/bustle.txt", "in/dir", "in/empty.txt"}},
		{"hidden file operand", []string{"in/.hidden"}, []string{"in/.hidden"}},
		{"file and dir", []string{"in/bustle.txt", "in/dir"}, []string{"in/bustle.txt", "in/dir/spiders.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, "")
			newLsTree(t, env)

			if err := newLsCommand().Run(env.ctx, append([]string{"ls"}, tt.args...)); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			got := strings.Split(strings.TrimSuffix(env.stdout.String(), "\n"), "\n")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLsCommand_Run_Long(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	newLsTree(t, env)

	if err := newLsCommand().Run(env.ctx, []string{"ls", "--long", "in/bustle.txt", "in"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(env.stdout.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), env.stdout.String())
	}

	expect := []struct {
		name  string
		perms string
		size  string
	}{
		{"in/bustle.txt", "-rw-r--r--", "16"},
		{"in/bustle.txt", "-rw-r--r--", "16"},
		{"in/dir", "drwxr-xr-x", ""},
		{"in/empty.txt", "", "0"},
	}
	for i, line := range lines {
		parts := strings.Fields(line)
		if len(parts) < 9 {
			t.Fatalf("line %d has %d fields: %q", i, len(parts), line)
		}
		if got := parts[len(parts)-1]; got != expect[i].name {
			t.Errorf("line %d name = %q, want %q", i, got, expect[i].name)
		}
		if expect[i].perms != "" && parts[0] != expect[i].perms {
			t.Errorf("line %d perms = %q, want %q", i, parts[0], expect[i].perms)
		}
		if expect[i].size != "" && parts[4] != expect[i].size {
			t.Errorf("line %d size = %q, want %q", i, parts[4], expect[i].size)
		}
	}

	// Columns line up, so every path starts at the same offset.
	offset := strings.LastIndex(lines[0], " ")
	for _, line := range lines[1:] {
		if got := strings.LastIndex(line, " "); got != offset {
			t.Errorf("path column at %d, want %d in %q", got, offset, line)
		}
	}
}

func TestWriteLongListing_Format(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, []byte("12345"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	mtime := time.Date(2024, time.March, 5, 9, 7, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	var out strings.Builder
	writeLongListing(&out, []lsEntry{{name: "f", info: info}})

	line := out.String()
	if !strings.HasPrefix(line, "-rw-------  1 ") {
		t.Errorf("line %q should start with mode and link count", line)
	}
	if !strings.HasSuffix(line, " 5  5 Mar 09:07 f\n") {
		t.Errorf("line %q should end with size, time and name", line)
	}
}

func TestLsCommand_Run_MissingOperand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	newLsTree(t, env)

	if err := newLsCommand().Run(env.ctx, []string{"ls", "nope", "in/empty.txt"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := env.stdout.String(); got != "in/empty.txt\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := env.stderr.String(); got != "nope: no such file or directory\n" {
		t.Errorf("stderr = %q", got)
	}
}

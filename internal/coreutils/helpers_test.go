// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// testEnv bundles a HandlerContext with captured output.
type testEnv struct {
	ctx    context.Context
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns a handler context rooted at a fresh temp dir.
func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()

	env := &testEnv{
		dir:    t.TempDir(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.ctx = WithHandlerContext(t.Context(), &HandlerContext{
		Stdin:     strings.NewReader(stdin),
		Stdout:    env.stdout,
		Stderr:    env.stderr,
		Dir:       env.dir,
		LookupEnv: func(string) (string, bool) { return "", false },
	})
	return env
}

// write creates a file under the env dir and returns its relative name.
func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	return name
}

// numberedLines returns "<prefix>1\n" .. "<prefix>n\n".
func numberedLines(prefix string, n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		sb.WriteString(prefix + strconv.Itoa(i) + "\n")
	}
	return sb.String()
}

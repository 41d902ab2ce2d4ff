// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

// Setenv sets key for the rest of the test and restores the previous state
// on cleanup. Unlike t.Setenv it is usable from tests whose siblings run in
// parallel, so callers must not call t.Parallel themselves.
func Setenv(t testing.TB, key, value string) {
	t.Helper()
	restore := snapshotEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s: %v", key, err)
	}
	t.Cleanup(func() { restore(t) })
}

// Unsetenv removes key for the rest of the test.
func Unsetenv(t testing.TB, key string) {
	t.Helper()
	restore := snapshotEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
	t.Cleanup(func() { restore(t) })
}

// SetHomeDir points USERPROFILE on Windows, HOME elsewhere, at dir.
func SetHomeDir(t testing.TB, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		Setenv(t, "USERPROFILE", dir)
		return
	}
	Setenv(t, "HOME", dir)
}

func snapshotEnv(key string) func(testing.TB) {
	old, had := os.LookupEnv(key)
	return func(t testing.TB) {
		var err error
		if had {
			err = os.Setenv(key, old)
		} else {
			err = os.Unsetenv(key)
		}
		if err != nil {
			t.Errorf("restore env %s: %v", key, err)
		}
	}
}

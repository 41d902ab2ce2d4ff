// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"strings"
	"testing"
)

func TestHeadCommand_Name(t *testing.T) {
	t.Parallel()

	if got := newHeadCommand().Name(); got != "head" {
		t.Errorf("Name() = %q, want %q", got, "head")
	}
}

func TestHeadCommand_Run(t *testing.T) {
	t.Parallel()

	fifteen := numberedLines("line ", 15)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default first ten", nil, numberedLines("line ", 10)},
		{"three lines", []string{"-n", "3"}, "line 1\nline 2\nline 3\n"},
		{"long flag", []string{"--lines=1"}, "line 1\n"},
		{"more than available", []string{"-n", "99"}, fifteen},
		{"bytes", []string{"-c", "9"}, "line 1\nli"},
		{"bytes past end", []string{"--bytes", "1000"}, fifteen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, "")
			file := env.write(t, "fifteen.txt", fifteen)

			args := append(append([]string{"head"}, tt.args...), file)
			if err := newHeadCommand().Run(env.ctx, args); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if got := env.stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeadCommand_Run_LongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 10000) + "\n"
	env := newTestEnv(t, long+"second\nthird\n")

	if err := newHeadCommand().Run(env.ctx, []string{"head", "-n", "2"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got, want := env.stdout.String(), long+"second\n"; got != want {
		t.Errorf("stdout length = %d, want %d", len(got), len(want))
	}
}

func TestHeadCommand_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	a := env.write(t, "a.txt", "a1\na2\n")
	b := env.write(t, "b.txt", "b1\n")

	if err := newHeadCommand().Run(env.ctx, []string{"head", "-n", "1", a, "gone.txt", b}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	want := "==> a.txt <==\na1\n\n==> b.txt <==\nb1\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if got, want := env.stderr.String(), "gone.txt: no such file or directory\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestHeadCommand_Run_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"zero lines", []string{"-n", "0"}, "head: illegal line count -- 0"},
		{"negative lines", []string{"-n", "-1"}, "head: illegal line count -- -1"},
		{"word lines", []string{"-n", "foo"}, "head: illegal line count -- foo"},
		{"bad bytes", []string{"-c", "1.5"}, "head: illegal byte count -- 1.5"},
		{"both modes", []string{"-n", "1", "-c", "1"}, "head: --lines and --bytes cannot be used together"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, "")
			err := newHeadCommand().Run(env.ctx, append([]string{"head"}, tt.args...))
			if err == nil {
				t.Fatal("Run() expected error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestHeadCommand_Run_CountErrorType(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	err := newHeadCommand().Run(env.ctx, []string{"head", "-n", "x"})

	var countErr *CountError
	if !errors.As(err, &countErr) {
		t.Fatalf("error %v should be a *CountError", err)
	}
	if countErr.Unit != "line" || countErr.Value != "x" {
		t.Errorf("CountError = %+v", countErr)
	}
}

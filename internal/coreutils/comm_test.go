// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"testing"
)

func TestCommCommand_Run(t *testing.T) {
	t.Parallel()

	const (
		file1 = "a\nb\nc\nd\n"
		file2 = "B\nc\nd\ne\n"
	)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"all columns", nil, "\tB\na\nb\n\t\tc\n\t\td\n\te\n"},
		{"suppress first", []string{"-1"}, "B\n\tc\n\td\ne\n"},
		{"suppress second", []string{"-2"}, "a\nb\n\tc\n\td\n"},
		{"only common", []string{"-12"}, "c\nd\n"},
		{"no common", []string{"-3"}, "\tB\na\nb\n\te\n"},
		{"insensitive", []string{"-i"}, "a\n\t\tb\n\t\tc\n\t\td\n\te\n"},
		{"delimiter", []string{"-d", "|"}, "|B\na\nb\n||c\n||d\n|e\n"},
		{"nothing", []string{"-123"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, "")
			f1 := env.write(t, "file1.txt", file1)
			f2 := env.write(t, "file2.txt", file2)

			args := append(append([]string{"comm"}, tt.args...), f1, f2)
			if err := newCommCommand().Run(env.ctx, args); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if got := env.stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommCommand_Run_StdinOperand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "x\ny\n")
	f2 := env.write(t, "f2.txt", "y\nz")

	if err := newCommCommand().Run(env.ctx, []string{"comm", "-", f2}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got, want := env.stdout.String(), "x\n\t\ty\n\tz\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCommCommand_Run_Errors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	f1 := env.write(t, "f1.txt", "a\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"both stdin", []string{"-", "-"}, `comm: Both input files cannot be STDIN ("-")`},
		{"missing operand", []string{f1}, "comm: expected FILE1 and FILE2, got 1 operand(s)"},
		{"missing file", []string{f1, "nope"}, "comm: nope: no such file or directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newCommCommand().Run(env.ctx, append([]string{"comm"}, tt.args...))
			if err == nil {
				t.Fatal("Run() expected error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCommCommand_Run_OpenErrorType(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	err := newCommCommand().Run(env.ctx, []string{"comm", "x", "y"})

	var openErr *OpenError
	if !errors.As(err, &openErr) || openErr.Path != "x" {
		t.Errorf("error %v should be an *OpenError for x", err)
	}
}

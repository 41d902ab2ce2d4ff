// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load config"},
			expected: "failed to load config",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "run script",
				Resource:  "build.sh",
			},
			expected: "failed to run script: build.sh",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.New("syntax error at line 5"),
			},
			expected: "failed to parse config: syntax error at line 5",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "run script",
				Resource:  "build.sh",
				Cause:     fs.ErrNotExist,
			},
			expected: "failed to run script: build.sh: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	wrapped := &ActionableError{Operation: "run script", Cause: fs.ErrPermission}

	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Error("errors.Is should find the wrapped cause")
	}

	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "load config",
				Resource:    "config.cue",
				Suggestions: []string{"Run 'textutils config init'", "Check file permissions"},
			},
			contains: []string{
				"failed to load config: config.cue",
				"• Run 'textutils config init'",
				"• Check file permissions",
			},
		},
		{
			name: "no error chain in non-verbose",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.New("syntax error"),
			},
			contains: []string{"failed to parse config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain verbose",
			err: &ActionableError{
				Operation: "run script",
				Cause: &ActionableError{
					Operation: "open script",
					Cause:     errors.New("file not found"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to open script: file not found",
				"2. file not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)

			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("cue: bad value")

	err := NewErrorContext().
		WithOperation("load config").
		WithResource("config.cue").
		WithSuggestion("Check the syntax").
		WithSuggestions("Run 'textutils config init --force'").
		WithIssue(ConfigLoadFailedId).
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Operation != "load config" || err.Resource != "config.cue" {
		t.Errorf("unexpected context: %+v", err)
	}
	if len(err.Suggestions) != 2 || !err.HasSuggestions() {
		t.Errorf("Suggestions = %v, want 2 entries", err.Suggestions)
	}
	if err.Issue != ConfigLoadFailedId {
		t.Errorf("Issue = %d, want %d", err.Issue, ConfigLoadFailedId)
	}
	if !errors.Is(err, cause) {
		t.Error("Build() should keep the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() = %v, want nil", got)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want untyped nil", err)
	}
	if err := NewErrorContext().WithOperation("run").BuildError(); err == nil {
		t.Error("BuildError() returned nil with an operation set")
	}
}

func TestWrapWithContext(t *testing.T) {
	if WrapWithContext(nil, "run script", "a.sh") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	err := WrapWithContext(fs.ErrNotExist, "run script", "a.sh")
	if got, want := err.Error(), "failed to run script: a.sh: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

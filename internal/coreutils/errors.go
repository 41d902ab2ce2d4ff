// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

var (
	// ErrCommandNotFound is returned when running an unregistered command.
	ErrCommandNotFound = errors.New("command not found")
	// ErrUsage marks invalid flag combinations and operands.
	ErrUsage = errors.New("usage error")
)

type (
	// OpenError reports an operand that could not be opened. Utilities print
	// it as a diagnostic and continue with the next operand.
	OpenError struct {
		Path string
		Err  error
	}

	// CountError reports a malformed line or byte count.
	CountError struct {
		// Unit is "line" or "byte".
		Unit  string
		Value string
	}

	// usageErr is an invalid flag combination or operand list. It matches
	// ErrUsage with errors.Is.
	usageErr struct {
		msg string
	}

	// PatternError reports a pattern that failed to compile.
	PatternError struct {
		// Flag is the option that carried the pattern ("" for grep's operand).
		Flag    string
		Pattern string
		Err     error
	}
)

// Error returns "<path>: <reason>" without the operation prefix added by the
// os package.
func (e *OpenError) Error() string {
	return e.Path + ": " + reason(e.Err)
}

// Unwrap returns the underlying error.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// Error implements the error interface.
func (e *CountError) Error() string {
	return fmt.Sprintf("illegal %s count -- %s", e.Unit, e.Value)
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	if e.Flag != "" {
		return fmt.Sprintf("Invalid --%s %q", e.Flag, e.Pattern)
	}
	return fmt.Sprintf("Invalid pattern %q", e.Pattern)
}

// Unwrap returns the compile error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// reason strips the "open <path>: " decoration from path errors.
func reason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

// wrapError prefixes an error with the command name. Returns nil if err is
// nil.
func wrapError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", cmdName, err)
}

// Error implements the error interface.
func (e *usageErr) Error() string {
	return e.msg
}

// Is reports whether target is ErrUsage.
func (e *usageErr) Is(target error) bool {
	return target == ErrUsage
}

// usageError builds an error matching ErrUsage.
func usageError(format string, args ...any) error {
	return &usageErr{msg: fmt.Sprintf(format, args...)}
}

// reportOpenError writes an OpenError diagnostic and reports whether err was
// one. Any other error is left for the caller to propagate.
func reportOpenError(stderr io.Writer, err error) bool {
	var openErr *OpenError
	if !errors.As(err, &openErr) {
		return false
	}
	fmt.Fprintln(stderr, openErr.Error())
	return true
}

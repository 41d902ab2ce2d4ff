// SPDX-License-Identifier: MPL-2.0

// Package shell runs POSIX shell scripts with the mvdan.cc/sh interpreter.
//
// When builtins are enabled, commands whose names are registered in a
// coreutils.Registry run in-process; every other command falls through to
// the host's executables. A builtin that fails reports its error on stderr
// and sets the exit status, it is never retried with the host binary.
package shell

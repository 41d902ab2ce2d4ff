// SPDX-License-Identifier: MPL-2.0

// Package coreutils provides the text utilities bundled in textutils.
//
// Every utility implements Command and registers itself in DefaultRegistry
// from an init function. The same registry backs the textutils subcommands
// and the exec handler of the embedded shell, so a utility behaves the same
// whether it is run as "textutils tail -n 3 log.txt" or inside
// "textutils sh -c 'cat log.txt | tail -n 3'".
//
// # Utilities
//
//   - cal: Display a calendar
//   - cat: Concatenate files, optionally numbering lines
//   - comm: Compare two sorted files line by line
//   - cut: Select bytes, characters or fields from each line
//   - find: Walk directory trees filtering by name and type
//   - fortune: Print a random adage
//   - grep: Search files for lines matching a pattern
//   - head: Output the first part of files
//   - ls: List directory contents
//   - tail: Output the last part of files
//   - uniq: Report or omit repeated adjacent lines
//   - wc: Count lines, words, bytes and characters
//
// # Error Format
//
// Fatal errors are prefixed with the utility name:
//
//	tail: illegal line count -- foo
//	cut: Delimiter is larger than 1 byte
//
// Files that cannot be opened are reported on stderr as "<file>: <reason>"
// and the utility moves on to the next operand.
//
// # Streaming I/O
//
// Line and byte copies stream through bufio and io.Copy so memory use does
// not depend on input size. The exceptions are comm and fortune, which need
// whole records, and tail reading standard input, which spools it to a
// temporary file to make it seekable.
package coreutils

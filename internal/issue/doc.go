// SPDX-License-Identifier: MPL-2.0

// Package issue holds the catalog of user-facing problems (missing files,
// bad counts, invalid patterns, config and script failures) as Markdown
// rendered with glamour, plus ActionableError for wrapping errors with
// operation context and suggestions.
package issue

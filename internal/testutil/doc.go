// SPDX-License-Identifier: MPL-2.0

// Package testutil holds test helpers: a fake clock, environment overrides
// restored on cleanup, and file helpers that fail the test on error.
package testutil

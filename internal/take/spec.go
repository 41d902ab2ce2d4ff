// SPDX-License-Identifier: MPL-2.0

package take

import (
	"fmt"
	"strconv"
	"strings"
)

// fromStartToken is the literal that selects the whole stream.
const fromStartToken = "+0"

type (
	// Spec describes which units (lines or bytes) of a stream to take.
	// The zero value is Count(0), which takes nothing.
	Spec struct {
		fromStart bool
		n         int64
	}

	// ParseError reports a malformed take spec. Its message is exactly the
	// offending token so callers can format "illegal line count -- <token>".
	ParseError struct {
		Token string
	}
)

// FromStart returns the spec that takes every unit starting at the first one.
func FromStart() Spec {
	return Spec{fromStart: true}
}

// Count returns a numeric spec. Positive values are 1-based absolute start
// positions, negative values count back from the end and zero takes nothing.
func Count(n int64) Spec {
	return Spec{n: n}
}

// IsFromStart reports whether s is the "+0" spec.
func (s Spec) IsFromStart() bool {
	return s.fromStart
}

// N returns the signed count of a Count spec. It is 0 for FromStart.
func (s Spec) N() int64 {
	return s.n
}

// String renders s in the form Parse accepts.
func (s Spec) String() string {
	switch {
	case s.fromStart:
		return fromStartToken
	case s.n > 0:
		return "+" + strconv.FormatInt(s.n, 10)
	default:
		return strconv.FormatInt(s.n, 10)
	}
}

// GoString is used by %#v and test failure output.
func (s Spec) GoString() string {
	if s.fromStart {
		return "take.FromStart()"
	}
	return fmt.Sprintf("take.Count(%d)", s.n)
}

// Error returns the malformed token.
func (e *ParseError) Error() string {
	return e.Token
}

// Parse converts a command-line token into a Spec.
//
// "+0" is FromStart. A token with an explicit "+" keeps its value as is.
// Any other integer is a "last n units" request: positive values are negated
// and zero or negative values are kept. math.MinInt64 is left unnegated.
func Parse(token string) (Spec, error) {
	if token == fromStartToken {
		return FromStart(), nil
	}

	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return Spec{}, &ParseError{Token: token}
	}

	if strings.HasPrefix(token, "+") || v <= 0 {
		return Count(v), nil
	}
	return Count(-v), nil
}

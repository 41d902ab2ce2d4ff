// SPDX-License-Identifier: MPL-2.0

package take

import "fmt"

// Offset is the zero-based index from which a stream is emitted. The zero
// value is None.
type Offset struct {
	start uint64
	valid bool
}

// None is the offset of a request that selects nothing.
var None = Offset{}

// At returns a valid offset starting at index start.
func At(start uint64) Offset {
	return Offset{start: start, valid: true}
}

// Start returns the start index and whether anything should be emitted.
func (o Offset) Start() (uint64, bool) {
	return o.start, o.valid
}

// String implements fmt.Stringer.
func (o Offset) String() string {
	if !o.valid {
		return "none"
	}
	return fmt.Sprintf("%d", o.start)
}

// Resolve maps spec onto a stream holding total units.
//
// An empty stream always resolves to None. Requests beyond the end of the
// stream resolve to None, and "last n" requests larger than the stream are
// clamped to the first unit.
func Resolve(spec Spec, total int64) Offset {
	if total <= 0 {
		return None
	}
	if spec.fromStart {
		return At(0)
	}

	v := spec.n
	if v < 0 {
		// total > 0 and v < 0, so the sum cannot overflow even for MinInt64.
		start := total + v
		if start < 0 {
			start = 0
		}
		return At(uint64(start))
	}

	if v == 0 || v-1 >= total {
		return None
	}
	return At(uint64(v - 1))
}

// SPDX-License-Identifier: MPL-2.0

// Package take implements the offset/windowing engine behind tail.
//
// A take spec ("10", "-10", "+5", "+0") is parsed into a Spec, resolved
// against the total number of lines or bytes of a stream into an Offset, and
// handed to EmitLines or EmitBytes which copy everything from that offset to
// the end of the stream.
//
//	spec, err := take.Parse("+3")
//	off := take.Resolve(spec, totalLines)
//	err = take.EmitLines(os.Stdout, f, off)
package take

// SPDX-License-Identifier: MPL-2.0

package take

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// CountLines returns the number of lines in r. A final line without a
// trailing newline still counts.
func CountLines(r io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var (
		lines int64
		last  byte
		seen  bool
	)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			lines += int64(bytes.Count(buf[:n], []byte{'\n'}))
			last = buf[n-1]
			seen = true
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return lines, fmt.Errorf("counting lines: %w", err)
		}
	}

	if seen && last != '\n' {
		lines++
	}
	return lines, nil
}

// File is the part of *os.File the totals pass needs.
type File interface {
	io.ReadSeeker
	Stat() (fs.FileInfo, error)
}

// Totals returns the line and byte totals of f and rewinds it. Bytes come
// from the file metadata and lines from a full read pass.
func Totals(f File) (lines, size int64, err error) {
	info, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}

	lines, err = CountLines(f)
	if err != nil {
		return 0, 0, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, 0, fmt.Errorf("rewinding: %w", err)
	}
	return lines, info.Size(), nil
}

// SPDX-License-Identifier: MPL-2.0

package take

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// EmitLines skips the first start lines of r and copies the rest to w
// verbatim, terminators included. A None offset writes nothing.
func EmitLines(w io.Writer, r io.Reader, off Offset) error {
	start, ok := off.Start()
	if !ok {
		return nil
	}

	br := bufio.NewReader(r)
	if err := skipLines(br, start); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("skipping lines: %w", err)
	}

	if _, err := io.Copy(w, br); err != nil {
		return fmt.Errorf("copying lines: %w", err)
	}
	return nil
}

// skipLines discards n newline-terminated lines. Lines longer than the
// reader's buffer are consumed in chunks.
func skipLines(br *bufio.Reader, n uint64) error {
	for ; n > 0; n-- {
		for {
			_, err := br.ReadSlice('\n')
			if err == nil {
				break
			}
			if errors.Is(err, bufio.ErrBufferFull) {
				continue
			}
			return err
		}
	}
	return nil
}

// EmitBytes seeks r to the offset and copies the remaining raw bytes to w.
// A None offset writes nothing. Seeking past the end yields no output.
func EmitBytes(w io.Writer, r io.ReadSeeker, off Offset) error {
	start, ok := off.Start()
	if !ok {
		return nil
	}

	if _, err := r.Seek(int64(start), io.SeekStart); err != nil {
		return fmt.Errorf("seeking to byte %d: %w", start, err)
	}

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying bytes: %w", err)
	}
	return nil
}

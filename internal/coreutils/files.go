// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// stdinOperand names standard input on the command line.
const stdinOperand = "-"

type (
	// FileProcessor processes a single opened operand.
	// Parameters:
	//   - r: the input stream to process
	//   - name: the operand as given on the command line ("-" for stdin)
	FileProcessor func(r io.Reader, name string) error

	// headerWriter prints "==> name <==" banners, separating every banner
	// after the first with a blank line.
	headerWriter struct {
		out     io.Writer
		enabled bool
		printed bool
	}
)

// open opens an operand relative to the working directory. "-" is stdin,
// which is never closed. Failures are returned as *OpenError.
func (hc *HandlerContext) open(name string) (io.ReadCloser, error) {
	if name == stdinOperand {
		return io.NopCloser(hc.Stdin), nil
	}

	f, err := os.Open(hc.resolve(name))
	if err != nil {
		return nil, &OpenError{Path: name, Err: err}
	}
	return f, nil
}

// ProcessOperands opens each operand in turn and invokes the processor.
// Operands that cannot be opened are reported on stderr as "<name>: <reason>"
// and skipped. Any processor error aborts the loop and is returned; a close
// failure is returned when the processor succeeded.
func ProcessOperands(hc *HandlerContext, names []string, processor FileProcessor) error {
	for _, name := range names {
		if err := processOperand(hc, name, processor); err != nil {
			if reportOpenError(hc.Stderr, err) {
				continue
			}
			return err
		}
	}
	return nil
}

// processOperand opens one operand and runs the processor on it, aggregating
// the close error via the named return.
func processOperand(hc *HandlerContext, name string, processor FileProcessor) (err error) {
	rc, err := hc.open(name)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s: %w", name, closeErr)
		}
	}()

	return processor(rc, name)
}

// operandsOrStdin returns args, or a lone "-" when args is empty.
func operandsOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{stdinOperand}
	}
	return args
}

// displayPath rebuilds a walked path relative to the operand as typed.
func displayPath(operand, root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return operand
	}
	return joinOperand(operand, rel)
}

// joinOperand appends rel to the operand without cleaning it, so "." stays
// "./name".
func joinOperand(operand, rel string) string {
	sep := string(filepath.Separator)
	return strings.TrimSuffix(operand, sep) + sep + rel
}

// newHeaderWriter returns a headerWriter that prints only when enabled.
func newHeaderWriter(out io.Writer, enabled bool) *headerWriter {
	return &headerWriter{out: out, enabled: enabled}
}

// write prints the banner for name.
func (h *headerWriter) write(name string) {
	if !h.enabled {
		return
	}
	if h.printed {
		fmt.Fprintln(h.out)
	}
	fmt.Fprintf(h.out, "==> %s <==\n", name)
	h.printed = true
}

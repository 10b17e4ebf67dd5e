package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans a single log stream out to several sinks (stdout, rotated file).
// A write succeeds as long as at least one sink accepted the full payload.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w == nil {
			continue
		}
		cw.Writers = append(cw.Writers, w)
	}
	return cw
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	accepted := false
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		if written == len(p) {
			accepted = true
		}
	}

	if !accepted {
		return 0, err
	}
	return len(p), err
}

// Errors unwraps the per-sink failures of a Write call.
func (cw *CombinedWriter) Errors(err error) []error {
	return multierr.Errors(err)
}

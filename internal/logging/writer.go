package logging

import (
	"io"

	"go.uber.org/multierr"
)

// teeWriter writes every entry to all writers. A failing writer does not
// stop the others; its error is combined into the result.
type teeWriter struct {
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) io.Writer {
	return &teeWriter{writers: writers}
}

func (t *teeWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range t.writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
		}
	}
	// logrus only checks the error, report the full length as written.
	return len(p), err
}

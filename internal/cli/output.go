package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	pkgio "github.com/loic-sharma/NuGet.Dependents/pkg/io"
)

// resultSink receives scan results as they complete. Text and JSON Lines are
// streamed to w or to the file at path. JSON bound for a file is collected
// and exported when the sink closes.
type resultSink struct {
	w       io.Writer
	file    *os.File
	format  string
	path    string
	pending []*deps.ScanResult
	written int
	closed  bool
}

func newResultSink(w io.Writer, format, path string) (*resultSink, error) {
	s := &resultSink{w: w, format: format, path: path}
	if path == "" || s.exports() {
		return s, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "create %s", path)
	}
	s.w, s.file = f, f
	return s, nil
}

func (s *resultSink) exports() bool {
	return s.path != "" && s.format == formatJSON
}

// Write emits r, or holds it until Close when exporting.
func (s *resultSink) Write(r *deps.ScanResult) error {
	if s.exports() {
		s.pending = append(s.pending, r)
		return nil
	}
	if err := writeResult(s.w, r, s.format, s.written > 0); err != nil {
		return err
	}
	s.written++
	return nil
}

// Close exports pending results and closes the output file. Later calls do
// nothing.
func (s *resultSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.exports() {
		if err := pkgio.ExportJSON(s.pending, s.path); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeIO, err, "export results")
		}
		return nil
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

func writeResult(w io.Writer, r *deps.ScanResult, format string, separate bool) error {
	switch format {
	case formatJSON:
		return pkgio.WriteJSON(r, w)
	case formatLines:
		return pkgio.WriteJSONLines(r, w)
	default:
		if separate {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := pkgio.WriteText(r, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Finished in %s\n", r.Duration.Round(time.Millisecond))
		return err
	}
}

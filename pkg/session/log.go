// Package session writes and reads the CSV logs of recognition sessions.
package session

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/trainer"
)

const (
	// TimestampLayout formats the Timestamp column.
	TimestampLayout = "2006-01-02 15:04:05"

	fileStampLayout = "20060102_150405"
)

// Column headers. The piece column is named "Piece" in mixed sessions and
// "Corner" in the corner-only layout.
var (
	Header       = []string{"Timestamp", "Piece", "Reference", "User Input", "Response Time (s)"}
	CornerHeader = []string{"Timestamp", "Corner", "Reference", "User Input", "Response Time (s)"}
)

// FileName returns the log file name for a session of piece type p started at t.
func FileName(p cube.PieceType, t time.Time) string {
	return fmt.Sprintf("%s_rec_session_%s.csv", p, t.Format(fileStampLayout))
}

// Writer appends result rows to a CSV log. Rows end in CRLF like the logs of
// earlier trainer versions, and are flushed one at a time so an interrupted
// session keeps everything answered so far.
type Writer struct {
	mu     sync.Mutex
	csv    *csv.Writer
	closer io.Closer
	path   string
}

// NewWriter writes header to w and returns a writer for result rows.
func NewWriter(w io.Writer, header []string) (*Writer, error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write log header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to write log header: %w", err)
	}
	return &Writer{csv: cw}, nil
}

// Create makes dir if needed and opens a new log file for a session of
// piece type p started at now.
func Create(dir string, p cube.PieceType, now time.Time) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(p, now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create session log: %w", err)
	}
	w, err := NewWriter(f, Header)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	w.path = path
	return w, nil
}

// Path returns the file path for writers made by Create.
func (w *Writer) Path() string {
	return w.path
}

// Record implements trainer.Recorder.
func (w *Writer) Record(r trainer.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	row := []string{
		r.Time.Format(TimestampLayout),
		r.Tuple.Repr(),
		r.Reference.String(),
		r.Input,
		strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 3, 64),
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write log row: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes and closes the underlying file, if any.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	err := w.csv.Error()
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

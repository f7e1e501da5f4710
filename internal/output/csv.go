/*
PURPOSE:
  Writes captures to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Output to CSV.

  Implementation-discovered:
  - Captured text often carries newlines; encoding/csv quotes them.
  - A crash mid-run must not lose earlier captures.

ARCHITECTURE INTEGRATION:
  - Called by: internal/output.Open (via internal/host)
  - Consumes: internal/model.Capture

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Use Mutex: the logger may be called from several goroutines.

USAGE:
  w, err := output.NewCSVWriter("captures.csv")
  w.Write(capture)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when Capture struct changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/daryltucker/printf-redirect/internal/model"
)

var csvHeader = []string{"seq", "timestamp", "message"}

// CSVWriter handles writing captures to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Path returns the file being written.
func (cw *CSVWriter) Path() string {
	return cw.file.Name()
}

// Write writes a single capture to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(c model.Capture) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		strconv.FormatUint(c.Seq, 10),
		c.Time.Format(time.RFC3339Nano),
		c.Message,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.writer.Flush()
	return cw.file.Close()
}

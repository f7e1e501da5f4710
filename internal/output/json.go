/*
PURPOSE:
  Writes captures to a JSON Lines file (NDJSON).
  Optimized for machine parsing; optionally gzip-compressed.

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON Lines is better for streaming/logging than a single large array (append-friendly).
  - Long capture sessions compress well; `.gz` paths are written through pgzip.

ARCHITECTURE INTEGRATION:
  - Called by: internal/output.Open (via internal/host)
  - Consumes: internal/model.Capture

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use json-iterator in standard-library compatible mode.
  - Thread-safe.
  - Close the gzip stream before the file.

USAGE:
  w, err := output.NewJSONWriter("captures.jsonl")
  w.Write(capture)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If a .gz file is truncated, check Close ordering.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if we switch to plain JSON array (not recommended for streaming).
*/

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/pgzip"

	"github.com/daryltucker/printf-redirect/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONWriter handles writing captures to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	gz      *pgzip.Writer
	encoder *jsoniter.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter. Paths ending in .gz are compressed.
func NewJSONWriter(path string) (*JSONWriter, error) {
	return newJSONWriter(path, strings.HasSuffix(path, ".gz"))
}

func newJSONWriter(path string, compress bool) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	jw := &JSONWriter{file: f}
	var w io.Writer = f
	if compress {
		jw.gz = pgzip.NewWriter(f)
		w = jw.gz
	}
	jw.encoder = json.NewEncoder(w)
	return jw, nil
}

// Path returns the file being written.
func (jw *JSONWriter) Path() string {
	return jw.file.Name()
}

// Write writes a single capture as a JSON line.
func (jw *JSONWriter) Write(c model.Capture) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(c)
}

// Close flushes the compressor, if any, and closes the underlying file.
func (jw *JSONWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if jw.gz != nil {
		if err := jw.gz.Close(); err != nil {
			jw.file.Close()
			return err
		}
	}
	return jw.file.Close()
}

// ReadJSONLines decodes every capture in an NDJSON file written by JSONWriter.
func ReadJSONLines(path string) ([]model.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.TrimRight(path, ".0123456789"), ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	var out []model.Capture
	dec := json.NewDecoder(r)
	for dec.More() {
		var c model.Capture
		if err := dec.Decode(&c); err != nil {
			return out, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		out = append(out, c)
	}
	return out, nil
}

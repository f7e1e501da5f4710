/*
PURPOSE:
  Capture sinks a host can register as the redirector's logger.
  One sink per host: stdout passthrough, slog, NDJSON, CSV or bolt.

REQUIREMENTS:
  User-specified:
  - Forward captured text to the host's own logging mechanism.

  Implementation-discovered:
  - File sinks must not overwrite earlier runs (versioned paths).
  - Bolt stores are appended to so `dump` sees every run.

ARCHITECTURE INTEGRATION:
  - Called by: internal/host
  - Consumes: internal/model.Capture

ERROR HANDLING:
  - Open returns ErrUnknownSink for unrecognised kinds.
  - File creation errors are wrapped with the path.

IMPLEMENTATION RULES:
  - Every Sink must be safe for concurrent Write.
  - "stdout" yields a nil Sink: the host leaves the logger unset.

USAGE:
  s, err := output.Open(output.SinkJSONL, "captures.jsonl", nil)
  s.Write(capture)
  s.Close()

SELF-HEALING INSTRUCTIONS:
  - When adding a sink kind, add it to Kinds, DefaultFile and Open.

RELATED FILES:
  - internal/output/json.go
  - internal/output/csv.go
  - internal/output/bolt.go
  - internal/output/slog_sink.go

MAINTENANCE:
  - Update when adding sink kinds.
*/

package output

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/daryltucker/printf-redirect/internal/model"
)

// Sink kinds.
const (
	SinkStdout = "stdout"
	SinkSlog   = "slog"
	SinkJSONL  = "jsonl"
	SinkCSV    = "csv"
	SinkBolt   = "bolt"
)

// ErrUnknownSink indicates an unrecognised sink kind.
var ErrUnknownSink = errors.New("unknown sink")

// Sink stores captured messages.
type Sink interface {
	Write(c model.Capture) error
	Close() error
}

// Kinds lists every supported sink kind.
func Kinds() []string {
	return []string{SinkStdout, SinkSlog, SinkJSONL, SinkCSV, SinkBolt}
}

// ValidKind reports whether kind names a supported sink.
func ValidKind(kind string) bool {
	for _, k := range Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// DefaultFile is the file name used for kind when none is configured.
func DefaultFile(kind string) string {
	switch kind {
	case SinkJSONL:
		return "captures.jsonl"
	case SinkCSV:
		return "captures.csv"
	case SinkBolt:
		return "captures.db"
	}
	return ""
}

// Open creates the sink for kind. path is ignored by the stdout and slog
// sinks; l is only used by slog and falls back to Logger when nil.
func Open(kind, path string, l *slog.Logger) (Sink, error) {
	switch kind {
	case SinkStdout:
		return nil, nil
	case SinkSlog:
		if l == nil {
			l = Logger
		}
		return NewSlogSink(l), nil
	case SinkJSONL:
		w, err := newJSONWriter(NextPath(path), strings.HasSuffix(path, ".gz"))
		if err != nil {
			return nil, err
		}
		return w, nil
	case SinkCSV:
		w, err := NewCSVWriter(NextPath(path))
		if err != nil {
			return nil, err
		}
		return w, nil
	case SinkBolt:
		bs, err := OpenBoltStore(path)
		if err != nil {
			return nil, err
		}
		return bs, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSink, kind)
}

// NextPath returns path if nothing exists there, otherwise the first free
// path.N starting at 1.
func NextPath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%d", path, i)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

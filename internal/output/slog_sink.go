/*
PURPOSE:
  Forwards captured printf output to the structured logger.
  This is the "host's own logging mechanism" sink.

REQUIREMENTS:
  User-specified:
  - Captured text ends up in the host's log instead of stdout.

  Implementation-discovered:
  - printf callers end lines with "\n"; the handler adds its own, so trim.
  - Captures are logged at Info. A logger filtering Info out would silently
    swallow them, so Write reports ErrCaptureFiltered instead.

ARCHITECTURE INTEGRATION:
  - Called by: internal/output.Open (via internal/host)
  - Consumes: internal/model.Capture

ERROR HANDLING:
  - Write returns ErrCaptureFiltered when the logger drops Info records.

IMPLEMENTATION RULES:
  - Never close the logger; it is owned by the caller.

USAGE:
  s := output.NewSlogSink(output.Logger)

SELF-HEALING INSTRUCTIONS:
  - If captures vanish with --sink slog, check --log-level.

RELATED FILES:
  - internal/output/logger.go
  - internal/host/host.go

MAINTENANCE:
  - None.
*/

package output

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/daryltucker/printf-redirect/internal/model"
)

// CaptureLevel is the level SlogSink logs captures at.
const CaptureLevel = slog.LevelInfo

// ErrCaptureFiltered indicates the logger's level filter dropped a capture.
var ErrCaptureFiltered = errors.New("capture filtered by log level")

// SlogSink forwards captures to a structured logger.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink returns a sink logging through l.
func NewSlogSink(l *slog.Logger) *SlogSink {
	return &SlogSink{logger: l}
}

// Enabled reports whether the logger keeps records at CaptureLevel.
func (s *SlogSink) Enabled() bool {
	return s.logger.Enabled(context.Background(), CaptureLevel)
}

func (s *SlogSink) Write(c model.Capture) error {
	if !s.Enabled() {
		return ErrCaptureFiltered
	}
	s.logger.LogAttrs(context.Background(), CaptureLevel, strings.TrimSpace(c.Message),
		slog.Uint64("seq", c.Seq),
	)
	return nil
}

// Close is a no-op; the logger is owned by the caller.
func (s *SlogSink) Close() error { return nil }

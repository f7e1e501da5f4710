/*
PURPOSE:
  The embedding host. Opens the configured sink, registers it as the
  redirector's logger and runs printf calls through it.

REQUIREMENTS:
  User-specified:
  - Capture text a library prints and forward it to the host's logging.

  Implementation-discovered:
  - Sink write failures must not surface inside Printf (it has no error path).
  - Close must route output back to stdout before the sink goes away.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/redirect, internal/output, internal/config

ERROR HANDLING:
  - New returns wrapped errors for output dir and sink failures.
  - Sink write errors are logged via output.Logger and counted.
  - Captures the slog level filter drops are counted and reported once at New.

IMPLEMENTATION RULES:
  - One sink per host. No fan-out.
  - Seq starts at 1 and is assigned inside the logger callback.

USAGE:
  h, err := host.New(cfg, redirect.Default())
  defer h.Close()
  h.Run(cfg.Calls)

SELF-HEALING INSTRUCTIONS:
  - If captures go missing, check that Close is deferred after New succeeds.

RELATED FILES:
  - internal/redirect/redirect.go
  - internal/output/sink.go

MAINTENANCE:
  - Update when the logger callback needs more capture metadata.
*/

package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/daryltucker/printf-redirect/internal/config"
	"github.com/daryltucker/printf-redirect/internal/model"
	"github.com/daryltucker/printf-redirect/internal/output"
	"github.com/daryltucker/printf-redirect/internal/redirect"
)

// Host owns one Redirector and at most one Sink.
type Host struct {
	r    *redirect.Redirector
	sink output.Sink
	path string

	seq      atomic.Uint64
	failures atomic.Uint64
	dropped  atomic.Uint64

	closeOnce sync.Once
	closeErr  error

	now func() time.Time
}

// New opens the sink selected by cfg and installs it on r.
// A nil r means redirect.Default().
func New(cfg *config.Config, r *redirect.Redirector) (*Host, error) {
	if r == nil {
		r = redirect.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Host{r: r, now: time.Now}
	if cfg.Sink == output.SinkStdout {
		return h, nil
	}

	if cfg.Sink != output.SinkSlog {
		h.path = cfg.OutputPath()
		if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", filepath.Dir(h.path), err)
		}
	}

	sink, err := output.Open(cfg.Sink, h.path, output.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s sink: %w", cfg.Sink, err)
	}
	h.sink = sink
	if p, ok := sink.(interface{ Path() string }); ok {
		h.path = p.Path()
	}

	if s, ok := sink.(*output.SlogSink); ok && !s.Enabled() {
		// Error so it survives the same filter that drops the captures.
		output.Logger.Error("Log level filters out captures; redirected output will be dropped",
			"capture_level", output.CaptureLevel, "sink", cfg.Sink)
	}

	r.SetLogger(h.capture)
	output.Logger.Debug("Redirecting output", "sink", cfg.Sink, "path", h.path)
	return h, nil
}

func (h *Host) capture(msg string) {
	c := model.Capture{
		Seq:     h.seq.Add(1),
		Time:    h.now(),
		Message: msg,
	}
	err := h.sink.Write(c)
	switch {
	case err == nil:
	case errors.Is(err, output.ErrCaptureFiltered):
		h.dropped.Add(1)
	default:
		h.failures.Add(1)
		output.Logger.Error("Failed to write capture", "seq", c.Seq, "error", err)
	}
}

// Printf forwards to the host's Redirector.
func (h *Host) Printf(format string, args ...any) {
	h.r.Printf(format, args...)
}

// Run executes calls in order.
func (h *Host) Run(calls []config.Call) {
	for i, call := range calls {
		output.Logger.Debug("Running call", "index", i, "format", call.Format, "args", len(call.Args))
		h.Printf(call.Format, call.Args...)
	}
}

// Captured is the number of messages the logger has received.
func (h *Host) Captured() uint64 { return h.seq.Load() }

// Failed is the number of captures the sink rejected.
func (h *Host) Failed() uint64 { return h.failures.Load() }

// Dropped is the number of captures the slog sink's level filter discarded.
func (h *Host) Dropped() uint64 { return h.dropped.Load() }

// Path is the sink's file, or "" for stdout and slog.
func (h *Host) Path() string { return h.path }

// Close clears the logger and closes the sink. Safe to call more than once.
func (h *Host) Close() error {
	h.closeOnce.Do(func() {
		if h.sink == nil {
			return
		}
		h.r.SetLogger(nil)
		h.closeErr = h.sink.Close()
		output.Logger.Debug("Redirect closed", "captured", h.Captured(), "failed", h.Failed(), "dropped", h.Dropped())
	})
	return h.closeErr
}

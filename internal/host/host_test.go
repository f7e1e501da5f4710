package host

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daryltucker/printf-redirect/internal/config"
	"github.com/daryltucker/printf-redirect/internal/output"
	"github.com/daryltucker/printf-redirect/internal/redirect"
)

func testConfig(t *testing.T, sink string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Sink = sink
	cfg.OutputDir = filepath.Join(t.TempDir(), "nested", "out")
	return cfg
}

func TestStdoutSinkLeavesRedirectorAlone(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h, err := New(testConfig(t, output.SinkStdout), redirect.New(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Close()

	h.Run([]config.Call{
		{Format: "%d-%s\n", Args: []any{3, "ok"}},
		{Format: "%d-%s\n", Args: []any{4, "ok"}},
	})

	if got := buf.String(); got != "3-ok\n4-ok\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
	if h.Captured() != 0 || h.Path() != "" {
		t.Fatalf("unexpected capture state: %d %q", h.Captured(), h.Path())
	}
}

func TestJSONLSinkCapturesAndCloseRestoresOutput(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := redirect.New(&buf)
	h, err := New(testConfig(t, output.SinkJSONL), r)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	long := strings.Repeat("x", 50)
	h.Run([]config.Call{
		{Format: "%s", Args: []any{"hello"}},
		{Format: "%s", Args: []any{long}},
	})
	if buf.Len() != 0 {
		t.Fatalf("redirected output leaked to stdout: %q", buf.String())
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	r.Printf("after")
	if buf.String() != "after" {
		t.Fatalf("expected output restored after Close, got %q", buf.String())
	}

	got, err := output.ReadJSONLines(h.Path())
	if err != nil {
		t.Fatalf("ReadJSONLines: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 captures, got %#v", got)
	}
	if got[0].Seq != 1 || got[0].Message != "hello" || got[1].Seq != 2 || got[1].Message != long {
		t.Fatalf("unexpected captures: %#v", got)
	}
	if h.Captured() != 2 || h.Failed() != 0 {
		t.Fatalf("unexpected counters: %d captured, %d failed", h.Captured(), h.Failed())
	}
}

func TestFileSinkDoesNotOverwritePreviousRun(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, output.SinkCSV)

	paths := make([]string, 2)
	for i := range paths {
		h, err := New(cfg, redirect.New(&bytes.Buffer{}))
		if err != nil {
			t.Fatalf("New run %d: %v", i, err)
		}
		h.Printf("run %d", i)
		if err := h.Close(); err != nil {
			t.Fatalf("Close run %d: %v", i, err)
		}
		paths[i] = h.Path()
	}
	if paths[0] == paths[1] {
		t.Fatalf("second run reused %s", paths[0])
	}
	if paths[1] != paths[0]+".1" {
		t.Fatalf("expected versioned path, got %s", paths[1])
	}
}

func TestBoltSinkAppendsAcrossRuns(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, output.SinkBolt)

	for i := 0; i < 2; i++ {
		h, err := New(cfg, redirect.New(&bytes.Buffer{}))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		h.Printf("run %d", i)
		if err := h.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	store, err := output.OpenBoltStore(cfg.OutputPath())
	if err != nil {
		t.Fatalf("OpenBoltStore: %v", err)
	}
	defer store.Close()
	got, err := store.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(got) != 2 || got[0].Message != "run 0" || got[1].Message != "run 1" {
		t.Fatalf("unexpected dump: %#v", got)
	}
}

func TestSlogSinkUsesPackageLogger(t *testing.T) {
	var logBuf bytes.Buffer
	orig := output.Logger
	l, err := output.NewLogger(&logBuf, "info", "text")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	output.SetLogger(l)
	t.Cleanup(func() { output.SetLogger(orig) })

	var buf bytes.Buffer
	h, err := New(testConfig(t, output.SinkSlog), redirect.New(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.Printf("temp:%d\n", 21)
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if buf.Len() != 0 {
		t.Fatalf("redirected output leaked: %q", buf.String())
	}
	if !strings.Contains(logBuf.String(), "msg=temp:21 seq=1") {
		t.Fatalf("unexpected log output: %s", logBuf.String())
	}
}

func TestSlogSinkBelowLogLevelCountsDropped(t *testing.T) {
	var logBuf bytes.Buffer
	orig := output.Logger
	l, err := output.NewLogger(&logBuf, "warn", "text")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	output.SetLogger(l)
	t.Cleanup(func() { output.SetLogger(orig) })

	var buf bytes.Buffer
	h, err := New(testConfig(t, output.SinkSlog), redirect.New(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.Printf("hidden %d\n", 1)
	h.Printf("hidden %d\n", 2)
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if h.Captured() != 2 || h.Dropped() != 2 || h.Failed() != 0 {
		t.Fatalf("unexpected counters: %d captured, %d dropped, %d failed", h.Captured(), h.Dropped(), h.Failed())
	}
	logged := logBuf.String()
	if !strings.Contains(logged, "level=ERROR") || !strings.Contains(logged, "filters out captures") {
		t.Fatalf("expected a filter report, got %s", logged)
	}
	if strings.Contains(logged, "hidden") {
		t.Fatalf("filtered captures reached the log: %s", logged)
	}
	if buf.Len() != 0 {
		t.Fatalf("redirected output leaked: %q", buf.String())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, "syslog")
	if _, err := New(cfg, redirect.New(&bytes.Buffer{})); !errors.Is(err, output.ErrUnknownSink) {
		t.Fatalf("expected ErrUnknownSink, got %v", err)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/daryltucker/printf-redirect/internal/output"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", `
sink: jsonl
output_dir: out
calls:
  - format: "%d-%s"
    args: [3, ok]
  - format: "plain\n"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sink != output.SinkJSONL || cfg.OutputDir != "out" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("defaults not kept: %#v", cfg)
	}
	if len(cfg.Calls) != 2 || cfg.Calls[0].Format != "%d-%s" {
		t.Fatalf("unexpected calls: %#v", cfg.Calls)
	}
	if n, ok := cfg.Calls[0].Args[0].(int); !ok || n != 3 {
		t.Fatalf("expected int arg 3, got %#v", cfg.Calls[0].Args[0])
	}
	if got := cfg.OutputPath(); got != filepath.Join("out", "captures.jsonl") {
		t.Fatalf("unexpected output path %s", got)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.toml", `
sink = "csv"
output_file = "run.csv"
log_format = "json"

[[calls]]
format = "%s=%d"
args = ["n", 7]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sink != output.SinkCSV || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if len(cfg.Calls) != 1 || len(cfg.Calls[0].Args) != 2 {
		t.Fatalf("unexpected calls: %#v", cfg.Calls)
	}
	if got := cfg.OutputPath(); got != filepath.Join(".", "run.csv") {
		t.Fatalf("unexpected output path %s", got)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "sink: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadSearchesDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without files: %v", err)
	}
	if cfg.Sink != output.SinkStdout {
		t.Fatalf("expected default sink, got %s", cfg.Sink)
	}

	writeFile(t, dir, "printf_redirect.toml", `sink = "bolt"`)
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load toml default: %v", err)
	}
	if cfg.Sink != output.SinkBolt {
		t.Fatalf("expected bolt from toml, got %s", cfg.Sink)
	}

	writeFile(t, dir, "printf_redirect.yaml", "sink: slog\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load yaml default: %v", err)
	}
	if cfg.Sink != output.SinkSlog {
		t.Fatalf("expected yaml to win, got %s", cfg.Sink)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.yaml", "sink: csv\noutput_dir: a\n")
	t.Setenv(EnvSink, "jsonl")
	t.Setenv(EnvOutputDir, "b")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sink != "jsonl" || cfg.OutputDir != "b" || cfg.LogLevel != "debug" {
		t.Fatalf("env overrides not applied: %#v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.Sink = "syslog"
	if err := cfg.Validate(); !errors.Is(err, output.ErrUnknownSink) {
		t.Fatalf("expected ErrUnknownSink, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.LogLevel = "chatty"
	if err := cfg.Validate(); !errors.Is(err, output.ErrInvalidLogLevel) {
		t.Fatalf("expected ErrInvalidLogLevel, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); !errors.Is(err, output.ErrInvalidLogFormat) {
		t.Fatalf("expected ErrInvalidLogFormat, got %v", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

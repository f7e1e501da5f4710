/*
PURPOSE:
  Defines the configuration structure and loading logic for printf-redirect.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Choose where redirected output goes (stdout, slog, file, store).
  - Script a list of printf calls for the host to run.

  Implementation-discovered:
  - Needs to support YAML and TOML parsing.
  - Needs to support Environment variables overrides (PRINTF_REDIRECT_...).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/host
  - Dependencies: gopkg.in/yaml.v3, github.com/BurntSushi/toml

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default file is not an error (falls back to defaults).

IMPLEMENTATION RULES:
  - Config struct tags should support yaml and toml.
  - Defaults should be sensible (stdout passthrough).

USAGE:
  cfg, err := config.Load("printf_redirect.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new sinks or env overrides.
*/

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/printf-redirect/internal/output"
)

// Environment overrides, applied after the config file.
const (
	EnvSink      = "PRINTF_REDIRECT_SINK"
	EnvOutputDir = "PRINTF_REDIRECT_OUTPUT_DIR"
	EnvLogLevel  = "PRINTF_REDIRECT_LOG_LEVEL"
)

// DefaultFiles are searched, in order, when no config path is given.
var DefaultFiles = []string{"printf_redirect.yaml", "printf_redirect.yml", "printf_redirect.toml"}

// Call is one scripted printf invocation.
type Call struct {
	Format string `yaml:"format" toml:"format"`
	Args   []any  `yaml:"args" toml:"args"`
}

// Config represents the full configuration for printf-redirect.
type Config struct {
	// Sink is one of output.Kinds().
	Sink      string `yaml:"sink" toml:"sink"`
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
	// OutputFile defaults to output.DefaultFile(Sink) when empty.
	OutputFile string `yaml:"output_file" toml:"output_file"`
	LogLevel   string `yaml:"log_level" toml:"log_level"`
	LogFormat  string `yaml:"log_format" toml:"log_format"`
	Calls      []Call `yaml:"calls" toml:"calls"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sink:      output.SinkStdout,
		OutputDir: ".",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
// Environment overrides are applied in every case.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
		if path == "" {
			cfg.applyEnv()
			return cfg, nil
		}
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyEnv()

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSink); v != "" {
		c.Sink = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the sink kind and logging settings.
func (c *Config) Validate() error {
	if !output.ValidKind(c.Sink) {
		return fmt.Errorf("%w: %q (want one of %s)", output.ErrUnknownSink, c.Sink, strings.Join(output.Kinds(), ", "))
	}
	if _, err := output.NewLogger(io.Discard, c.LogLevel, c.LogFormat); err != nil {
		return err
	}
	return nil
}

// OutputPath is where file-backed sinks write.
func (c *Config) OutputPath() string {
	name := c.OutputFile
	if name == "" {
		name = output.DefaultFile(c.Sink)
	}
	return filepath.Join(c.OutputDir, name)
}

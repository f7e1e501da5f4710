/*
PURPOSE:
  Defines the root Cobra command for the printf-redirect CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Logging flags must be applied before any subcommand opens a sink.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/printf-redirect/main.go
  - Calls: Child commands (printf, run, dump)
  - Modifies: output.Logger (from --log-level / --log-format).

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/printf-redirect/main.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/printf-redirect/internal/config"
	"github.com/daryltucker/printf-redirect/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile   string
	logLevel  string
	logFormat string

	// sink overrides shared by printf and run
	sinkOverride       string
	outputDirOverride  string
	outputFileOverride string

	rootCmd = &cobra.Command{
		Use:   "printf-redirect",
		Short: "Route printf output to a logger instead of stdout",
		Long: `printf-redirect renders printf-style output and either writes it to stdout
or, when a sink is configured, hands every rendered message to that sink
(slog, NDJSON, CSV or an embedded bolt store).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies flag overrides on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("sink") {
		cfg.Sink = sinkOverride
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDirOverride
	}
	if flags.Changed("output-file") {
		cfg.OutputFile = outputFileOverride
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := output.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addSinkFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sinkOverride, "sink", "", "Where redirected output goes: stdout, slog, jsonl, csv, bolt")
	addOutputFlags(cmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputDirOverride, "output-dir", "o", "", "Output directory for file sinks")
	cmd.Flags().StringVar(&outputFileOverride, "output-file", "", "File name for file sinks (default depends on sink)")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./printf_redirect.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
}

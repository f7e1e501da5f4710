/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the printf calls scripted in the config file.

REQUIREMENTS:
  User-specified:
  - Run the scripted calls through the redirector.
  - specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/host.New() / Host.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or the sink cannot be opened.
  - Reports (does not fail on) captures the sink rejected.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Host.Run -> Close.

USAGE:
  printf-redirect run --sink csv -o ./captures

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/printf-redirect/internal/host"
	"github.com/daryltucker/printf-redirect/internal/output"
	"github.com/daryltucker/printf-redirect/internal/redirect"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the calls listed in the config file",
	Long: `Executes every entry under 'calls' in the config file, in order, through the
redirector. The configured sink receives each rendered message; with the
stdout sink the calls simply print.

File sinks never overwrite earlier runs: an existing captures.jsonl is kept
and the new run writes captures.jsonl.1 (and so on). The bolt sink appends.`,
	Example: `  # Run with defaults (uses printf_redirect.yaml)
  printf-redirect run

  # Capture into NDJSON, gzip-compressed
  printf-redirect run --sink jsonl --output-file captures.jsonl.gz

  # Use a TOML config and store captures in bolt
  printf-redirect run --config ./printf_redirect.toml --sink bolt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// 2. Execution
		h, err := host.New(cfg, redirect.Default())
		if err != nil {
			return err
		}
		defer h.Close()

		output.Logger.Info("Running calls", "count", len(cfg.Calls), "sink", cfg.Sink)
		h.Run(cfg.Calls)

		if err := h.Close(); err != nil {
			return err
		}
		if cfg.Sink != output.SinkStdout {
			output.Logger.Info("Run complete", "captured", h.Captured(), "failed", h.Failed(), "dropped", h.Dropped(), "path", h.Path())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addSinkFlags(runCmd)
}

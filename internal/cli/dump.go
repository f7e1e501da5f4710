/*
PURPOSE:
  Defines the 'dump' subcommand.
  Prints captures kept in a bolt store.

REQUIREMENTS:
  User-specified:
  - List what the host captured.

  Implementation-discovered:
  - Useful after several runs appended to the same store.
  - --clear empties the store after printing.

ARCHITECTURE INTEGRATION:
  - Calls: internal/output.OpenBoltStore()

ERROR HANDLING:
  - Returns error if the store is missing or unreadable.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  printf-redirect dump -o ./captures

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/output/bolt.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daryltucker/printf-redirect/internal/output"
)

var clearAfterDump bool

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print captures stored by the bolt sink",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Sink = output.SinkBolt

		path := cfg.OutputPath()
		if !output.StoreExists(path) {
			return fmt.Errorf("no capture store at %s", path)
		}
		store, err := output.OpenBoltStore(path)
		if err != nil {
			return err
		}
		defer store.Close()

		captures, err := store.Dump()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		for _, c := range captures {
			fmt.Fprintf(out, "%s\t%d\t%q\n", c.Time.Format(time.RFC3339), c.Seq, c.Message)
		}

		if clearAfterDump {
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear %s: %w", path, err)
			}
			output.Logger.Info("Capture store cleared", "path", path, "removed", len(captures))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	addOutputFlags(dumpCmd)
	dumpCmd.Flags().BoolVar(&clearAfterDump, "clear", false, "Remove all captures after printing them")
}

/*
PURPOSE:
  Defines the 'printf' subcommand.
  Renders a single format string through the redirector.

REQUIREMENTS:
  User-specified:
  - Behave like printf(1): FORMAT then ARGS.
  - Output goes to stdout unless a sink is configured.

  Implementation-discovered:
  - Shell arguments are strings; they must be converted per verb (args.go).
  - Sink flags mirror 'run' so both commands redirect the same way.

ARCHITECTURE INTEGRATION:
  - Calls: internal/host.New() / Host.Printf()
  - Uses: internal/redirect.Default()

ERROR HANDLING:
  - Returns ErrArgumentCoercion for arguments that do not fit their verb.
  - Returns error if config load fails or the sink cannot be opened.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Coerce Args -> Host.Printf -> Close.

USAGE:
  printf-redirect printf '%d-%s\n' 3 ok

SELF-HEALING INSTRUCTIONS:
  - If a value renders as %!d(string=...), check coerceArgs.

RELATED FILES:
  - internal/cli/args.go
  - internal/cli/run.go

MAINTENANCE:
  - Update the Long help when coercion rules change.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/printf-redirect/internal/host"
	"github.com/daryltucker/printf-redirect/internal/redirect"
)

var printfCmd = &cobra.Command{
	Use:   "printf FORMAT [ARGS...]",
	Short: "Render one printf call through the redirector",
	Long: `Renders FORMAT with ARGS. Each argument is converted to the type its verb
expects: %d and %x take integers, %f and %g take floats, %t takes a bool,
%c takes a single character (printed as-is, digits included) or a numeric
code point, and everything else is passed as a string. Explicit argument
indexes such as %[2]s are honored; an argument used by two verbs must
convert to the same type for both. Backslash escapes such as \n are
expanded in FORMAT.

Without a sink the result goes to stdout. With one, it is captured instead.`,
	Example: `  printf-redirect printf '%d-%s\n' 3 ok
  printf-redirect printf --sink jsonl -o ./captures 'temp=%.1f\n' 21.5`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		format := unescape(args[0])
		values, err := coerceArgs(format, args[1:])
		if err != nil {
			return err
		}

		h, err := host.New(cfg, redirect.Default())
		if err != nil {
			return err
		}
		defer h.Close()

		h.Printf(format, values...)
		return h.Close()
	},
}

func init() {
	rootCmd.AddCommand(printfCmd)
	addSinkFlags(printfCmd)
}

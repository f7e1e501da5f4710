/*
PURPOSE:
  Fixed-arity entry point for hosts built against the first binding
  revision, where registration and printing share one call.

REQUIREMENTS:
  User-specified:
  - format "set logger" registers the callback instead of printing.

  Implementation-discovered:
  - Once a logger is held every call is forwarded, including "set logger".

ARCHITECTURE INTEGRATION:
  - Wraps: internal/redirect.Redirector
  - Called by: hosts using the old binding

ERROR HANDLING:
  - None. Write errors on the passthrough path are ignored, as in Printf.

IMPLEMENTATION RULES:
  - The stream argument is ignored.

USAGE:
  redirect.FprintfOverride("", redirect.SetLoggerCommand, nil, hostLog)

SELF-HEALING INSTRUCTIONS:
  - To replace a registered logger, use SetLogger.

RELATED FILES:
  - internal/redirect/redirect.go

MAINTENANCE:
  - Remove once no host uses the old binding.
*/

package redirect

import "fmt"

// SetLoggerCommand is the format value FprintfOverride treats as a
// registration request instead of text to print.
const SetLoggerCommand = "set logger"

// FprintfOverride is the fixed-arity entry point kept for hosts built
// against the first binding revision. The stream argument is ignored.
//
// Once a logger is registered every call is rendered and forwarded,
// including a later SetLoggerCommand, so re-registration through this
// entry point is not possible. Use SetLogger to replace or clear it.
func (r *Redirector) FprintfOverride(stream, format string, arg any, callback Logger) {
	if fn := r.logger.Load(); fn != nil {
		(*fn)(fmt.Sprintf(format, arg))
		return
	}

	if format == SetLoggerCommand {
		r.SetLogger(callback)
		return
	}

	_, _ = fmt.Fprintf(r.writer(), format, arg)
}

// FprintfOverride calls FprintfOverride on the default Redirector.
func FprintfOverride(stream, format string, arg any, callback Logger) {
	std.FprintfOverride(stream, format, arg, callback)
}

/*
PURPOSE:
  Drop-in replacement for a printf-style routine.
  Output goes to stdout unless a logger callback is registered, in which case
  the rendered string is handed to the callback instead.

REQUIREMENTS:
  User-specified:
  - SetLogger installs or clears the callback.
  - Printf renders to stdout, or renders to a buffer and calls the logger once.

  Implementation-discovered:
  - The render buffer must fit the rendered output, not the format string.
  - Hosts may register from one goroutine while another prints.

ARCHITECTURE INTEGRATION:
  - Used by: internal/host, internal/cli
  - Dependencies: none

ERROR HANDLING:
  - None surfaced. Write errors on the output stream are discarded.

IMPLEMENTATION RULES:
  - Logger reference lives in an atomic.Pointer.
  - Never write to the output stream when a logger is registered.
  - Call the logger at most once per Printf.

USAGE:
  redirect.SetLogger(func(msg string) { log.Print(msg) })
  redirect.Printf("%d-%s", 3, "ok")
  redirect.SetLogger(nil)

SELF-HEALING INSTRUCTIONS:
  - If output shows up on stdout while a logger is set, check Printf's load order.

RELATED FILES:
  - internal/redirect/legacy.go
  - internal/host/host.go

MAINTENANCE:
  - Keep the package-level functions in sync with the Redirector methods.
*/

package redirect

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Logger receives one fully rendered message per Printf call.
type Logger func(msg string)

// Redirector routes formatted output either to a writer or to a Logger.
// The zero value writes to os.Stdout.
type Redirector struct {
	out    io.Writer
	logger atomic.Pointer[Logger]
}

// New returns a Redirector writing to w when no logger is set.
// A nil w means os.Stdout, looked up on every call.
func New(w io.Writer) *Redirector {
	return &Redirector{out: w}
}

// SetLogger installs fn as the redirection target. A nil fn clears it.
func (r *Redirector) SetLogger(fn Logger) {
	if fn == nil {
		r.logger.Store(nil)
		return
	}
	r.logger.Store(&fn)
}

// Printf renders format with args. With a logger registered the result is
// passed to it; otherwise it is written to the output stream.
func (r *Redirector) Printf(format string, args ...any) {
	if fn := r.logger.Load(); fn != nil {
		(*fn)(fmt.Sprintf(format, args...))
		return
	}
	_, _ = fmt.Fprintf(r.writer(), format, args...)
}

func (r *Redirector) writer() io.Writer {
	if r.out == nil {
		return os.Stdout
	}
	return r.out
}

var std = New(nil)

// Default returns the process-wide Redirector used by the package-level functions.
func Default() *Redirector { return std }

// SetLogger installs fn on the default Redirector.
func SetLogger(fn Logger) { std.SetLogger(fn) }

// Printf formats through the default Redirector.
func Printf(format string, args ...any) { std.Printf(format, args...) }

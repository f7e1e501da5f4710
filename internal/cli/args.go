/*
PURPOSE:
  Converts shell arguments for the 'printf' subcommand into the Go values
  their format verbs expect.

REQUIREMENTS:
  User-specified:
  - `printf '%d-%s' 3 ok` must print "3-ok", not "%!d(string=3)-ok".

  Implementation-discovered:
  - Go's explicit argument indexes (%[n]d) reorder which argument a verb fills.
  - '*' width and precision consume an integer argument of their own.
  - The shell leaves backslash escapes in the format string.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli/printf.go

ERROR HANDLING:
  - Returns ErrArgumentCoercion when an argument does not parse for its verb,
    or when two verbs need one argument as different types.

IMPLEMENTATION RULES:
  - Follow fmt's argument numbering exactly; fmt does the rendering.
  - An argument only filled by %v (or never referenced) stays a string.

USAGE:
  values, err := coerceArgs(format, args[1:])

SELF-HEALING INSTRUCTIONS:
  - If a verb renders %!x(string=...), check classOf/coerce for that verb.

RELATED FILES:
  - internal/cli/printf.go

MAINTENANCE:
  - Update coerce when adding verbs.
*/

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrArgumentCoercion indicates a command-line argument does not fit its verb.
var ErrArgumentCoercion = errors.New("argument does not match verb")

var escapes = strings.NewReplacer(
	`\\`, `\`,
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\a`, "\a",
	`\e`, "\x1b",
)

// unescape expands the backslash escapes a shell leaves in a format string.
func unescape(format string) string {
	return escapes.Replace(format)
}

type argSlot struct {
	value any
	verb  rune
	set   bool
}

// coerceArgs converts raw shell arguments to the Go types their verbs in
// format expect, the way printf(1) does. Argument numbering follows fmt,
// including %[n] indexes. The first typed verb to reference an argument
// fixes its type; a later verb needing a different type is an error.
// Arguments only filled by %v, or never referenced, stay strings.
func coerceArgs(format string, raw []string) ([]any, error) {
	slots := make([]argSlot, len(raw))
	use := func(idx int, verb rune) error {
		if idx < 0 || idx >= len(raw) || verb == 'v' {
			return nil
		}
		v, err := coerce(verb, raw[idx])
		if err != nil {
			return fmt.Errorf("%w: argument %d %q for %%%c: %v", ErrArgumentCoercion, idx+1, raw[idx], verb, err)
		}
		s := &slots[idx]
		if s.set {
			if fmt.Sprintf("%T", s.value) != fmt.Sprintf("%T", v) {
				return fmt.Errorf("%w: argument %d %q used as %%%c and %%%c", ErrArgumentCoercion, idx+1, raw[idx], s.verb, verb)
			}
			return nil
		}
		*s = argSlot{value: v, verb: verb, set: true}
		return nil
	}

	argNum := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			continue
		}

		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}

		// width
		i, argNum = argIndex(format, i, argNum)
		if i < len(format) && format[i] == '*' {
			if err := use(argNum, 'd'); err != nil {
				return nil, err
			}
			argNum++
			i++
		}
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}

		// precision
		if i < len(format) && format[i] == '.' {
			i++
			i, argNum = argIndex(format, i, argNum)
			if i < len(format) && format[i] == '*' {
				if err := use(argNum, 'd'); err != nil {
					return nil, err
				}
				argNum++
				i++
			}
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
		}

		i, argNum = argIndex(format, i, argNum)
		if i >= len(format) {
			break
		}
		verb, size := utf8.DecodeRuneInString(format[i:])
		i += size - 1
		if err := use(argNum, verb); err != nil {
			return nil, err
		}
		argNum++
	}

	out := make([]any, len(raw))
	for idx, s := range slots {
		if s.set {
			out[idx] = s.value
		} else {
			out[idx] = raw[idx]
		}
	}
	return out, nil
}

// argIndex parses a "[n]" at format[i]. On success it returns the index past
// the bracket and the zero-based argument number n-1. A malformed index is
// left for fmt to report as %!(BADINDEX).
func argIndex(format string, i, argNum int) (int, int) {
	if i >= len(format) || format[i] != '[' {
		return i, argNum
	}
	end := strings.IndexByte(format[i:], ']')
	if end < 0 {
		return i, argNum
	}
	n, err := strconv.Atoi(format[i+1 : i+end])
	if err != nil || n < 1 {
		return i, argNum
	}
	return i + end + 1, n - 1
}

func coerce(verb rune, s string) (any, error) {
	switch verb {
	case 'c':
		// A single character prints as itself, digits included; longer
		// arguments are read as a code point.
		if r, size := utf8.DecodeRuneInString(s); size > 0 && size == len(s) {
			return r, nil
		}
		n, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return nil, err
		}
		return rune(n), nil
	case 'd', 'o', 'O', 'x', 'X', 'b', 'U':
		return strconv.ParseInt(s, 0, 64)
	case 'e', 'E', 'f', 'F', 'g', 'G':
		return strconv.ParseFloat(s, 64)
	case 't':
		return strconv.ParseBool(s)
	}
	return s, nil
}

// Package vassert checks preconditions the core packages treat as
// programmer defects rather than recoverable errors: invalid handles, out
// of range indices, double frees. A failed check panics unconditionally —
// Go has no separate release build to strip it from.
package vassert

import "fmt"

// Truef panics with a formatted message if cond is false.
func Truef(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

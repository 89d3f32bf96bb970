//go:build !debug

package debug

// Printf does nothing unless built with -tags debug.
func Printf(msg string, args ...any) {}

const On = false

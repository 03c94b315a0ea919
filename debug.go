package aster

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set debug flag so that plot and
// scene operations can check it cheaply. Intended for development builds.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, operations on
// a freed plot panic with a descriptive message instead of silently
// proceeding on cleared state.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// warnf prints a degraded-capability warning to stderr. Warnings never
// abort the operation that raised them.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[aster] warning: "+format+"\n", args...)
}

// notef prints a low-severity note to stderr, used when a backend declines
// an optional operation and the call proceeds as a no-op.
func notef(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[aster] note: "+format+"\n", args...)
}

// debugCheckFreedPlot panics when a freed plot is used in an operation.
// Only called when debug mode is enabled.
func debugCheckFreedPlot(p *Plot, op string) {
	if p.freed {
		panic(fmt.Sprintf("aster debug: %s on freed plot %q", op, p.Name))
	}
}

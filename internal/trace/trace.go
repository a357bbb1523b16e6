// Package trace is the opt-in phase tracer the environment-variable
// contract of spec.md §6 describes (MIRTEST_DEBUG, MIROPT_DEBUG): not a
// structured logging dependency, but a thin log.Logger gated by a
// colon-separated phase whitelist, matching the teacher pack's own
// convention of reading a debug env var once at startup rather than
// importing a logging framework (see DESIGN.md).
package trace

import (
	"log"
	"os"
	"strings"
)

// Tracer prints a line per enabled phase, and is silent for every other
// phase — so a caller can freely sprinkle t.Printf("dce", ...)
// across a pass without an extra gate at every call site.
type Tracer struct {
	enabled map[string]bool
	all     bool
	logger  *log.Logger
}

// FromEnv builds a Tracer from a colon-separated phase list
// (MIRTEST_DEBUG=dce:licm, or MIRTEST_DEBUG=1 / "all" to enable
// everything). An unset or empty variable disables tracing entirely.
func FromEnv(envVar string) *Tracer {
	val := os.Getenv(envVar)
	t := &Tracer{enabled: make(map[string]bool), logger: log.New(os.Stderr, "", log.LstdFlags)}
	if val == "" {
		return t
	}
	if val == "1" || val == "all" {
		t.all = true
		return t
	}
	for _, phase := range strings.Split(val, ":") {
		if phase != "" {
			t.enabled[phase] = true
		}
	}
	return t
}

// On reports whether tracing is enabled for the given phase.
func (t *Tracer) On(phase string) bool {
	return t.all || t.enabled[phase]
}

// Printf logs a line tagged with phase if tracing is enabled for it.
func (t *Tracer) Printf(phase, format string, args ...interface{}) {
	if !t.On(phase) {
		return
	}
	t.logger.Printf("["+phase+"] "+format, args...)
}

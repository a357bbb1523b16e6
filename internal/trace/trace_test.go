package trace_test

import (
	"os"
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/trace"
)

func TestFromEnvUnsetIsSilent(t *testing.T) {
	os.Unsetenv("MIRTEST_DEBUG_TEST")
	tr := trace.FromEnv("MIRTEST_DEBUG_TEST")
	if tr.On("dce") {
		t.Fatalf("expected tracing disabled with no env var set")
	}
}

func TestFromEnvWhitelistsPhases(t *testing.T) {
	t.Setenv("MIRTEST_DEBUG_TEST", "dce:licm")
	tr := trace.FromEnv("MIRTEST_DEBUG_TEST")
	if !tr.On("dce") || !tr.On("licm") {
		t.Fatalf("expected dce and licm enabled")
	}
	if tr.On("constprop") {
		t.Fatalf("expected constprop to remain disabled")
	}
}

func TestFromEnvAllEnablesEverything(t *testing.T) {
	t.Setenv("MIRTEST_DEBUG_TEST", "all")
	tr := trace.FromEnv("MIRTEST_DEBUG_TEST")
	if !tr.On("anything") {
		t.Fatalf("expected \"all\" to enable every phase")
	}
}

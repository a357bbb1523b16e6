package mirtest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/mirtest"
)

func TestRunPassesOnCleanFixtures(t *testing.T) {
	rep := mirtest.Run(mirtest.BuiltinCases(), []string{"fold_constant_add", "drop_unreachable_block"})
	if len(rep.Results) != 2 {
		t.Fatalf("expected 2 filtered results, got %d", len(rep.Results))
	}
	if !rep.AllPassed() {
		t.Fatalf("expected both fixtures to pass: %+v", rep.Results)
	}
}

func TestRunFlagsBorrowCheckFailure(t *testing.T) {
	rep := mirtest.Run(mirtest.BuiltinCases(), []string{"use_after_move_fails_borrowcheck"})
	if len(rep.Results) != 1 || rep.Results[0].Passed {
		t.Fatalf("expected the use-after-move fixture to fail, got %+v", rep.Results)
	}
	if rep.AllPassed() {
		t.Fatalf("expected AllPassed to be false")
	}
}

func TestLoadDirConfigMissingSidecarIsZeroValue(t *testing.T) {
	cfg, err := mirtest.LoadDirConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultTargetTriple != "" || cfg.DefaultPointerWidth != 0 {
		t.Fatalf("expected zero-value config for a missing sidecar, got %+v", cfg)
	}
}

func TestLoadDirConfigParsesSidecar(t *testing.T) {
	dir := t.TempDir()
	content := "default_target_triple: x86_64-unknown-linux-gnu\ndefault_pointer_width: 64\n"
	if err := os.WriteFile(filepath.Join(dir, "mirtest.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}
	cfg, err := mirtest.LoadDirConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultTargetTriple != "x86_64-unknown-linux-gnu" || cfg.DefaultPointerWidth != 64 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

package loop

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	simconfig "github.com/tomz197/shipdash/internal/sim/config"
)

func TestSetupReadsEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("override_duration: 2s\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SHIP_SEED", "21")
	t.Setenv("SHIP_TUNING", path)
	t.Setenv("LOG_LEVEL", "error")

	opts, logger, err := Setup(io.Discard, "test")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if logger == nil || opts.Logger != logger {
		t.Fatalf("logger not wired")
	}
	if opts.Seed != 21 {
		t.Fatalf("seed = %d, want 21", opts.Seed)
	}
	if opts.Tuning.OverrideDuration != 2*time.Second {
		t.Fatalf("tuning not loaded: %+v", opts.Tuning)
	}
}

func TestSetupRejectsBadTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("cruise_low: 12\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SHIP_TUNING", path)
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("SHIP_SEED", "")

	if _, _, err := Setup(io.Discard, ""); !errors.Is(err, simconfig.ErrInvalidTuning) {
		t.Fatalf("err = %v, want ErrInvalidTuning", err)
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	t.Setenv("SHIP_TUNING", "")
	t.Setenv("SHIP_SEED", "")
	t.Setenv("LOG_LEVEL", "shouty")
	if _, _, err := Setup(io.Discard, ""); err == nil {
		t.Fatalf("expected log level error")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	var out strings.Builder
	done := make(chan error, 1)
	go func() {
		done <- Run(bufio.NewReader(strings.NewReader("q")), &out, Options{
			TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return")
	}
}

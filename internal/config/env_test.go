package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SHIPDASH_TEST_VAR", "set")
	if got := GetEnv("SHIPDASH_TEST_VAR", "fallback"); got != "set" {
		t.Fatalf("GetEnv = %q, want set", got)
	}
	if got := GetEnv("SHIPDASH_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv = %q, want fallback", got)
	}
}

func TestGetEnvUint(t *testing.T) {
	t.Setenv("SHIPDASH_TEST_SEED", "42")
	if n, err := GetEnvUint("SHIPDASH_TEST_SEED", 1); err != nil || n != 42 {
		t.Fatalf("GetEnvUint = %d, %v; want 42", n, err)
	}
	if n, err := GetEnvUint("SHIPDASH_TEST_MISSING", 7); err != nil || n != 7 {
		t.Fatalf("GetEnvUint fallback = %d, %v; want 7", n, err)
	}
	t.Setenv("SHIPDASH_TEST_SEED", "nope")
	if _, err := GetEnvUint("SHIPDASH_TEST_SEED", 1); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SHIPDASH_DOTENV_VAR=from-file\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SHIPDASH_DOTENV_VAR", "")
	os.Unsetenv("SHIPDASH_DOTENV_VAR")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("SHIPDASH_DOTENV_VAR"); got != "from-file" {
		t.Fatalf("var = %q, want from-file", got)
	}
}

func TestLoadCommon(t *testing.T) {
	t.Setenv("SHIP_SEED", "9")
	t.Setenv("SHIP_TUNING", "tuning.yaml")
	t.Setenv("LOG_LEVEL", "debug")
	c, err := LoadCommon()
	if err != nil {
		t.Fatalf("LoadCommon: %v", err)
	}
	if c.Seed != 9 || c.TuningPath != "tuning.yaml" || c.LogLevel != "debug" {
		t.Fatalf("common = %+v", c)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "test")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected log output %q", out)
	}

	if _, err := NewLogger(&buf, "loud", ""); err == nil {
		t.Fatalf("expected bad level error")
	}
}

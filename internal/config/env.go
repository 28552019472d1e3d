// Package config provides shared configuration utilities.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvUint returns the variable parsed as an unsigned integer, or fallback
// if it is not set.
func GetEnvUint(key string, fallback uint64) (uint64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Common holds the settings every entry point shares.
type Common struct {
	Seed       uint64 // SHIP_SEED; 0 picks a random seed
	TuningPath string // SHIP_TUNING; empty uses the built-in tuning
	LogLevel   string // LOG_LEVEL
}

// LoadCommon reads the shared settings from the environment.
func LoadCommon() (Common, error) {
	seed, err := GetEnvUint("SHIP_SEED", 0)
	if err != nil {
		return Common{}, err
	}
	return Common{
		Seed:       seed,
		TuningPath: GetEnv("SHIP_TUNING", ""),
		LogLevel:   GetEnv("LOG_LEVEL", "info"),
	}, nil
}

package config

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to w at the named level.
func NewLogger(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(lvl)
	return logger, nil
}

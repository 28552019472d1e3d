package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tomz197/shipdash/internal/config"
	"github.com/tomz197/shipdash/internal/loop"
	"golang.org/x/term"
)

func main() {
	// The dashboard owns the terminal, so logs only go to a file when asked.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("DASHBOARD_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}

	serverOpts, logger, err := loop.Setup(logOut, "dashboard")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, loop.Options{Server: serverOpts}); err != nil {
		logger.Error("dashboard stopped", "err", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "dashboard error: %v\n", err)
		os.Exit(1)
	}
}

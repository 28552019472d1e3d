// Package loop wires the simulation server to its presentation clients.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/shipdash/internal/config"
	"github.com/tomz197/shipdash/internal/draw"
	"github.com/tomz197/shipdash/internal/loop/client"
	"github.com/tomz197/shipdash/internal/loop/server"
	simconfig "github.com/tomz197/shipdash/internal/sim/config"
)

// Options configures a local dashboard session.
type Options struct {
	Server       server.Options
	TermSizeFunc draw.TermSizeFunc
}

// Run starts a private server and drives a terminal client on r and w.
// Blocks until the client quits.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.NewServer(opts.Server)
	go srv.Run(ctx)

	c := client.NewClient(srv, r, w, client.ClientOptions{
		Name:            "local",
		TermSizeFunc:    opts.TermSizeFunc,
		RefreshInterval: srv.Tuning().RefreshInterval,
	})
	return c.Run()
}

// Setup loads .env, reads the shared settings and tuning, and builds the
// logger. Logs go to logOut.
func Setup(logOut io.Writer, prefix string) (server.Options, *log.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return server.Options{}, nil, err
	}
	common, err := config.LoadCommon()
	if err != nil {
		return server.Options{}, nil, err
	}
	logger, err := config.NewLogger(logOut, common.LogLevel, prefix)
	if err != nil {
		return server.Options{}, nil, err
	}
	tuning, err := simconfig.Load(common.TuningPath)
	if err != nil {
		return server.Options{}, nil, fmt.Errorf("tuning: %w", err)
	}

	return server.Options{
		Seed:   common.Seed,
		Tuning: &tuning,
		Logger: logger,
	}, logger, nil
}

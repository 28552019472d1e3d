package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/shipdash/internal/config"
	"github.com/tomz197/shipdash/internal/loop"
	"github.com/tomz197/shipdash/internal/loop/server"
	"github.com/tomz197/shipdash/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	serverOpts, logger, err := loop.Setup(os.Stderr, "web")
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	ctx, cancelSim := context.WithCancel(context.Background())
	sim := server.NewServer(serverOpts)
	go sim.Run(ctx)

	handler := web.NewHandler(sim, web.Options{
		Logger:          logger,
		RefreshInterval: sim.Tuning().RefreshInterval,
	})
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "addr", "http://"+httpServer.Addr, "seed", sim.Seed())
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Viewers get a close frame and unregister; then the simulation stops.
	sim.Shutdown(5 * time.Second)
	cancelSim()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	handler.Close()
}

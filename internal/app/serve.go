package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horse.fit/pulse/internal/cli"
	"horse.fit/pulse/internal/globaltime"
	"horse.fit/pulse/internal/httpapi"
	"horse.fit/pulse/internal/schedule"
	"horse.fit/pulse/internal/simulate"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "0.0.0.0", "Host interface to bind")
	port := fs.Int("port", 8090, "HTTP port")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port <= 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}

	p, err := buildPipeline(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	// Initial fetch. A failure is not fatal: the API serves 503 until the
	// first scheduled refresh succeeds or a manual /refresh is issued.
	initialCtx, initialCancel := context.WithTimeout(ctx, p.cfg.FeedTimeout+10*time.Second)
	if _, err := p.ingest.RunCycle(initialCtx); err != nil {
		p.logger.Error().Err(err).Msg("initial ingestion cycle failed")
	}
	initialCancel()

	scheduler := schedule.NewManager(p.logger)
	if err := scheduler.AddEvery("refresh", p.cfg.RefreshInterval, func() {
		refreshCtx, refreshCancel := context.WithTimeout(ctx, p.cfg.FeedTimeout+10*time.Second)
		defer refreshCancel()
		if _, err := p.ingest.RunCycle(refreshCtx); err != nil {
			p.logger.Error().Err(err).Msg("scheduled ingestion cycle failed")
		}
	}); err != nil {
		p.logger.Error().Err(err).Msg("failed to schedule refresh job")
		fmt.Fprintf(os.Stderr, "Failed to schedule refresh: %v\n", err)
		return 1
	}

	if p.cfg.SimulateUpdates {
		rng := rand.New(rand.NewSource(globaltime.Now().UnixNano()))
		simulator := simulate.New(p.store, rng, p.logger)
		if err := scheduler.AddEvery("simulate", p.cfg.SimulateInterval, simulator.Tick); err != nil {
			p.logger.Error().Err(err).Msg("failed to schedule simulator job")
			fmt.Fprintf(os.Stderr, "Failed to schedule simulator: %v\n", err)
			return 1
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	srv := httpapi.NewServer(p.store, p.ingest, p.logger, httpapi.Options{
		Host:            *host,
		Port:            *port,
		ReadTimeout:     *readTimeout,
		WriteTimeout:    *writeTimeout,
		ShutdownTimeout: *shutdownTimeout,
		AllowOrigins:    p.cfg.CORSAllowedOriginsList(),
	})

	if err := srv.Start(ctx); err != nil {
		p.logger.Error().Err(err).Str("host", *host).Int("port", *port).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}

	return 0
}

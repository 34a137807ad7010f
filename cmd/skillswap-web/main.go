package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-skillswap/internal/app"
	"github.com/goliatone/go-skillswap/internal/config"
	"github.com/goliatone/go-skillswap/internal/metrics"
	"github.com/goliatone/go-skillswap/internal/modal"
	"github.com/goliatone/go-skillswap/internal/server"
	"github.com/goliatone/go-skillswap/pkg/orchestrator"
	"github.com/goliatone/go-skillswap/pkg/renderers/html"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	shutdownGrace := flag.Duration("shutdown-grace", 10*time.Second, "time allowed for in-flight requests on shutdown")
	sweepEvery := flag.Duration("sweep", time.Minute, "interval between idle modal sweeps")
	flag.Parse()

	logger := log.New(os.Stderr, "[skillswap] ", log.LstdFlags)

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	reporting, err := app.InitSentry(cfg)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	defer reporting.Flush()

	registrar, err := app.NewRegistrar(cfg, logger)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	m := metrics.New()
	store := modal.New(
		modal.WithTTL(cfg.ModalTTL),
		modal.WithSizeObserver(m.SetOpenModals),
		modal.WithControllerOptions(
			signup.WithRegistrar(registrar),
			signup.WithOrigin(cfg.Origin),
			signup.WithLogger(log.New(os.Stderr, "", log.LstdFlags)),
			signup.WithErrorReporter(reporting.Report),
			signup.WithObserver(m),
		),
	)

	htmlOptions := []html.Option{html.WithVariant(cfg.ThemeVariant)}
	if cfg.TemplateEngine == config.EngineGoTemplate {
		htmlOptions = append(htmlOptions, html.WithGoTemplate())
	}
	pages := orchestrator.New(orchestrator.WithHTMLOptions(htmlOptions...))
	srv, err := server.New(pages, store,
		server.WithLogger(log.New(os.Stderr, "[server] ", log.LstdFlags)),
		server.WithMetrics(m),
		server.WithCORSOrigins(cfg.CORSOrigins...),
		server.WithSentry(reporting.Enabled()),
		server.WithVariant(cfg.ThemeVariant),
	)
	if err != nil {
		logger.Fatalf("server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go store.Run(ctx, *sweepEvery)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	logger.Printf("listening on %s (origin %s, hosted identity %t)", cfg.Addr, cfg.Origin, cfg.Identity.Hosted())

	select {
	case err := <-errChan:
		logger.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

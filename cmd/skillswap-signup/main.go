package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-skillswap/internal/app"
	"github.com/goliatone/go-skillswap/internal/config"
	"github.com/goliatone/go-skillswap/pkg/formschema"
	"github.com/goliatone/go-skillswap/pkg/notify"
	"github.com/goliatone/go-skillswap/pkg/renderers/tui"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

const (
	exitOK       = 0
	exitFailed   = 1
	exitCanceled = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	formPath := flag.String("form", "", "OpenAPI document describing the signup form (embedded when empty)")
	overlayPath := flag.String("overlay", "", "UI overlay for -form (embedded when empty)")
	attempts := flag.Int("attempts", 3, "maximum submissions before giving up (0 for unlimited)")
	verbose := flag.Bool("v", false, "log diagnostics to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "[skillswap] ", log.LstdFlags)
	if !*verbose {
		logger.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return exitFailed
	}

	reporting, err := app.InitSentry(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailed
	}
	defer reporting.Flush()

	registrar, err := app.NewRegistrar(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var form *formschema.Form
	if *formPath != "" {
		form, err = formschema.LoadFiles(ctx, *formPath, *overlayPath)
	} else {
		form, err = formschema.Load(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "form: %v\n", err)
		return exitFailed
	}

	controller := signup.NewController(
		signup.WithRegistrar(registrar),
		signup.WithOrigin(cfg.Origin),
		signup.WithNotifier(notify.NewWriterSink(os.Stdout, notify.DefaultPrefixes)),
		signup.WithLogger(logger),
		signup.WithErrorReporter(reporting.Report),
	)
	flow, err := tui.New(form, controller, tui.WithOutput(os.Stdout), tui.WithMaxAttempts(*attempts))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailed
	}

	outcome, err := flow.Run(ctx)
	switch {
	case errors.Is(err, tui.ErrAborted), errors.Is(err, tui.ErrDeclined), errors.Is(err, signup.ErrClosed):
		return exitCanceled
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		return exitFailed
	case outcome.Status != signup.StatusSucceeded:
		return exitFailed
	}
	return exitOK
}

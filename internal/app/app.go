// Package app holds the wiring shared by the web server and the terminal
// signup command.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/goliatone/go-skillswap/internal/config"
	"github.com/goliatone/go-skillswap/pkg/identity"
)

const sentryFlushTimeout = 2 * time.Second

// NewRegistrar returns the hosted identity client when one is configured and
// the in-memory registrar otherwise.
func NewRegistrar(cfg config.Config, logger *log.Logger) (identity.Registrar, error) {
	if !cfg.Identity.Hosted() {
		if logger != nil {
			logger.Printf("identity: no hosted service configured, using in-memory registrar")
		}
		return identity.NewMemoryRegistrar(identity.WithLatency(cfg.Identity.Latency)), nil
	}
	client, err := identity.NewHostedClient(
		cfg.Identity.URL,
		cfg.Identity.AnonKey,
		identity.WithTimeout(cfg.Identity.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("app: identity client: %w", err)
	}
	return client, nil
}

// Reporting forwards unexpected failures to Sentry.
type Reporting struct {
	enabled bool
}

// InitSentry initialises the Sentry client when a DSN is configured. The
// returned Reporting is a no-op otherwise.
func InitSentry(cfg config.Config) (Reporting, error) {
	if cfg.SentryDSN == "" {
		return Reporting{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.SentryEnvironment,
		AttachStacktrace: true,
	})
	if err != nil {
		return Reporting{}, fmt.Errorf("app: sentry init: %w", err)
	}
	return Reporting{enabled: true}, nil
}

// Enabled reports whether events are sent anywhere.
func (r Reporting) Enabled() bool {
	return r.enabled
}

// Report captures err.
func (r Reporting) Report(err error) {
	if r.enabled && err != nil {
		sentry.CaptureException(err)
	}
}

// Flush waits for buffered events to be delivered.
func (r Reporting) Flush() {
	if r.enabled {
		sentry.Flush(sentryFlushTimeout)
	}
}

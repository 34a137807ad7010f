// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "SKILLSWAP_"

// Config holds settings shared by the web server and the terminal flow.
type Config struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	Origin       string        `env:"ORIGIN" envDefault:"http://localhost:8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`

	Identity Identity `envPrefix:"IDENTITY_"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"development"`

	ModalTTL     time.Duration `env:"MODAL_TTL" envDefault:"30m"`
	ThemeVariant string        `env:"THEME_VARIANT"`

	// TemplateEngine is "pongo2" (built-in adapter) or "go-template".
	TemplateEngine string `env:"TEMPLATE_ENGINE" envDefault:"pongo2"`
}

// Template engine names accepted by TemplateEngine.
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "go-template"
)

// Identity configures the hosted identity service. An empty URL selects the
// in-memory development registrar.
type Identity struct {
	URL     string        `env:"URL"`
	AnonKey string        `env:"ANON_KEY"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
	Latency time.Duration `env:"DEV_LATENCY" envDefault:"400ms"`
}

// Hosted reports whether a hosted identity service is configured.
func (i Identity) Hosted() bool {
	return strings.TrimSpace(i.URL) != ""
}

// Load reads optional dotenv files, then parses the environment. Missing
// files are ignored; unreadable ones are an error.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return Parse(nil)
}

// Parse builds a Config from environ (os.Environ when nil).
func Parse(environ map[string]string) (Config, error) {
	opts := env.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks combinations the struct tags cannot express.
func (c Config) Validate() error {
	if c.Identity.Hosted() && strings.TrimSpace(c.Identity.AnonKey) == "" {
		return errors.New("config: " + Prefix + "IDENTITY_ANON_KEY is required with " + Prefix + "IDENTITY_URL")
	}
	if c.ModalTTL <= 0 {
		return errors.New("config: " + Prefix + "MODAL_TTL must be positive")
	}
	switch c.TemplateEngine {
	case EnginePongo2, EngineGoTemplate:
	default:
		return fmt.Errorf("config: %sTEMPLATE_ENGINE must be %q or %q, got %q", Prefix, EnginePongo2, EngineGoTemplate, c.TemplateEngine)
	}
	return nil
}


package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Config{
		Addr:              ":8080",
		Origin:            "http://localhost:8080",
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		Identity:          Identity{Timeout: 15 * time.Second, Latency: 400 * time.Millisecond},
		SentryEnvironment: "development",
		ModalTTL:          30 * time.Minute,
		TemplateEngine:    EnginePongo2,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Identity.Hosted() {
		t.Fatalf("empty identity url should not be hosted")
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"SKILLSWAP_ADDR":              "127.0.0.1:9000",
		"SKILLSWAP_IDENTITY_URL":      "https://id.example.com",
		"SKILLSWAP_IDENTITY_ANON_KEY": "anon",
		"SKILLSWAP_IDENTITY_TIMEOUT":  "3s",
		"SKILLSWAP_CORS_ORIGINS":      "https://a.test,https://b.test",
		"SKILLSWAP_MODAL_TTL":         "5m",
		"SKILLSWAP_THEME_VARIANT":     "dark",
		"SKILLSWAP_TEMPLATE_ENGINE":   "go-template",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || !cfg.Identity.Hosted() || cfg.Identity.Timeout != 3*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff([]string{"https://a.test", "https://b.test"}, cfg.CORSOrigins); diff != "" {
		t.Fatalf("cors origins mismatch (-want +got):\n%s", diff)
	}
	if cfg.ModalTTL != 5*time.Minute || cfg.ThemeVariant != "dark" {
		t.Fatalf("unexpected modal ttl or variant: %+v", cfg)
	}
	if cfg.TemplateEngine != EngineGoTemplate {
		t.Fatalf("unexpected template engine %q", cfg.TemplateEngine)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":     {"SKILLSWAP_READ_TIMEOUT": "soon"},
		"missing anon key": {"SKILLSWAP_IDENTITY_URL": "https://id.example.com"},
		"non-positive ttl": {"SKILLSWAP_MODAL_TTL": "0s"},
		"unknown engine":   {"SKILLSWAP_TEMPLATE_ENGINE": "jinja"},
	}
	for name, environ := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(environ)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "config:") {
				t.Fatalf("expected config prefix, got %v", err)
			}
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SKILLSWAP_ORIGIN=https://dotenv.test\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("SKILLSWAP_ORIGIN") })

	cfg, err := Load(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Origin != "https://dotenv.test" {
		t.Fatalf("origin = %q, want dotenv value", cfg.Origin)
	}
}

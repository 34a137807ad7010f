package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	gotemplatepkg "github.com/goliatone/go-template"

	rendertemplate "github.com/goliatone/go-skillswap/pkg/render/template"
	gotemplate "github.com/goliatone/go-skillswap/pkg/render/template/gotemplate"

	"github.com/goliatone/go-skillswap/pkg/render"
)

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	goTemplate       bool
	goTemplateOpts   []gotemplatepkg.Option
	themes           *Themes
	variant          string
	assetPrefix      string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithGoTemplate renders through the go-template engine instead of the
// built-in pongo2 adapter. Ignored when WithTemplateRenderer is set.
func WithGoTemplate(options ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		cfg.goTemplate = true
		cfg.goTemplateOpts = append(cfg.goTemplateOpts, options...)
	}
}

// WithThemes replaces the bundled theme set.
func WithThemes(themes *Themes) Option {
	return func(cfg *config) {
		if themes != nil {
			cfg.themes = themes
		}
	}
}

// WithVariant selects the default theme variant ("" or "dark").
func WithVariant(variant string) Option {
	return func(cfg *config) {
		cfg.variant = variant
	}
}

// WithAssetPrefix sets the URL prefix static assets are served under.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetPrefix = prefix
	}
}

// Renderer produces the landing page, the signup modal and toasts.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	themes    *Themes
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	themes := cfg.themes
	if themes == nil {
		var err error
		themes, err = NewThemes(cfg.variant, DefaultManifest(cfg.assetPrefix))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure themes: %w", err)
		}
	}

	engine := cfg.templateRenderer
	if engine == nil {
		var err error
		if cfg.goTemplate {
			engine, err = gotemplate.NewLibrary(
				gotemplate.WithFS(cfg.templateFS),
				gotemplate.WithEngineOptions(cfg.goTemplateOpts...),
			)
		} else {
			engine, err = gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		}
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
	}

	return &Renderer{templates: engine, themes: themes}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the full page, or with options.Fragment only the modal (or
// the toast region once the modal is gone).
func (r *Renderer) Render(_ context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	selection, err := r.themes.Select("", options.Variant)
	if err != nil {
		selection, err = r.themes.Select("", "")
		if err != nil {
			return nil, fmt.Errorf("html renderer: select theme: %w", err)
		}
	}
	cfg := RendererConfig(selection)

	data := buildPage(view, options, themeData{
		Name:       cfg.Theme,
		Variant:    cfg.Variant,
		Style:      CSSVarsStyle(cfg.CSSVars),
		Stylesheet: cfg.AssetURL("stylesheet"),
	})

	partial := PartialPage
	if options.Fragment {
		switch {
		case data.Modal != nil:
			partial = PartialModal
		case view.Login:
			partial = PartialLogin
		default:
			partial = PartialToasts
		}
	}
	name, ok := cfg.Partials[partial]
	if !ok {
		return nil, fmt.Errorf("html renderer: theme %q has no %q template", cfg.Theme, partial)
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

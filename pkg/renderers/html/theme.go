package html

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys resolved through the theme manifest.
const (
	PartialPage   = "page"
	PartialModal  = "modal"
	PartialLogin  = "login"
	PartialToasts = "toasts"
)

// DefaultThemeName names the bundled theme.
const DefaultThemeName = "skillswap"

// DefaultManifest returns the bundled light theme plus a dark variant.
func DefaultManifest(assetPrefix string) *theme.Manifest {
	if assetPrefix == "" {
		assetPrefix = "/static"
	}
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand-from":   "#2563eb",
			"brand-to":     "#9333ea",
			"surface":      "#ffffff",
			"surface-page": "#eef2ff",
			"text":         "#111827",
			"text-muted":   "#4b5563",
			"destructive":  "#dc2626",
			"radius":       "0.75rem",
		},
		Templates: map[string]string{
			PartialPage:   "page.tpl",
			PartialModal:  "partials/modal.tpl",
			PartialLogin:  "partials/login.tpl",
			PartialToasts: "partials/toasts.tpl",
		},
		Assets: theme.Assets{
			Prefix: assetPrefix,
			Files: map[string]string{
				"stylesheet": StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface":      "#111827",
					"surface-page": "#030712",
					"text":         "#f9fafb",
					"text-muted":   "#9ca3af",
				},
			},
		},
	}
}

// Themes resolves theme and variant names into renderer configuration. It
// satisfies theme.ThemeSelector.
type Themes struct {
	provider       theme.ThemeProvider
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes registers the manifests with a go-theme registry. The first
// manifest is the default theme.
func NewThemes(defaultVariant string, manifests ...*theme.Manifest) (*Themes, error) {
	if len(manifests) == 0 {
		return nil, errors.New("html: at least one theme manifest is required")
	}
	registry := theme.NewRegistry()
	themes := &Themes{
		provider:       registry,
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("html: register theme %q: %w", manifest.Name, err)
		}
		themes.manifests[manifest.Name] = manifest
		if themes.defaultTheme == "" {
			themes.defaultTheme = manifest.Name
		}
	}
	if themes.defaultTheme == "" {
		return nil, errors.New("html: at least one theme manifest is required")
	}
	if themes.defaultVariant != "" {
		if _, ok := themes.manifests[themes.defaultTheme].Variants[themes.defaultVariant]; !ok {
			return nil, fmt.Errorf("html: theme %q has no variant %q", themes.defaultTheme, themes.defaultVariant)
		}
	}
	return themes, nil
}

// Provider exposes the underlying go-theme registry.
func (t *Themes) Provider() theme.ThemeProvider {
	return t.provider
}

// Select resolves a theme and variant, falling back to the defaults for empty
// names.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = t.defaultTheme
	}
	manifest, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("html: theme %q not registered", name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = t.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("html: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Variants lists the variant names of the default theme.
func (t *Themes) Variants() []string {
	manifest := t.manifests[t.defaultTheme]
	names := make([]string, 0, len(manifest.Variants))
	for name := range manifest.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RendererConfig merges base and variant tokens, partials and assets of a
// selection.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	partials := mergeStrings(manifest.Templates, variant.Templates)
	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

// CSSVarsStyle renders CSS custom properties as a sorted declaration list.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

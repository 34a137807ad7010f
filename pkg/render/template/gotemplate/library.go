package gotemplate

import (
	"errors"
	"fmt"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-skillswap/pkg/render/template"
)

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// NewLibrary builds a github.com/goliatone/go-template engine from the same
// options New accepts. The domid filter is always available; go-template
// brings its own trim.
func NewLibrary(options ...Option) (*gotemplatepkg.Engine, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	funcs := map[string]any{"domid": pongo2.FilterFunction(filterDOMID)}
	for name, fn := range cfg.templateFn {
		if name != "" && fn != nil {
			funcs[name] = fn
		}
	}

	libOpts := []gotemplatepkg.Option{
		gotemplatepkg.WithExtension(cfg.extension),
		gotemplatepkg.WithTemplateFunc(funcs),
	}
	if cfg.baseDir != "" {
		libOpts = append(libOpts, gotemplatepkg.WithBaseDir(cfg.baseDir))
	}
	if cfg.templates != nil {
		libOpts = append(libOpts, gotemplatepkg.WithFS(cfg.templates))
	}
	if len(cfg.globalData) > 0 {
		libOpts = append(libOpts, gotemplatepkg.WithGlobalData(cfg.globalData))
	}
	libOpts = append(libOpts, cfg.engineOpts...)

	engine, err := gotemplatepkg.NewRenderer(libOpts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: configure go-template: %w", err)
	}
	return engine, nil
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-skillswap/pkg/content"
	"github.com/goliatone/go-skillswap/pkg/formschema"
	"github.com/goliatone/go-skillswap/pkg/notify"
	"github.com/goliatone/go-skillswap/pkg/render"
	"github.com/goliatone/go-skillswap/pkg/renderers/html"
	"github.com/goliatone/go-skillswap/pkg/renderers/jsonview"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none
// and content negotiation finds no match.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithLanding replaces the embedded landing copy.
func WithLanding(landing *content.Landing) Option {
	return func(o *Orchestrator) {
		o.landing = landing
	}
}

// WithForm replaces the embedded signup form descriptor.
func WithForm(form *formschema.Form) Option {
	return func(o *Orchestrator) {
		o.form = form
	}
}

// WithHTMLOptions configures the default HTML renderer. Ignored when a
// registry is injected.
func WithHTMLOptions(options ...html.Option) Option {
	return func(o *Orchestrator) {
		o.htmlOptions = append(o.htmlOptions, options...)
	}
}

// Orchestrator renders pages. Missing dependencies are initialised with the
// embedded content and the built-in renderers.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	landing         *content.Landing
	form            *formschema.Form
	catalog         []string
	htmlOptions     []html.Option
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Err reports a failure to initialise the defaults.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Form returns the signup form descriptor.
func (o *Orchestrator) Form() *formschema.Form {
	return o.form
}

// Landing returns the landing copy.
func (o *Orchestrator) Landing() *content.Landing {
	return o.landing
}

// Request describes one page render.
type Request struct {
	// Renderer names the renderer to use. When empty, Accept is negotiated.
	Renderer string
	// Accept is the request's Accept header.
	Accept string
	// Modal is the open signup modal, if any.
	Modal *render.Modal
	// Login shows the login dialog.
	Login bool
	// Notices are shown as toasts.
	Notices []notify.Notice
	// RenderOptions are passed through to the renderer.
	RenderOptions render.RenderOptions
}

// Output is the rendered document and its media type.
type Output struct {
	Body        []byte
	ContentType string
	Renderer    string
}

// Generate builds the view for req and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Output{}, err
	}

	renderer, err := o.rendererFor(req.Renderer, req.Accept)
	if err != nil {
		return Output{}, err
	}

	view := render.View{
		Landing: o.landing,
		Form:    o.form,
		Catalog: o.catalog,
		Modal:   req.Modal,
		Login:   req.Login,
		Notices: req.Notices,
	}
	body, err := renderer.Render(ctx, view, req.RenderOptions)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Output{Body: body, ContentType: renderer.ContentType(), Renderer: renderer.Name()}, nil
}

func (o *Orchestrator) rendererFor(name, accept string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name = strings.TrimSpace(name); name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		return renderer, nil
	}
	if strings.TrimSpace(accept) != "" {
		renderer, err := o.registry.Negotiate(accept)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: negotiate renderer: %w", err)
		}
		return renderer, nil
	}
	renderer, err := o.registry.Get(o.defaultRenderer)
	if err == nil {
		return renderer, nil
	}
	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.landing == nil {
		landing, err := content.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load landing: %w", err)
			return
		}
		o.landing = landing
	}
	if o.form == nil {
		form, err := formschema.Load(context.Background())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load form: %w", err)
			return
		}
		o.form = form
	}
	o.catalog = signup.PopularSkills()

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New(o.htmlOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(jsonview.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

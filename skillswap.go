// Package skillswap assembles the SkillSwap landing page and signup modal.
//
// The root package re-exports the entry points most callers need so they do
// not have to import the individual packages:
//
//	pages := skillswap.NewOrchestrator()
//	out, err := pages.Generate(ctx, orchestrator.Request{})
//
//	form := skillswap.NewSignup(registrar, signup.WithNotifier(sink))
//	outcome, err := form.Submit(ctx)
package skillswap

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-skillswap/pkg/identity"
	"github.com/goliatone/go-skillswap/pkg/notify"
	"github.com/goliatone/go-skillswap/pkg/orchestrator"
	"github.com/goliatone/go-skillswap/pkg/render"
	"github.com/goliatone/go-skillswap/pkg/renderers/html"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

// RenderOptions describes per-request rendering choices.
type RenderOptions = render.RenderOptions

// Notice is a transient toast message.
type Notice = notify.Notice

// NewOrchestrator exposes the page orchestrator constructor.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderLanding renders the landing page with the named renderer. An empty
// name uses the HTML renderer.
func RenderLanding(ctx context.Context, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	out, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{Renderer: rendererName})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// NewSignup opens a signup form bound to registrar.
func NewSignup(registrar identity.Registrar, options ...signup.Option) *signup.Controller {
	return signup.NewController(append([]signup.Option{signup.WithRegistrar(registrar)}, options...)...)
}

// WithThemeVariant selects the HTML theme variant, for example "dark".
func WithThemeVariant(variant string) orchestrator.Option {
	return orchestrator.WithHTMLOptions(html.WithVariant(variant))
}

// EmbeddedTemplates exposes the built-in page templates so callers can extend
// them and pass the result back through html.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet. Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(skillswap.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}

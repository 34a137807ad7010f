package render

import (
	"context"

	"github.com/goliatone/go-skillswap/pkg/content"
	"github.com/goliatone/go-skillswap/pkg/formschema"
	"github.com/goliatone/go-skillswap/pkg/notify"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

// Renderer converts a View into a byte representation (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, options RenderOptions) ([]byte, error)
}

// View is everything a page render needs. Modal is nil when the signup modal
// is closed.
type View struct {
	Landing *content.Landing
	Form    *formschema.Form
	Catalog []string
	Modal   *Modal
	Login   bool
	Notices []notify.Notice
}

// Modal binds one open signup form to the URL its events post to.
type Modal struct {
	ID     string
	Action string
	State  signup.Snapshot
}

// Submitting reports whether the modal is waiting on the identity service.
func (m *Modal) Submitting() bool {
	return m != nil && m.State.Status == signup.StatusInFlight
}

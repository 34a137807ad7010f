package signup

import (
	"log"
	"strings"
	"time"

	"github.com/goliatone/go-skillswap/pkg/identity"
	"github.com/goliatone/go-skillswap/pkg/notify"
)

// Observer receives one call per resolved or discarded submission.
type Observer interface {
	ObserveSubmission(kind OutcomeKind, elapsed time.Duration)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(kind OutcomeKind, elapsed time.Duration)

// ObserveSubmission calls fn.
func (fn ObserverFunc) ObserveSubmission(kind OutcomeKind, elapsed time.Duration) {
	if fn != nil {
		fn(kind, elapsed)
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithRegistrar sets the identity collaborator. Without one every submission
// fails with a transport error.
func WithRegistrar(registrar identity.Registrar) Option {
	return func(c *Controller) {
		if registrar != nil {
			c.registrar = registrar
		}
	}
}

// WithNotifier sets the sink receiving outcome notices.
func WithNotifier(sink notify.Sink) Option {
	return func(c *Controller) {
		if sink != nil {
			c.notifier = sink
		}
	}
}

// WithOrigin sets the application origin; the verification link points at
// its root.
func WithOrigin(origin string) Option {
	return func(c *Controller) {
		c.redirectTo = RedirectTarget(origin)
	}
}

// WithLogger overrides the logger used for transport failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithErrorReporter forwards transport failures to an error tracker.
func WithErrorReporter(report func(error)) Option {
	return func(c *Controller) {
		c.report = report
	}
}

// WithObserver attaches a submission observer, typically metrics.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// WithOnClose registers a hook run once, outside the lock, when the form
// closes for any reason.
func WithOnClose(fn func()) Option {
	return func(c *Controller) {
		if fn != nil {
			c.onClose = append(c.onClose, fn)
		}
	}
}

// WithRequestIDs overrides the request ID generator.
func WithRequestIDs(next func() string) Option {
	return func(c *Controller) {
		if next != nil {
			c.nextID = next
		}
	}
}

// RedirectTarget returns the origin root used as the email verification
// redirect. An empty origin yields "/".
func RedirectTarget(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/") + "/"
}

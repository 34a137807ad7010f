package signup

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-skillswap/pkg/identity"
	"github.com/goliatone/go-skillswap/pkg/notify"
)

// Controller owns the state of one open signup form. It is safe for
// concurrent use; the lock is never held across the registration call.
type Controller struct {
	mu         sync.Mutex
	state      State
	closed     bool
	generation uint64
	cancel     context.CancelFunc

	registrar  identity.Registrar
	notifier   notify.Sink
	redirectTo string
	logger     *log.Logger
	report     func(error)
	observer   Observer
	onClose    []func()
	nextID     func() string
}

// NewController returns a controller for a freshly opened form.
func NewController(options ...Option) *Controller {
	c := &Controller{
		registrar:  identity.Unavailable(),
		notifier:   notify.Discard(),
		redirectTo: RedirectTarget(""),
		logger:     log.Default(),
		nextID:     uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Snapshot is a read-only copy of the form state for rendering.
type Snapshot struct {
	Fields        Fields   `json:"fields"`
	Skills        []string `json:"skills"`
	PendingSkill  string   `json:"pendingSkill"`
	ShowPassword  bool     `json:"showPassword"`
	Status        Status   `json:"status"`
	Editable      bool     `json:"editable"`
	CanAddPending bool     `json:"canAddPending"`
	Closed        bool     `json:"closed"`
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Fields:        c.state.Fields,
		Skills:        c.state.Skills.Values(),
		PendingSkill:  c.state.PendingSkill,
		ShowPassword:  c.state.ShowPassword,
		Status:        c.state.Status,
		Editable:      !c.closed && c.state.Editable(),
		CanAddPending: !c.closed && c.state.CanAddPending(),
		Closed:        c.closed,
	}
}

// Status returns the submission status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Status
}

// Closed reports whether the form was closed.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// CanAddPending reports whether CommitPendingSkill would be accepted.
func (c *Controller) CanAddPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.state.CanAddPending()
}

// SetField overwrites one text field.
func (c *Controller) SetField(name FieldName, value string) error {
	return c.mutate(func(s State) (State, error) {
		return s.SetField(name, value)
	})
}

// SetFields applies several field edits atomically: either all are applied or
// none is.
func (c *Controller) SetFields(values map[FieldName]string) error {
	return c.mutate(func(s State) (State, error) {
		for name, value := range values {
			var err error
			if s, err = s.SetField(name, value); err != nil {
				return s, err
			}
		}
		return s, nil
	})
}

// SetPendingSkill replaces the scratch skill input.
func (c *Controller) SetPendingSkill(value string) error {
	return c.mutate(func(s State) (State, error) {
		return s.SetPendingSkill(value), nil
	})
}

// AddSkill adds a free-typed skill. It reports whether the set changed.
func (c *Controller) AddSkill(candidate string) (bool, error) {
	var added bool
	err := c.mutate(func(s State) (State, error) {
		var next State
		next, added = s.AddSkill(candidate)
		return next, nil
	})
	return added, err
}

// CommitPendingSkill adds the pending input, the Enter key behaviour.
func (c *Controller) CommitPendingSkill() (bool, error) {
	var added bool
	err := c.mutate(func(s State) (State, error) {
		var next State
		next, added = s.CommitPendingSkill()
		return next, nil
	})
	return added, err
}

// AddFromCatalog adds a popular skill. Picking one already selected is a
// no-op.
func (c *Controller) AddFromCatalog(skill string) (bool, error) {
	var added bool
	err := c.mutate(func(s State) (State, error) {
		var (
			next State
			err  error
		)
		next, added, err = s.AddFromCatalog(skill)
		return next, err
	})
	return added, err
}

// RemoveSkill drops a selected skill.
func (c *Controller) RemoveSkill(skill string) (bool, error) {
	var removed bool
	err := c.mutate(func(s State) (State, error) {
		var next State
		next, removed = s.RemoveSkill(skill)
		return next, nil
	})
	return removed, err
}

// TogglePassword flips password visibility.
func (c *Controller) TogglePassword() error {
	return c.mutate(func(s State) (State, error) {
		return s.TogglePassword(), nil
	})
}

func (c *Controller) mutate(fn func(State) (State, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if !c.state.Editable() {
		return ErrSubmissionInFlight
	}
	next, err := fn(c.state)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// Submit sends the registration and waits for it to resolve. A second call
// while one is outstanding returns ErrSubmissionInFlight without reaching the
// registrar. If the form is closed before the registrar answers, the request
// context is cancelled, no notice is emitted and ErrClosed is returned.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Outcome{}, ErrClosed
	}
	if c.state.Status != StatusIdle {
		c.mu.Unlock()
		return Outcome{}, ErrSubmissionInFlight
	}
	c.state.Status = StatusInFlight
	c.generation++
	generation := c.generation
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	reg := c.registrationLocked()
	c.mu.Unlock()
	defer cancel()

	started := time.Now()
	err := c.register(reqCtx, reg)
	elapsed := time.Since(started)

	c.mu.Lock()
	if c.closed || c.generation != generation {
		c.mu.Unlock()
		c.logger.Printf("[signup] request %s resolved after close, discarded", reg.RequestID)
		c.observe(OutcomeDiscarded, elapsed)
		return Outcome{}, ErrClosed
	}
	c.cancel = nil
	outcome := Resolve(err)
	c.state.Status = outcome.Status
	c.mu.Unlock()

	if outcome.Kind() == OutcomeTransport {
		c.logger.Printf("[signup] request %s failed: %v", reg.RequestID, err)
		if c.report != nil {
			c.report(outcome.Err)
		}
	}

	c.notifier.Notify(context.WithoutCancel(ctx), outcome.Notice)

	if outcome.Status == StatusSucceeded {
		c.close(StatusSucceeded)
	} else {
		c.mu.Lock()
		if !c.closed && c.generation == generation {
			c.state.Status = StatusIdle
		}
		c.mu.Unlock()
	}

	c.observe(outcome.Kind(), elapsed)
	return outcome, nil
}

// Close discards the form. An outstanding request is cancelled and its result
// ignored. Calling Close more than once is a no-op.
func (c *Controller) Close() {
	c.close(StatusIdle)
}

func (c *Controller) close(final Status) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.generation++
	cancel := c.cancel
	c.cancel = nil
	c.state = State{Status: final}
	hooks := c.onClose
	c.onClose = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, hook := range hooks {
		hook()
	}
}

func (c *Controller) registrationLocked() identity.Registration {
	f := c.state.Fields
	return identity.Registration{
		Email:      f.Email,
		Password:   f.Password,
		RedirectTo: c.redirectTo,
		Profile: identity.Profile{
			FirstName: f.FirstName,
			LastName:  f.LastName,
			Bio:       f.Bio,
			Skills:    c.state.Skills.Values(),
		},
		RequestID: c.nextID(),
	}
}

func (c *Controller) register(ctx context.Context, reg identity.Registration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("signup: registrar panic: %v", r)
		}
	}()
	return c.registrar.Register(ctx, reg)
}

func (c *Controller) observe(kind OutcomeKind, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveSubmission(kind, elapsed)
	}
}

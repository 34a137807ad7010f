// Package modal keeps the signup forms that are currently open in browsers.
// Each open modal owns one signup.Controller and a notice recorder the
// handler drains into the next response.
package modal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-skillswap/pkg/notify"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

// DefaultTTL is how long an untouched modal survives before a sweep.
const DefaultTTL = 30 * time.Minute

// Instance is one open signup modal.
type Instance struct {
	ID         string
	Controller *signup.Controller
	Notices    *notify.Recorder
}

type entry struct {
	instance *Instance
	lastSeen time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the idle time after which Sweep closes an instance.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDs overrides the instance ID generator.
func WithIDs(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.newID = next
		}
	}
}

// WithControllerOptions applies options to every controller the store opens.
// The store installs its own notifier and close hook after them.
func WithControllerOptions(options ...signup.Option) Option {
	return func(s *Store) {
		s.controllerOpts = append(s.controllerOpts, options...)
	}
}

// WithSizeObserver is called with the number of open instances after every
// change.
func WithSizeObserver(fn func(open int)) Option {
	return func(s *Store) {
		s.observeSize = fn
	}
}

// Store holds open instances in memory. It is safe for concurrent use.
type Store struct {
	mu             sync.Mutex
	instances      map[string]*entry
	ttl            time.Duration
	now            func() time.Time
	newID          func() string
	controllerOpts []signup.Option
	observeSize    func(open int)
}

// New constructs an empty store.
func New(options ...Option) *Store {
	s := &Store{
		instances: make(map[string]*entry),
		ttl:       DefaultTTL,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Open creates a fresh controller under a new random ID. Nothing carries
// over from earlier instances.
func (s *Store) Open() *Instance {
	id := s.newID()
	recorder := notify.NewRecorder()

	opts := make([]signup.Option, 0, len(s.controllerOpts)+2)
	opts = append(opts, s.controllerOpts...)
	opts = append(opts,
		signup.WithNotifier(recorder),
		signup.WithOnClose(func() { s.forget(id) }),
	)
	instance := &Instance{
		ID:         id,
		Controller: signup.NewController(opts...),
		Notices:    recorder,
	}

	s.mu.Lock()
	s.instances[id] = &entry{instance: instance, lastSeen: s.now()}
	size := len(s.instances)
	s.mu.Unlock()

	s.report(size)
	return instance
}

// Get returns the instance and marks it as recently used.
func (s *Store) Get(id string) (*Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.instances[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.instance, true
}

// Remove closes the instance's controller, cancelling any outstanding
// request, and drops it from the store.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	e, ok := s.instances[id]
	if ok {
		delete(s.instances, id)
	}
	size := len(s.instances)
	s.mu.Unlock()

	if !ok {
		return
	}
	s.report(size)
	e.instance.Controller.Close()
}

// Sweep closes every instance idle for longer than the TTL and returns how
// many were closed.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*Instance
	for id, e := range s.instances {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.instance)
			delete(s.instances, id)
		}
	}
	size := len(s.instances)
	s.mu.Unlock()

	if len(expired) > 0 {
		s.report(size)
	}
	for _, instance := range expired {
		instance.Controller.Close()
	}
	return len(expired)
}

// Run sweeps on every tick until ctx is done, then closes everything left.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Len reports how many instances are open.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

func (s *Store) forget(id string) {
	s.mu.Lock()
	_, ok := s.instances[id]
	delete(s.instances, id)
	size := len(s.instances)
	s.mu.Unlock()
	if ok {
		s.report(size)
	}
}

func (s *Store) closeAll() {
	s.mu.Lock()
	all := make([]*Instance, 0, len(s.instances))
	for id, e := range s.instances {
		all = append(all, e.instance)
		delete(s.instances, id)
	}
	s.mu.Unlock()

	s.report(0)
	for _, instance := range all {
		instance.Controller.Close()
	}
}

func (s *Store) report(size int) {
	if s.observeSize != nil {
		s.observeSize(size)
	}
}

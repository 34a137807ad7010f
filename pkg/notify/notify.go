package notify

import (
	"context"
	"strings"
	"sync"
)

// Severity selects how a notice is presented.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notice is a single fire-and-forget message shown to the user.
type Notice struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// IsZero reports whether the notice carries no text.
func (n Notice) IsZero() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Description) == ""
}

// Destructive reports whether the notice describes a failure.
func (n Notice) Destructive() bool {
	return n.Severity == SeverityDestructive
}

// Sink receives notices. Implementations must not block the caller for long;
// there is no return value because nothing downstream consumes one.
type Sink interface {
	Notify(ctx context.Context, notice Notice)
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(ctx context.Context, notice Notice)

// Notify calls fn.
func (fn SinkFunc) Notify(ctx context.Context, notice Notice) {
	if fn != nil {
		fn(ctx, notice)
	}
}

// Discard returns a sink that drops every notice.
func Discard() Sink {
	return SinkFunc(func(context.Context, Notice) {})
}

// Multi fans a notice out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return SinkFunc(func(ctx context.Context, notice Notice) {
		for _, sink := range filtered {
			sink.Notify(ctx, notice)
		}
	})
}

// Recorder keeps notices in memory until drained. The web modal uses one per
// open instance so the response that triggered a notice can display it.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// NewRecorder constructs an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify appends the notice.
func (r *Recorder) Notify(_ context.Context, notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

// Notices returns a copy of every recorded notice.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Drain returns and clears the recorded notices.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

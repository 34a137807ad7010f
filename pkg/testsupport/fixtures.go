// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/goliatone/go-skillswap/pkg/identity"
)

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

// QuietLogger discards everything written to it.
func QuietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// ScriptedRegistrar answers registrations with queued errors (nil means
// success) and records every call. Once the script is exhausted it succeeds.
type ScriptedRegistrar struct {
	mu     sync.Mutex
	script []error
	calls  []identity.Registration
}

// NewScriptedRegistrar queues results in call order.
func NewScriptedRegistrar(results ...error) *ScriptedRegistrar {
	return &ScriptedRegistrar{script: results}
}

// Register records reg and pops the next scripted result.
func (s *ScriptedRegistrar) Register(ctx context.Context, reg identity.Registration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, reg)
	if len(s.script) == 0 {
		return nil
	}
	next := s.script[0]
	s.script = s.script[1:]
	return next
}

// Calls returns the recorded registrations.
func (s *ScriptedRegistrar) Calls() []identity.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]identity.Registration(nil), s.calls...)
}

// GatedRegistrar blocks every registration until Release is called or the
// request context ends. Started receives each registration as it arrives.
type GatedRegistrar struct {
	Started chan identity.Registration
	release chan error
}

// NewGatedRegistrar constructs a registrar with buffered channels.
func NewGatedRegistrar() *GatedRegistrar {
	return &GatedRegistrar{
		Started: make(chan identity.Registration, 8),
		release: make(chan error, 8),
	}
}

// Register blocks until released or cancelled.
func (g *GatedRegistrar) Register(ctx context.Context, reg identity.Registration) error {
	g.Started <- reg
	select {
	case err := <-g.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release resolves one pending registration with err.
func (g *GatedRegistrar) Release(err error) {
	g.release <- err
}

package identity

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MinPasswordLength matches the default policy of hosted auth services.
const MinPasswordLength = 6

const (
	msgAlreadyRegistered = "User already registered"
	msgWeakPassword      = "Password should be at least 6 characters"
	msgMissingEmail      = "Unable to validate email address: invalid format"
)

// MemoryOption configures a MemoryRegistrar.
type MemoryOption func(*MemoryRegistrar)

// WithLatency delays every registration, honouring cancellation.
func WithLatency(d time.Duration) MemoryOption {
	return func(m *MemoryRegistrar) {
		if d > 0 {
			m.latency = d
		}
	}
}

// MemoryRegistrar is a local stand-in for the hosted service, used by the
// development server and tests. Accounts live only in process memory.
type MemoryRegistrar struct {
	mu       sync.Mutex
	accounts map[string]Registration
	latency  time.Duration
}

var _ Registrar = (*MemoryRegistrar)(nil)

// NewMemoryRegistrar constructs an empty registrar.
func NewMemoryRegistrar(options ...MemoryOption) *MemoryRegistrar {
	m := &MemoryRegistrar{accounts: make(map[string]Registration)}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Register stores the account or rejects it the way the hosted service would.
func (m *MemoryRegistrar) Register(ctx context.Context, reg Registration) error {
	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	key := strings.ToLower(strings.TrimSpace(reg.Email))
	if key == "" || !strings.Contains(key, "@") {
		return &DomainError{Message: msgMissingEmail, Code: "email_address_invalid", Status: 400}
	}
	if len(reg.Password) < MinPasswordLength {
		return &DomainError{Message: msgWeakPassword, Code: "weak_password", Status: 422}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[key]; exists {
		return &DomainError{Message: msgAlreadyRegistered, Code: "user_already_exists", Status: 422}
	}
	stored := reg
	stored.Password = ""
	stored.Profile.Skills = append([]string(nil), reg.Profile.Skills...)
	m.accounts[key] = stored
	return nil
}

// Lookup returns the stored registration (without password) for email.
func (m *MemoryRegistrar) Lookup(email string) (Registration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.accounts[strings.ToLower(strings.TrimSpace(email))]
	return reg, ok
}

// Len reports how many accounts were registered.
func (m *MemoryRegistrar) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

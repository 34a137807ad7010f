package identity

import (
	"context"
	"errors"
)

// Registrar is the one operation consumed from the hosted identity service.
// A nil error means the account was created. A *DomainError means the
// service rejected the registration for a business reason; any other error is
// a transport failure.
type Registrar interface {
	Register(ctx context.Context, reg Registration) error
}

// RegistrarFunc adapts a function into a Registrar.
type RegistrarFunc func(ctx context.Context, reg Registration) error

// Register calls fn.
func (fn RegistrarFunc) Register(ctx context.Context, reg Registration) error {
	return fn(ctx, reg)
}

// Registration is the payload handed to the identity service.
type Registration struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	RedirectTo string  `json:"redirect_to"`
	Profile    Profile `json:"profile"`
	// RequestID correlates log lines with the outbound call.
	RequestID string `json:"-"`
}

// Profile is the metadata bag persisted by the identity service alongside the
// account. It is forwarded verbatim.
type Profile struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Bio       string   `json:"bio"`
	Skills    []string `json:"skills"`
}

// DomainError is a business rejection reported by the identity service, for
// example a duplicate email or a weak password. Message is shown to the user
// unmodified.
type DomainError struct {
	Message string
	Code    string
	Status  int
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NewDomainError builds a DomainError carrying message verbatim.
func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// AsDomainError unwraps err into a *DomainError.
func AsDomainError(err error) (*DomainError, bool) {
	var domain *DomainError
	if errors.As(err, &domain) && domain != nil {
		return domain, true
	}
	return nil, false
}

// ErrUnavailable is returned when no identity service is configured.
var ErrUnavailable = errors.New("identity: registrar is not configured")

type unavailableRegistrar struct{}

// Unavailable returns a Registrar that always fails with ErrUnavailable.
func Unavailable() Registrar {
	return unavailableRegistrar{}
}

func (unavailableRegistrar) Register(context.Context, Registration) error {
	return ErrUnavailable
}

package signup

import (
	"errors"

	"github.com/goliatone/go-skillswap/pkg/identity"
	"github.com/goliatone/go-skillswap/pkg/notify"
)

const (
	errorTitle      = "Signup Error"
	successTitle    = "Success"
	fallbackMessage = "An unexpected error occurred"
	successMessage  = "Account created successfully! Please check your email to verify your account."
)

// OutcomeKind classifies how a submission resolved.
type OutcomeKind string

const (
	OutcomeSuccess   OutcomeKind = "success"
	OutcomeDomain    OutcomeKind = "domain_error"
	OutcomeTransport OutcomeKind = "transport_error"
	// OutcomeDiscarded marks a resolution that arrived after the form closed.
	OutcomeDiscarded OutcomeKind = "discarded"
)

// Outcome is the result of one awaited Submit call.
type Outcome struct {
	Status Status
	Notice notify.Notice
	// Err is nil on success, a *identity.DomainError for business rejections
	// and a *TransportError otherwise.
	Err error
}

// Kind reports the outcome classification.
func (o Outcome) Kind() OutcomeKind {
	switch {
	case o.Status == StatusSucceeded:
		return OutcomeSuccess
	case o.Err == nil:
		return OutcomeDiscarded
	}
	var transport *TransportError
	if errors.As(o.Err, &transport) {
		return OutcomeTransport
	}
	if _, ok := identity.AsDomainError(o.Err); ok {
		return OutcomeDomain
	}
	return OutcomeTransport
}

// Resolve maps the registrar result onto an outcome. Domain errors carry their
// message verbatim and stay domain outcomes even when the message is empty,
// in which case the notice falls back to the generic text. Every other error
// becomes a transport outcome.
func Resolve(err error) Outcome {
	if err == nil {
		return Outcome{
			Status: StatusSucceeded,
			Notice: notify.Notice{Title: successTitle, Description: successMessage, Severity: notify.SeverityDefault},
		}
	}
	if domain, ok := identity.AsDomainError(err); ok {
		description := domain.Message
		if description == "" {
			description = fallbackMessage
		}
		return Outcome{
			Status: StatusFailed,
			Notice: notify.Notice{Title: errorTitle, Description: description, Severity: notify.SeverityDestructive},
			Err:    domain,
		}
	}
	return Outcome{
		Status: StatusFailed,
		Notice: notify.Notice{Title: errorTitle, Description: fallbackMessage, Severity: notify.SeverityDestructive},
		Err:    &TransportError{Cause: err},
	}
}

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-skillswap/pkg/formschema"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

// Issue represents one failed field constraint.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result captures the outcome of checking a whole form.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// FieldError is returned by Checker.Field.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Checker applies the constraints a browser enforces natively on the signup
// inputs (required, type=email, minlength) to values collected elsewhere,
// such as the terminal flow. It does not add rules of its own.
type Checker struct {
	validate *validator.Validate
}

var (
	defaultOnce    sync.Once
	defaultChecker *Checker
)

// NewChecker constructs a checker.
func NewChecker() *Checker {
	return &Checker{validate: validator.New()}
}

// Default returns a process-wide checker.
func Default() *Checker {
	defaultOnce.Do(func() {
		defaultChecker = NewChecker()
	})
	return defaultChecker
}

// Tags returns the validator tag list equivalent to the native constraints of
// field. An empty string means the field has no constraints.
func Tags(field formschema.Field) string {
	var tags []string
	if field.Required {
		tags = append(tags, "required")
	} else {
		tags = append(tags, "omitempty")
	}
	if field.InputType == formschema.InputEmail {
		tags = append(tags, "email")
	}
	if field.MinLength > 0 {
		tags = append(tags, "min="+strconv.Itoa(field.MinLength))
	}
	if len(tags) == 1 && tags[0] == "omitempty" {
		return ""
	}
	return strings.Join(tags, ",")
}

// Field checks one value against the field's native constraints.
func (c *Checker) Field(field formschema.Field, value string) error {
	tags := Tags(field)
	if tags == "" {
		return nil
	}
	err := c.validate.Var(value, tags)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("validation: check %s: %w", field.Name, err)
	}
	first := errs[0]
	return &FieldError{
		Field:   field.Name,
		Tag:     first.Tag(),
		Message: message(field, first),
	}
}

// Form checks every field of form against the collected values.
func (c *Checker) Form(form *formschema.Form, fields signup.Fields) Result {
	result := Result{Valid: true}
	if form == nil {
		return result
	}
	for _, field := range form.Fields {
		err := c.Field(field, fields.Get(signup.FieldName(field.Name)))
		if err == nil {
			continue
		}
		result.Valid = false
		result.Issues = append(result.Issues, Issue{Field: field.Name, Message: err.Error()})
	}
	return result
}

func message(field formschema.Field, fe validator.FieldError) string {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = field.Name
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
	}
}

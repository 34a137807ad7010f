package tui

import (
	"io"

	"github.com/goliatone/go-skillswap/pkg/validation"
)

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix string
}

// Option configures the signup flow.
type Option func(*Flow)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Flow) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints info lines.
func WithOutput(out io.Writer) Option {
	return func(f *Flow) {
		f.out = out
	}
}

// WithChecker replaces the native constraint checker applied to answers.
func WithChecker(checker *validation.Checker) Option {
	return func(f *Flow) {
		if checker != nil {
			f.checker = checker
		}
	}
}

// WithMaxAttempts caps how many submissions the flow makes before giving up.
// Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(f *Flow) {
		if n >= 0 {
			f.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Flow) {
		f.theme = theme
	}
}

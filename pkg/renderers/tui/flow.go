// Package tui drives the signup controller from an interactive terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goliatone/go-skillswap/pkg/formschema"
	"github.com/goliatone/go-skillswap/pkg/signup"
	"github.com/goliatone/go-skillswap/pkg/validation"
)

const (
	retryEdit = iota
	retrySame
	retryQuit
)

var retryOptions = []string{
	"Edit my answers and try again",
	"Try again with the same answers",
	"Quit",
}

// Flow prompts for every signup field, submits through the controller and
// offers a retry with the answers preserved when the submission fails.
// Notices are delivered by the controller's own sink.
type Flow struct {
	form        *formschema.Form
	controller  *signup.Controller
	catalog     []string
	driver      PromptDriver
	out         io.Writer
	checker     *validation.Checker
	maxAttempts int
	theme       Theme
}

// New binds a flow to a freshly opened controller.
func New(form *formschema.Form, controller *signup.Controller, options ...Option) (*Flow, error) {
	if form == nil {
		return nil, errors.New("tui: form is required")
	}
	if controller == nil {
		return nil, errors.New("tui: controller is required")
	}
	f := &Flow{
		form:       form,
		controller: controller,
		catalog:    signup.PopularSkills(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(f.out)
	}
	if f.checker == nil {
		f.checker = validation.Default()
	}
	return f, nil
}

// Run collects answers and submits until the account is created, the user
// quits or the attempt limit is reached. The returned outcome is the last
// submission result; a zero outcome means nothing was submitted.
func (f *Flow) Run(ctx context.Context) (signup.Outcome, error) {
	edit := true
	for attempt := 1; ; attempt++ {
		if edit {
			if err := f.collect(ctx); err != nil {
				f.controller.Close()
				return signup.Outcome{}, err
			}
		}

		if err := f.info(ctx, f.summary()); err != nil {
			f.controller.Close()
			return signup.Outcome{}, err
		}
		ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: f.form.SubmitLabel + "?", Default: true})
		if err != nil {
			f.controller.Close()
			return signup.Outcome{}, err
		}
		if !ok {
			f.controller.Close()
			return signup.Outcome{}, ErrDeclined
		}

		if err := f.info(ctx, f.form.SubmittingLabel); err != nil {
			f.controller.Close()
			return signup.Outcome{}, err
		}
		outcome, err := f.controller.Submit(ctx)
		if err != nil {
			return outcome, fmt.Errorf("tui: submit: %w", err)
		}
		if outcome.Status == signup.StatusSucceeded {
			return outcome, nil
		}
		if f.maxAttempts > 0 && attempt >= f.maxAttempts {
			f.controller.Close()
			return outcome, nil
		}

		choice, err := f.driver.Select(ctx, SelectConfig{
			Message:      "Signup failed. What next?",
			Options:      retryOptions,
			DefaultIndex: retryEdit,
		})
		if err != nil {
			f.controller.Close()
			return outcome, err
		}
		switch choice {
		case retryEdit:
			edit = true
		case retrySame:
			edit = false
		default:
			f.controller.Close()
			return outcome, nil
		}
	}
}

func (f *Flow) collect(ctx context.Context) error {
	for _, field := range f.form.Fields {
		name := signup.FieldName(field.Name)
		current := f.controller.Snapshot().Fields.Get(name)

		var (
			value string
			err   error
		)
		switch field.InputType {
		case formschema.InputPassword:
			value, err = f.promptPassword(ctx, field, current)
		case formschema.InputTextarea:
			value, err = f.driver.TextArea(ctx, TextAreaConfig{
				Message: field.Label,
				Default: current,
				Help:    field.Placeholder,
			})
		default:
			value, err = f.driver.Input(ctx, InputConfig{
				Message:   field.Label,
				Default:   current,
				Help:      field.Placeholder,
				Validator: f.fieldValidator(field),
			})
		}
		if err != nil {
			return err
		}
		if err := f.controller.SetField(name, value); err != nil {
			return err
		}
	}
	return f.collectSkills(ctx)
}

func (f *Flow) promptPassword(ctx context.Context, field formschema.Field, current string) (string, error) {
	show := f.controller.Snapshot().ShowPassword
	want, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Show password while typing?", Default: show})
	if err != nil {
		return "", err
	}
	if want != show {
		if err := f.controller.TogglePassword(); err != nil {
			return "", err
		}
	}

	check := f.fieldValidator(field)
	if want {
		return f.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Default:   current,
			Help:      field.Placeholder,
			Validator: check,
		})
	}

	help := field.Placeholder
	if current != "" {
		help = "Leave blank to keep the password you entered"
	}
	value, err := f.driver.Password(ctx, InputConfig{
		Message: field.Label,
		Help:    help,
		Validator: func(s string) error {
			if s == "" && current != "" {
				return nil
			}
			return check(s)
		},
	})
	if err != nil {
		return "", err
	}
	if value == "" {
		return current, nil
	}
	return value, nil
}

func (f *Flow) collectSkills(ctx context.Context) error {
	snap := f.controller.Snapshot()

	var defaults []int
	for i, name := range f.catalog {
		if slices.Contains(snap.Skills, name) {
			defaults = append(defaults, i)
		}
	}
	picked, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  f.form.Skills.CatalogLabel,
		Options:  f.catalog,
		Defaults: defaults,
		PageSize: len(f.catalog),
	})
	if err != nil {
		return err
	}
	for i, name := range f.catalog {
		if slices.Contains(picked, i) {
			if _, err := f.controller.AddFromCatalog(name); err != nil {
				return err
			}
		} else if _, err := f.controller.RemoveSkill(name); err != nil {
			return err
		}
	}

	for {
		value, err := f.driver.Input(ctx, InputConfig{
			Message: f.form.Skills.Label + " (blank to finish)",
			Help:    f.form.Skills.Placeholder,
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			break
		}
		if err := f.controller.SetPendingSkill(value); err != nil {
			return err
		}
		if _, err := f.controller.CommitPendingSkill(); err != nil {
			return err
		}
	}

	var custom []string
	for _, skill := range f.controller.Snapshot().Skills {
		if !signup.IsPopularSkill(skill) {
			custom = append(custom, skill)
		}
	}
	if len(custom) == 0 {
		return nil
	}
	drop, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message: "Remove any of these skills?",
		Options: custom,
	})
	if err != nil {
		return err
	}
	for _, idx := range drop {
		if idx < 0 || idx >= len(custom) {
			continue
		}
		if _, err := f.controller.RemoveSkill(custom[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flow) fieldValidator(field formschema.Field) func(string) error {
	return func(value string) error {
		return f.checker.Field(field, value)
	}
}

func (f *Flow) summary() string {
	snap := f.controller.Snapshot()
	var b strings.Builder
	b.WriteString(f.form.Title)
	for _, field := range f.form.Fields {
		value := snap.Fields.Get(signup.FieldName(field.Name))
		if field.InputType == formschema.InputPassword && !snap.ShowPassword {
			value = strings.Repeat("*", len([]rune(value)))
		}
		fmt.Fprintf(&b, "\n  %s: %s", field.Label, value)
	}
	skills := "(none)"
	if len(snap.Skills) > 0 {
		skills = strings.Join(snap.Skills, ", ")
	}
	fmt.Fprintf(&b, "\n  %s: %s", f.form.Skills.Label, skills)
	return b.String()
}

func (f *Flow) info(ctx context.Context, msg string) error {
	if f.theme.InfoPrefix != "" {
		msg = f.theme.InfoPrefix + " " + msg
	}
	return f.driver.Info(ctx, msg)
}

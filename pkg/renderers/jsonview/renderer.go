// Package jsonview renders the landing view as JSON for API clients and
// scripted tests. Passwords never leave the server.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-skillswap/pkg/formschema"
	"github.com/goliatone/go-skillswap/pkg/notify"
	"github.com/goliatone/go-skillswap/pkg/render"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

// Redacted replaces a non-empty password in rendered output.
const Redacted = "********"

// Option configures the JSON renderer.
type Option func(*Renderer)

// WithIndent pretty prints output using the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer emits a stable JSON document describing the page state.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render encodes the view. With options.Fragment the landing copy is left out.
func (r *Renderer) Render(_ context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	doc := document{
		Catalog: view.Catalog,
		Login:   view.Login,
		Notices: view.Notices,
	}
	if doc.Catalog == nil {
		doc.Catalog = []string{}
	}
	if doc.Notices == nil {
		doc.Notices = []notify.Notice{}
	}
	if !options.Fragment && view.Landing != nil {
		doc.Landing = view.Landing
	}
	if view.Form != nil {
		doc.Form = buildForm(view.Form)
	}
	if view.Modal != nil && !view.Modal.State.Closed {
		doc.Modal = buildModal(view.Modal, options)
	}

	var (
		payload []byte
		err     error
	)
	if r.indent != "" {
		payload, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		payload, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode view: %w", err)
	}
	return payload, nil
}

type document struct {
	Landing any             `json:"landing,omitempty"`
	Form    *formDocument   `json:"form,omitempty"`
	Catalog []string        `json:"catalog"`
	Modal   *modalDocument  `json:"modal"`
	Login   bool            `json:"login"`
	Notices []notify.Notice `json:"notices"`
}

type formDocument struct {
	Title  string          `json:"title"`
	Method string          `json:"method"`
	Path   string          `json:"path"`
	Fields []fieldDocument `json:"fields"`
	Skills string          `json:"skills"`
}

type fieldDocument struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	Required  bool   `json:"required"`
	MinLength int    `json:"minLength,omitempty"`
}

type modalDocument struct {
	ID            string               `json:"id"`
	Action        string               `json:"action"`
	Status        signup.Status        `json:"status"`
	Editable      bool                 `json:"editable"`
	CanAddPending bool                 `json:"canAddPending"`
	ShowPassword  bool                 `json:"showPassword"`
	Fields        signup.Fields        `json:"fields"`
	Skills        []string             `json:"skills"`
	PendingSkill  string               `json:"pendingSkill"`
	Hidden        []render.HiddenField `json:"hidden"`
}

func buildForm(form *formschema.Form) *formDocument {
	doc := &formDocument{
		Title:  form.Title,
		Method: form.Method,
		Path:   form.Path,
		Skills: form.Skills.Label,
		Fields: make([]fieldDocument, 0, len(form.Fields)),
	}
	for _, field := range form.Fields {
		doc.Fields = append(doc.Fields, fieldDocument{
			Name:      field.Name,
			Label:     field.Label,
			Type:      field.InputType,
			Required:  field.Required,
			MinLength: field.MinLength,
		})
	}
	return doc
}

func buildModal(modal *render.Modal, options render.RenderOptions) *modalDocument {
	state := modal.State
	fields := state.Fields
	if fields.Password != "" {
		fields.Password = Redacted
	}
	skills := state.Skills
	if skills == nil {
		skills = []string{}
	}
	return &modalDocument{
		ID:            modal.ID,
		Action:        modal.Action,
		Status:        state.Status,
		Editable:      state.Editable,
		CanAddPending: state.CanAddPending,
		ShowPassword:  state.ShowPassword,
		Fields:        fields,
		Skills:        skills,
		PendingSkill:  state.PendingSkill,
		Hidden: render.SortedHiddenFields(
			render.MergeHiddenFields(options.Hidden, render.InstanceField(modal.ID)),
		),
	}
}

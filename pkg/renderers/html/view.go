package html

import (
	"github.com/goliatone/go-skillswap/pkg/content"
	"github.com/goliatone/go-skillswap/pkg/formschema"
	"github.com/goliatone/go-skillswap/pkg/notify"
	"github.com/goliatone/go-skillswap/pkg/render"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

type pageData struct {
	Landing  *content.Landing `json:"landing"`
	Hero     heroData         `json:"hero"`
	Features []featureData    `json:"features"`
	Arrow    string           `json:"arrow"`
	Modal    *modalData       `json:"modal"`
	Login    bool             `json:"login"`
	Toasts   []toastData      `json:"toasts"`
	Theme    themeData        `json:"theme"`
	Fragment bool             `json:"fragment"`
}

type heroData struct {
	Categories []string `json:"categories"`
}

type featureData struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type themeData struct {
	Name       string `json:"name"`
	Variant    string `json:"variant"`
	Style      string `json:"style"`
	Stylesheet string `json:"stylesheet"`
}

type toastData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive"`
}

type modalData struct {
	ID           string               `json:"id"`
	Action       string               `json:"action"`
	Title        string               `json:"title"`
	SubmitLabel  string               `json:"submitLabel"`
	SignInPrompt string               `json:"signInPrompt"`
	SignInLabel  string               `json:"signInLabel"`
	Disabled     bool                 `json:"disabled"`
	Submitting   bool                 `json:"submitting"`
	ShowPassword bool                 `json:"showPassword"`
	Fields       []fieldData          `json:"fields"`
	Skills       skillsData           `json:"skills"`
	Hidden       []render.HiddenField `json:"hidden"`
	ToggleIcon   string               `json:"toggleIcon"`
	ToggleLabel  string               `json:"toggleLabel"`
	AddIcon      string               `json:"addIcon"`
	RemoveIcon   string               `json:"removeIcon"`
}

type fieldData struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Textarea    bool   `json:"textarea"`
	Value       string `json:"value"`
	Required    bool   `json:"required"`
	MinLength   int    `json:"minLength"`
	Placeholder string `json:"placeholder"`
	Icon        string `json:"icon"`
	Rows        int    `json:"rows"`
	Half        bool   `json:"half"`
	Password    bool   `json:"password"`
}

type skillsData struct {
	Label         string     `json:"label"`
	Description   string     `json:"description"`
	Placeholder   string     `json:"placeholder"`
	CatalogLabel  string     `json:"catalogLabel"`
	SelectedLabel string     `json:"selectedLabel"`
	Pending       string     `json:"pending"`
	CanAdd        bool       `json:"canAdd"`
	Selected      []string   `json:"selected"`
	Catalog       []chipData `json:"catalog"`
}

type chipData struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

func buildPage(view render.View, options render.RenderOptions, th themeData) pageData {
	data := pageData{
		Landing:  view.Landing,
		Login:    view.Login,
		Theme:    th,
		Fragment: options.Fragment,
		Arrow:    landingIcon("arrow-right"),
	}
	if view.Landing != nil {
		data.Hero.Categories = view.Landing.HeroCategories()
		for _, item := range view.Landing.Features.Items {
			data.Features = append(data.Features, featureData{
				Icon:        landingIcon(item.Icon),
				Title:       item.Title,
				Description: item.Description,
			})
		}
	}
	for _, notice := range view.Notices {
		if notice.IsZero() {
			continue
		}
		data.Toasts = append(data.Toasts, toastData{
			Title:       notice.Title,
			Description: notice.Description,
			Destructive: notice.Severity == notify.SeverityDestructive,
		})
	}
	if view.Modal != nil && !view.Modal.State.Closed {
		data.Modal = buildModal(view.Modal, view.Form, view.Catalog, options)
	}
	return data
}

func buildModal(modal *render.Modal, form *formschema.Form, catalog []string, options render.RenderOptions) *modalData {
	state := modal.State
	disabled := !state.Editable
	submitting := modal.Submitting()

	data := &modalData{
		ID:           modal.ID,
		Action:       modal.Action,
		Disabled:     disabled,
		Submitting:   submitting,
		ShowPassword: state.ShowPassword,
		Hidden: render.SortedHiddenFields(
			render.MergeHiddenFields(options.Hidden, render.InstanceField(modal.ID)),
		),
	}
	if form != nil {
		data.Title = form.Title
		data.SubmitLabel = form.SubmitLabel
		if submitting && form.SubmittingLabel != "" {
			data.SubmitLabel = form.SubmittingLabel
		}
		data.SignInPrompt = form.SignInPrompt
		data.SignInLabel = form.SignInLabel
		data.AddIcon = form.Icon("plus")
		data.RemoveIcon = form.Icon("x")
		if state.ShowPassword {
			data.ToggleIcon = form.Icon("eyeOff")
			data.ToggleLabel = "Hide password"
		} else {
			data.ToggleIcon = form.Icon("eye")
			data.ToggleLabel = "Show password"
		}

		for _, field := range form.Fields {
			value := state.Fields.Get(signup.FieldName(field.Name))
			inputType := field.InputType
			if inputType == formschema.InputPassword && state.ShowPassword {
				inputType = formschema.InputText
			}
			data.Fields = append(data.Fields, fieldData{
				Name:        field.Name,
				Label:       field.Label,
				Type:        inputType,
				Textarea:    field.InputType == formschema.InputTextarea,
				Value:       value,
				Required:    field.Required,
				MinLength:   field.MinLength,
				Placeholder: field.Placeholder,
				Icon:        field.Icon,
				Rows:        field.Rows,
				Half:        field.Half,
				Password:    field.InputType == formschema.InputPassword,
			})
		}

		data.Skills = skillsData{
			Label:         form.Skills.Label,
			Description:   form.Skills.Description,
			Placeholder:   form.Skills.Placeholder,
			CatalogLabel:  form.Skills.CatalogLabel,
			SelectedLabel: form.Skills.SelectedLabel,
		}
	}

	data.Skills.Pending = state.PendingSkill
	data.Skills.CanAdd = state.CanAddPending
	data.Skills.Selected = state.Skills
	selected := make(map[string]bool, len(state.Skills))
	for _, skill := range state.Skills {
		selected[skill] = true
	}
	for _, name := range catalog {
		data.Skills.Catalog = append(data.Skills.Catalog, chipData{Name: name, Selected: selected[name]})
	}
	return data
}

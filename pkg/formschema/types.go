package formschema

// Input types emitted for Field.InputType.
const (
	InputText     = "text"
	InputEmail    = "email"
	InputPassword = "password"
	InputTextarea = "textarea"
)

// Form is the resolved signup form description.
type Form struct {
	OperationID     string            `json:"operationId"`
	Method          string            `json:"method"`
	Path            string            `json:"path"`
	Title           string            `json:"title"`
	SubmitLabel     string            `json:"submitLabel"`
	SubmittingLabel string            `json:"submittingLabel"`
	SignInPrompt    string            `json:"signInPrompt"`
	SignInLabel     string            `json:"signInLabel"`
	Fields          []Field           `json:"fields"`
	Skills          Skills            `json:"skills"`
	Icons           map[string]string `json:"icons"`
}

// Field describes one text input.
type Field struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Label       string `json:"label"`
	InputType   string `json:"inputType"`
	Required    bool   `json:"required"`
	MinLength   int    `json:"minLength,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Rows        int    `json:"rows,omitempty"`
	Half        bool   `json:"half,omitempty"`
	Order       int    `json:"order"`
}

// Skills carries the copy for the skill picker.
type Skills struct {
	Source        string `json:"source"`
	Label         string `json:"label"`
	Description   string `json:"description"`
	Placeholder   string `json:"placeholder"`
	CatalogLabel  string `json:"catalogLabel"`
	SelectedLabel string `json:"selectedLabel"`
}

// Field returns the field with the given name.
func (f *Form) Field(name string) (Field, bool) {
	if f == nil {
		return Field{}, false
	}
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Icon returns sanitised SVG markup for name, or an empty string.
func (f *Form) Icon(name string) string {
	if f == nil {
		return ""
	}
	return f.Icons[name]
}

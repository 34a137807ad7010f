package formschema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// SignupOperationID names the signup operation inside the OpenAPI document.
const SignupOperationID = "signUp"

const widgetExtension = "x-skillswap-widget"

//go:embed signup.openapi.yaml
var signupDocument []byte

//go:embed signup.ui.yaml
var signupOverlay []byte

// Load builds the signup form from the embedded documents.
func Load(ctx context.Context) (*Form, error) {
	return Parse(ctx, signupDocument, signupOverlay)
}

// LoadFiles builds the signup form from documents on disk. An empty overlay
// path keeps the embedded overlay.
func LoadFiles(ctx context.Context, documentPath, overlayPath string) (*Form, error) {
	document, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, fmt.Errorf("formschema: read document: %w", err)
	}
	overlay := signupOverlay
	if overlayPath != "" {
		if overlay, err = os.ReadFile(overlayPath); err != nil {
			return nil, fmt.Errorf("formschema: read overlay: %w", err)
		}
	}
	return Parse(ctx, document, overlay)
}

// MustLoad is Load for package initialisation; it panics on error.
func MustLoad() *Form {
	form, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return form
}

type overlayFile struct {
	Operation string                  `yaml:"operation"`
	Form      overlayForm             `yaml:"form"`
	Fields    map[string]overlayField `yaml:"fields"`
	Skills    Skills                  `yaml:"skills"`
	Icons     map[string]string       `yaml:"icons"`
}

type overlayForm struct {
	Title           string `yaml:"title"`
	SubmitLabel     string `yaml:"submitLabel"`
	SubmittingLabel string `yaml:"submittingLabel"`
	SignInPrompt    string `yaml:"signInPrompt"`
	SignInLabel     string `yaml:"signInLabel"`
}

type overlayField struct {
	Source      string `yaml:"source"`
	Order       int    `yaml:"order"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
	HelpText    string `yaml:"helpText"`
	Icon        string `yaml:"icon"`
	Rows        int    `yaml:"rows"`
	Half        bool   `yaml:"half"`
}

// Parse resolves the form from an OpenAPI document and a UI overlay. Every
// overlay field must point at a string property of the operation's JSON
// request body.
func Parse(ctx context.Context, document, overlay []byte) (*Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(document))) == 0 {
		return nil, errors.New("formschema: openapi document is empty")
	}

	var ui overlayFile
	if err := yaml.Unmarshal(overlay, &ui); err != nil {
		return nil, fmt.Errorf("formschema: parse overlay: %w", err)
	}
	operationID := strings.TrimSpace(ui.Operation)
	if operationID == "" {
		operationID = SignupOperationID
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("formschema: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("formschema: validate document: %w", err)
	}

	method, path, op := findOperation(spec, operationID)
	if op == nil {
		return nil, fmt.Errorf("formschema: operation %q not found", operationID)
	}
	body, err := requestSchema(op)
	if err != nil {
		return nil, fmt.Errorf("formschema: operation %q: %w", operationID, err)
	}

	form := &Form{
		OperationID:     operationID,
		Method:          method,
		Path:            path,
		Title:           ui.Form.Title,
		SubmitLabel:     ui.Form.SubmitLabel,
		SubmittingLabel: ui.Form.SubmittingLabel,
		SignInPrompt:    ui.Form.SignInPrompt,
		SignInLabel:     ui.Form.SignInLabel,
		Skills:          ui.Skills,
		Icons:           make(map[string]string, len(ui.Icons)),
	}

	for name, raw := range ui.Icons {
		if cleaned := SanitizeIcon(raw); cleaned != "" {
			form.Icons[name] = cleaned
		}
	}

	for name, cfg := range ui.Fields {
		field, err := resolveField(body, name, cfg)
		if err != nil {
			return nil, err
		}
		field.Icon = form.Icons[cfg.Icon]
		form.Fields = append(form.Fields, field)
	}
	sort.SliceStable(form.Fields, func(i, j int) bool {
		if form.Fields[i].Order != form.Fields[j].Order {
			return form.Fields[i].Order < form.Fields[j].Order
		}
		return form.Fields[i].Name < form.Fields[j].Name
	})

	if source := strings.TrimSpace(ui.Skills.Source); source != "" {
		schema, _, err := lookupProperty(body, source)
		if err != nil {
			return nil, fmt.Errorf("formschema: skills: %w", err)
		}
		if schema.Type == nil || !schema.Type.Is(openapi3.TypeArray) {
			return nil, fmt.Errorf("formschema: skills: %q is not an array", source)
		}
	}

	return form, nil
}

func findOperation(spec *openapi3.T, id string) (string, string, *openapi3.Operation) {
	if spec.Paths == nil {
		return "", "", nil
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op != nil && op.OperationID == id {
				return method, path, op
			}
		}
	}
	return "", "", nil
}

func requestSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, errors.New("missing request body")
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("missing application/json schema")
	}
	return media.Schema.Value, nil
}

// lookupProperty walks a dotted path through nested object properties and
// reports whether the leaf is required by its parent.
func lookupProperty(root *openapi3.Schema, path string) (*openapi3.Schema, bool, error) {
	segments := strings.Split(path, ".")
	current := root
	required := false
	for _, segment := range segments {
		if current == nil || current.Properties == nil {
			return nil, false, fmt.Errorf("property %q not found", path)
		}
		ref, ok := current.Properties[segment]
		if !ok || ref == nil || ref.Value == nil {
			return nil, false, fmt.Errorf("property %q not found", path)
		}
		required = containsString(current.Required, segment)
		current = ref.Value
	}
	return current, required, nil
}

func resolveField(body *openapi3.Schema, name string, cfg overlayField) (Field, error) {
	source := strings.TrimSpace(cfg.Source)
	if source == "" {
		source = name
	}
	schema, required, err := lookupProperty(body, source)
	if err != nil {
		return Field{}, fmt.Errorf("formschema: field %s: %w", name, err)
	}
	if schema.Type == nil || !schema.Type.Is(openapi3.TypeString) {
		return Field{}, fmt.Errorf("formschema: field %s: %q is not a string", name, source)
	}

	label := strings.TrimSpace(cfg.Label)
	if label == "" {
		label = name
	}
	field := Field{
		Name:        name,
		Source:      source,
		Label:       label,
		InputType:   inputType(schema),
		Required:    required,
		MinLength:   int(schema.MinLength),
		Placeholder: cfg.Placeholder,
		HelpText:    firstNonEmpty(cfg.HelpText, schema.Description),
		Rows:        cfg.Rows,
		Half:        cfg.Half,
		Order:       cfg.Order,
	}
	if field.InputType == InputTextarea && field.Rows == 0 {
		field.Rows = 3
	}
	return field, nil
}

func inputType(schema *openapi3.Schema) string {
	if widget, ok := schema.Extensions[widgetExtension].(string); ok && widget == InputTextarea {
		return InputTextarea
	}
	switch schema.Format {
	case "email":
		return InputEmail
	case "password":
		return InputPassword
	default:
		return InputText
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

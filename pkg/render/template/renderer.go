package template

import "io"

// TemplateRenderer is the engine contract the HTML renderer depends on. Names
// passed to RenderTemplate are paths relative to the template root, with or
// without the extension.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// Render accepts either inline template content or a template name.
	Render(source string, data any, out ...io.Writer) (string, error)
	RenderString(source string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	// GlobalContext merges data into every render.
	GlobalContext(data any) error
}

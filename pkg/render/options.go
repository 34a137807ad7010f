package render

// RenderOptions describe per-request choices that do not belong to the view.
type RenderOptions struct {
	// Fragment renders only the modal (or the toast region when no modal is
	// open) for partial page swaps.
	Fragment bool
	// Hidden adds hidden inputs to the signup form, keyed by name.
	Hidden map[string]string
	// Variant selects a theme variant; empty uses the renderer default.
	Variant string
}

package template

// TemplateRenderer executes a named template against a view. Names are
// extension-less slash paths such as "page" or "blocks/quote".
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
}

// TemplateFunc adapts a plain function to TemplateRenderer.
type TemplateFunc func(name string, data any) (string, error)

func (f TemplateFunc) RenderTemplate(name string, data any) (string, error) {
	return f(name, data)
}

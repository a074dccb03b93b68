package mouseforms

import (
	internaltemplate "github.com/AjBreidenbach/mouse-forms/internal/template"
	"github.com/AjBreidenbach/mouse-forms/pkg/render"
)

// NewRenderer constructs a template renderer backed by the internal pongo2
// engine while keeping the concrete type hidden from consumers.
func NewRenderer(options ...render.Option) (render.TemplateRenderer, error) {
	cfg := render.NewOptions(options...)
	return internaltemplate.New(cfg)
}

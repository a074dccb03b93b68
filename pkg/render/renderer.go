// Package render declares the template renderer boundary of the compile
// pipeline. The renderer is opaque to the core: given a template location
// and an optional data object it yields markup text with an XML-compatible
// doctype, or fails with an *Error.
package render

import (
	"fmt"

	"github.com/AjBreidenbach/mouse-forms/pkg/markup"
)

// TemplateRenderer resolves a markup.Source into rendered markup text. The
// engine implementation lives under internal/template; construct one through
// the top-level mouseforms.NewRenderer helper.
type TemplateRenderer interface {
	Render(src markup.Source, data map[string]any) (string, error)
}

// Error reports a template rendering failure. It is deliberately distinct
// from the syntactic error taxonomy and from markup-lexing errors so callers
// can tell a bad template apart from a schema violation.
type Error struct {
	Template string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render template %q: %v", e.Template, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

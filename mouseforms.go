// Package mouseforms compiles multilingual form templates into validated
// document trees. A template is rendered to markup once, tokenized once, and
// the resulting token sequence is re-walked per declared language to produce
// one form.Form variant per language.
package mouseforms

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/AjBreidenbach/mouse-forms/pkg/form"
	"github.com/AjBreidenbach/mouse-forms/pkg/markup"
	"github.com/AjBreidenbach/mouse-forms/pkg/parser"
	"github.com/AjBreidenbach/mouse-forms/pkg/render"
)

// Option customises the compiler configuration.
type Option func(*Compiler)

// WithRenderer injects a custom template renderer.
func WithRenderer(renderer render.TemplateRenderer) Option {
	return func(c *Compiler) {
		c.renderer = renderer
	}
}

// WithRenderOptions configures the default renderer built when no explicit
// renderer is injected.
func WithRenderOptions(options ...render.Option) Option {
	return func(c *Compiler) {
		c.renderOptions = append(c.renderOptions, options...)
	}
}

// Compiler coordinates the render → tokenize → build pipeline. The zero
// configuration loads templates relative to the current directory.
type Compiler struct {
	renderer      render.TemplateRenderer
	renderOptions []render.Option
	initialiseErr error
}

// New constructs a Compiler applying any provided options. A missing
// renderer is initialised with the built-in pongo2 engine.
func New(options ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.renderer == nil {
		renderer, err := NewRenderer(c.renderOptions...)
		if err != nil {
			c.initialiseErr = err
			return c
		}
		c.renderer = renderer
	}
	return c
}

// Compile renders the template identified by src, tokenizes the markup, and
// returns one Form per declared language: the default-language variant
// first, then one per alternates entry in declaration order. The object map
// is passed through to the template renderer unexamined; nil is fine.
func (c *Compiler) Compile(ctx context.Context, src markup.Source, object map[string]any) ([]form.Form, error) {
	if ctx == nil {
		return nil, errors.New("mouseforms: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.initialiseErr; err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("mouseforms: source is required")
	}

	rendered, err := c.renderer.Render(src, object)
	if err != nil {
		return nil, err
	}

	return c.CompileDocument(ctx, strings.NewReader(rendered))
}

// CompileDocument bypasses the template renderer for callers that already
// hold rendered markup.
func (c *Compiler) CompileDocument(ctx context.Context, r io.Reader) ([]form.Form, error) {
	if ctx == nil {
		return nil, errors.New("mouseforms: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buffer, err := markup.Tokenize(r)
	if err != nil {
		return nil, err
	}
	return buildVariants(buffer)
}

// buildVariants walks the shared token buffer once per target language. The
// tokenizer ran exactly once; each builder pass is a pure function of the
// buffer and its language, so the passes are independent.
func buildVariants(buffer *markup.TokenBuffer) ([]form.Form, error) {
	forms := make([]form.Form, 0, len(buffer.Alternates)+1)

	built, err := parser.Parse(buffer, buffer.Language)
	if err != nil {
		return nil, err
	}
	forms = append(forms, built)

	for _, alternate := range buffer.Alternates {
		built, err := parser.Parse(buffer, alternate)
		if err != nil {
			return nil, err
		}
		forms = append(forms, built)
	}

	return forms, nil
}

// Compile is a convenience wrapper constructing a one-shot Compiler.
func Compile(ctx context.Context, src markup.Source, options ...Option) ([]form.Form, error) {
	return New(options...).Compile(ctx, src, nil)
}

// CompileWithObject compiles src with a data object forwarded to the
// template renderer.
func CompileWithObject(ctx context.Context, src markup.Source, object map[string]any, options ...Option) ([]form.Form, error) {
	return New(options...).Compile(ctx, src, object)
}

// CompileDocument compiles already-rendered markup, skipping the renderer.
func CompileDocument(ctx context.Context, r io.Reader, options ...Option) ([]form.Form, error) {
	return New(options...).CompileDocument(ctx, r)
}

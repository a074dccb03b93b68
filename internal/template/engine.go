// Package template implements the pongo2-backed template renderer used by
// the compile pipeline. Templates author form markup; the engine evaluates
// them against an optional caller-supplied data object and guarantees the
// output carries an XML doctype so the markup lexer accepts it.
package template

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/AjBreidenbach/mouse-forms/pkg/markup"
	"github.com/AjBreidenbach/mouse-forms/pkg/render"
)

const xmlDoctype = `<?xml version="1.0" encoding="UTF-8"?>`

// Engine satisfies render.TemplateRenderer using a pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	extension   string
}

var _ render.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine from renderer options. At least one template
// location (base dir or fs.FS) is required; callers that only render string
// sources can pass WithBaseDir(".").
func New(cfg render.Options) (*Engine, error) {
	var loaders []pongo2.TemplateLoader
	if cfg.BaseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("template: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.FileSystem != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.FileSystem))
	}
	if len(loaders) == 0 {
		loader, err := pongo2.NewLocalFileSystemLoader(".")
		if err != nil {
			return nil, fmt.Errorf("template: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("mouseforms", loaders...),
		templates:   make(map[string]*pongo2.Template),
		extension:   cfg.Extension,
	}

	if len(cfg.Globals) > 0 {
		if engine.templateSet.Globals == nil {
			engine.templateSet.Globals = make(pongo2.Context)
		}
		engine.templateSet.Globals.Update(pongo2.Context(cfg.Globals))
	}

	return engine, nil
}

// Render evaluates the template identified by src with the supplied data
// object and returns markup text ready for tokenizing.
func (e *Engine) Render(src markup.Source, data map[string]any) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", &render.Error{Err: errors.New("template: engine is nil")}
	}
	if src == nil {
		return "", &render.Error{Err: errors.New("template: source is nil")}
	}

	switch src.Kind() {
	case markup.SourceKindString:
		return e.renderString(src.Location(), data)
	default:
		return e.renderFile(src.Location(), data)
	}
}

func (e *Engine) renderFile(name string, data map[string]any) (string, error) {
	path := name
	if e.extension != "" && !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.getTemplate(path)
	if err != nil {
		return "", &render.Error{Template: path, Err: err}
	}

	e.mu.RLock()
	rendered, err := tmpl.Execute(pongo2.Context(data))
	e.mu.RUnlock()
	if err != nil {
		return "", &render.Error{Template: path, Err: err}
	}

	return ensureDoctype(rendered), nil
}

func (e *Engine) renderString(content string, data map[string]any) (string, error) {
	tmpl, err := e.templateSet.FromString(content)
	if err != nil {
		return "", &render.Error{Template: "inline", Err: err}
	}

	rendered, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", &render.Error{Template: "inline", Err: err}
	}

	return ensureDoctype(rendered), nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, err
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

// ensureDoctype prepends the XML declaration when the template output lacks
// one. The markup lexer requires an XML-compatible document.
func ensureDoctype(rendered string) string {
	if strings.HasPrefix(strings.TrimLeft(rendered, " \t\r\n"), "<?xml") {
		return rendered
	}
	return xmlDoctype + "\n" + rendered
}

package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/AjBreidenbach/mouse-forms/pkg/markup"
	"github.com/AjBreidenbach/mouse-forms/pkg/render"
)

func TestRenderStringSource(t *testing.T) {
	t.Parallel()

	engine, err := New(render.NewOptions(render.WithBaseDir(".")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render(markup.SourceFromString(`<form><title>{{ name }}</title></form>`), map[string]any{"name": "Inline"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<title>Inline</title>") {
		t.Fatalf("substitution failed:\n%s", out)
	}
	if !strings.HasPrefix(out, "<?xml") {
		t.Fatalf("expected an XML declaration prefix:\n%s", out)
	}
}

func TestRenderFileSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "card.xml"), []byte(`<form><title>{{ title }}</title></form>`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := New(render.NewOptions(render.WithBaseDir(dir), render.WithExtension("xml")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render(markup.SourceFromFile("card"), map[string]any{"title": "On Disk"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<title>On Disk</title>") {
		t.Fatalf("substitution failed:\n%s", out)
	}

	// A second render hits the template cache; output must not change.
	again, err := engine.Render(markup.SourceFromFile("card"), map[string]any{"title": "On Disk"})
	if err != nil {
		t.Fatalf("cached render: %v", err)
	}
	if out != again {
		t.Fatalf("cached render diverged:\n%s\nvs\n%s", out, again)
	}
}

func TestRenderFSSource(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"forms/card.xml": &fstest.MapFile{Data: []byte(`<form><title>{{ title }}</title></form>`)},
	}

	engine, err := New(render.NewOptions(render.WithFileSystem(files), render.WithExtension("xml")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render(markup.SourceFromFS("forms/card"), map[string]any{"title": "Embedded"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<title>Embedded</title>") {
		t.Fatalf("substitution failed:\n%s", out)
	}
}

func TestRenderPreservesExistingDeclaration(t *testing.T) {
	t.Parallel()

	engine, err := New(render.NewOptions(render.WithBaseDir(".")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render(markup.SourceFromString(`<?xml version="1.0" encoding="UTF-8"?><form/>`), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(out, "<?xml") != 1 {
		t.Fatalf("declaration duplicated:\n%s", out)
	}
}

func TestMissingTemplateReturnsRenderError(t *testing.T) {
	t.Parallel()

	engine, err := New(render.NewOptions(render.WithBaseDir(t.TempDir())))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	_, err = engine.Render(markup.SourceFromFile("missing"), nil)
	if err == nil {
		t.Fatalf("expected an error for a missing template")
	}
	var renderErr *render.Error
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected a render error, got %T: %v", err, err)
	}
	if renderErr.Template != "missing" {
		t.Fatalf("expected the error to name the template, got %q", renderErr.Template)
	}
}

func TestGlobalsAreAvailable(t *testing.T) {
	t.Parallel()

	engine, err := New(render.NewOptions(
		render.WithBaseDir("."),
		render.WithGlobals(map[string]any{"site": "example"}),
	))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render(markup.SourceFromString(`<form><category>{{ site }}</category></form>`), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<category>example</category>") {
		t.Fatalf("global did not resolve:\n%s", out)
	}
}

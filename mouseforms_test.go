package mouseforms

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AjBreidenbach/mouse-forms/pkg/form"
	"github.com/AjBreidenbach/mouse-forms/pkg/markup"
	"github.com/AjBreidenbach/mouse-forms/pkg/render"
)

const arrivalDocument = `<?xml version="1.0" encoding="UTF-8"?>
<form>
	<language>en</language>
	<alternates>fr</alternates>
	<title lang="en">Arrival Card</title>
	<title lang="fr">Carte d'arrivée</title>
	<category>immigration</category>
	<section name="travel">
		<title lang="en">Travel Details</title>
		<title lang="fr">Détails du voyage</title>
		<field name="purpose" type="select">
			<label lang="en">Purpose of visit</label>
			<label lang="fr">Motif du séjour</label>
			<option name="tourism">
				<label lang="en">Tourism</label>
				<label lang="fr">Tourisme</label>
			</option>
			<option name="business" lang="en">Business</option>
			<option name="affaires" lang="fr">Affaires</option>
		</field>
	</section>
</form>`

func TestCompileDocumentBuildsOneVariantPerLanguage(t *testing.T) {
	t.Parallel()

	forms, err := CompileDocument(context.Background(), strings.NewReader(arrivalDocument))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("expected default + alternate variants, got %d", len(forms))
	}

	en, fr := forms[0], forms[1]
	if en.Language != "en" || fr.Language != "fr" {
		t.Fatalf("variant order mismatch: %q, %q", en.Language, fr.Language)
	}
	if en.Title != "Arrival Card" || fr.Title != "Carte d'arrivée" {
		t.Fatalf("titles mismatch: %q, %q", en.Title, fr.Title)
	}
	if en.Category != "immigration" || fr.Category != "immigration" {
		t.Fatalf("untagged category must reach every variant: %q, %q", en.Category, fr.Category)
	}

	enField := en.Sections[0].Elements[0].Field
	frField := fr.Sections[0].Elements[0].Field
	if enField.Label != "Purpose of visit" || frField.Label != "Motif du séjour" {
		t.Fatalf("field labels mismatch: %q, %q", enField.Label, frField.Label)
	}

	wantEn := []form.FieldOption{
		{Name: "tourism", Label: "Tourism"},
		{Name: "business", Label: "Business"},
	}
	if diff := cmp.Diff(wantEn, enField.Options); diff != "" {
		t.Fatalf("en options mismatch (-want +got):\n%s", diff)
	}

	if len(frField.Options) != 2 || frField.Options[1].Name != "affaires" || frField.Options[1].Label != "Affaires" {
		t.Fatalf("fr options mismatch: %+v", frField.Options)
	}
}

func TestCompileDocumentWithoutLanguageDeclarations(t *testing.T) {
	t.Parallel()

	forms, err := CompileDocument(context.Background(), strings.NewReader(`<form><title>Solo</title></form>`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected a single unrestricted variant, got %d", len(forms))
	}
	if forms[0].Language != "" || forms[0].Title != "Solo" {
		t.Fatalf("variant mismatch: %+v", forms[0])
	}
}

func TestCompileDocumentSurfacesSyntacticErrors(t *testing.T) {
	t.Parallel()

	_, err := CompileDocument(context.Background(), strings.NewReader(`<form><group></group></form>`))
	if !form.IsKind(err, form.ErrOrphanElement) {
		t.Fatalf("expected orphan-element error, got %v", err)
	}
}

func TestCompileRendersStringTemplates(t *testing.T) {
	t.Parallel()

	src := markup.SourceFromString(`<form>
		<title>{{ heading }}</title>
		<section name="s">
			<field name="f" type="text"><label>{{ prompt }}</label></field>
		</section>
	</form>`)

	forms, err := CompileWithObject(context.Background(), src, map[string]any{
		"heading": "Rendered",
		"prompt":  "Your name",
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if forms[0].Title != "Rendered" {
		t.Fatalf("template data did not reach the title: %q", forms[0].Title)
	}
	if got := forms[0].Sections[0].Elements[0].Field.Label; got != "Your name" {
		t.Fatalf("template data did not reach the label: %q", got)
	}
}

func TestCompileRendersFileTemplates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	template := `<form>
	<language>en</language>
	<title>{{ title }}</title>
	<section name="s">
		{% for item in items %}<field name="{{ item }}" type="text"><label>{{ item }}</label></field>
		{% endfor %}
	</section>
</form>`
	if err := os.WriteFile(filepath.Join(dir, "arrival.xml"), []byte(template), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	forms, err := CompileWithObject(context.Background(),
		markup.SourceFromFile("arrival"),
		map[string]any{"title": "From Disk", "items": []string{"first", "second"}},
		WithRenderOptions(render.WithBaseDir(dir), render.WithExtension("xml")),
	)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if forms[0].Title != "From Disk" {
		t.Fatalf("title mismatch: %q", forms[0].Title)
	}
	elements := forms[0].Sections[0].Elements
	if len(elements) != 2 || elements[0].Field.Name != "first" || elements[1].Field.Name != "second" {
		t.Fatalf("loop expansion mismatch: %+v", elements)
	}
}

func TestCompileRequiresContextAndSource(t *testing.T) {
	t.Parallel()

	c := New()
	var missing context.Context
	if _, err := c.Compile(missing, markup.SourceFromString(`<form/>`), nil); err == nil {
		t.Fatalf("expected error for nil context")
	}
	if _, err := c.Compile(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Compile(cancelled, markup.SourceFromString(`<form/>`), nil); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

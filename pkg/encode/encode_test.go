package encode

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/AjBreidenbach/mouse-forms/pkg/form"
)

func sampleForms() []form.Form {
	f := form.NewForm("en")
	f.Title = "Arrival Card"
	f.Instructions = `Fill this in. <script>alert(1)</script><b>Carefully.</b>`
	f.Sections = []form.Section{
		{
			Name:  "travel",
			Title: "Travel",
			Elements: []form.FormElement{
				{Field: &form.Field{
					Name:         "purpose",
					Type:         form.FieldTypeSelect,
					Label:        "Purpose",
					Instructions: `Pick one. <img src=x onerror=alert(1)>`,
					Options: []form.FieldOption{
						{Name: "tourism", Label: "Tourism"},
					},
					Attributes: form.ElementAttributes{Optional: true},
				}},
			},
		},
	}
	return []form.Form{f}
}

func TestJSONShape(t *testing.T) {
	t.Parallel()

	payload, err := JSON(sampleForms())
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("round-trip: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected one form, got %d", len(decoded))
	}
	doc := decoded[0]
	if doc["title"] != "Arrival Card" || doc["language"] != "en" {
		t.Fatalf("document keys mismatch: %v", doc)
	}
	// Default encoding preserves verbatim-captured markup untouched.
	if !strings.Contains(doc["instructions"].(string), "<script>") {
		t.Fatalf("default encoding must not rewrite instructions: %v", doc["instructions"])
	}
}

func TestYAMLShape(t *testing.T) {
	t.Parallel()

	payload, err := YAML(sampleForms())
	if err != nil {
		t.Fatalf("encode yaml: %v", err)
	}

	var decoded []map[string]any
	if err := yaml.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("round-trip: %v", err)
	}
	if decoded[0]["title"] != "Arrival Card" {
		t.Fatalf("document keys mismatch: %v", decoded[0])
	}
}

func TestSanitizedInstructions(t *testing.T) {
	t.Parallel()

	forms := sampleForms()
	before := forms[0].Instructions

	payload, err := JSON(forms, WithSanitizedInstructions())
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}

	text := string(payload)
	if strings.Contains(text, "<script>") || strings.Contains(text, "onerror") {
		t.Fatalf("sanitizer left dangerous markup in output:\n%s", text)
	}
	if !strings.Contains(text, "Carefully.") {
		t.Fatalf("sanitizer dropped benign content:\n%s", text)
	}

	// Sanitization must not mutate the caller's tree.
	if forms[0].Instructions != before {
		t.Fatalf("input form was mutated: %q", forms[0].Instructions)
	}
	if got := forms[0].Sections[0].Elements[0].Field.Instructions; !strings.Contains(got, "onerror") {
		t.Fatalf("input field was mutated: %q", got)
	}
}

func TestEncodingIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := JSON(sampleForms())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := JSON(sampleForms())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Fatalf("encoding diverged (-first +second):\n%s", diff)
	}
}

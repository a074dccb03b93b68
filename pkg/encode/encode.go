// Package encode serializes compiled form trees to interchange formats. The
// default encoding is a pure, lossless field-for-field mapping; sanitization
// is strictly opt-in.
package encode

import (
	"encoding/json"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/AjBreidenbach/mouse-forms/pkg/form"
)

type config struct {
	sanitize bool
	policy   *bluemonday.Policy
}

// Option adjusts how forms are encoded.
type Option func(*config)

// WithSanitizedInstructions runs a bluemonday UGC policy over instructions
// text before encoding, for callers embedding the output in HTML. The
// default leaves verbatim-captured markup untouched.
func WithSanitizedInstructions() Option {
	return func(cfg *config) {
		cfg.sanitize = true
	}
}

// WithPolicy supplies a custom bluemonday policy; implies sanitization.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitize = true
		cfg.policy = policy
	}
}

// JSON encodes forms as an indented JSON array.
func JSON(forms []form.Form, options ...Option) ([]byte, error) {
	payload, err := json.MarshalIndent(prepare(forms, options), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: marshal json: %w", err)
	}
	return payload, nil
}

// YAML encodes forms as a YAML sequence.
func YAML(forms []form.Form, options ...Option) ([]byte, error) {
	payload, err := yaml.Marshal(prepare(forms, options))
	if err != nil {
		return nil, fmt.Errorf("encode: marshal yaml: %w", err)
	}
	return payload, nil
}

func prepare(forms []form.Form, options []Option) []form.Form {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if !cfg.sanitize {
		return forms
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}

	out := make([]form.Form, len(forms))
	for i, f := range forms {
		out[i] = sanitizeForm(f, cfg.policy)
	}
	return out
}

// sanitizeForm deep-copies the slices it rewrites so the caller's tree stays
// untouched.
func sanitizeForm(f form.Form, policy *bluemonday.Policy) form.Form {
	f.Instructions = policy.Sanitize(f.Instructions)

	sections := make([]form.Section, len(f.Sections))
	for i, section := range f.Sections {
		section.Instructions = policy.Sanitize(section.Instructions)

		elements := make([]form.FormElement, len(section.Elements))
		for j, element := range section.Elements {
			switch {
			case element.Group != nil:
				group := *element.Group
				group.Instructions = policy.Sanitize(group.Instructions)
				group.Members = sanitizeFields(group.Members, policy)
				element.Group = &group
			case element.Field != nil:
				field := sanitizeField(*element.Field, policy)
				element.Field = &field
			}
			elements[j] = element
		}
		section.Elements = elements
		sections[i] = section
	}
	f.Sections = sections
	return f
}

func sanitizeFields(fields []form.Field, policy *bluemonday.Policy) []form.Field {
	out := make([]form.Field, len(fields))
	for i, field := range fields {
		out[i] = sanitizeField(field, policy)
	}
	return out
}

func sanitizeField(field form.Field, policy *bluemonday.Policy) form.Field {
	field.Instructions = policy.Sanitize(field.Instructions)
	return field
}

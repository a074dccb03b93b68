package preview

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AjBreidenbach/mouse-forms/pkg/form"
)

// Option customises a Runner.
type Option func(*Runner)

// WithDriver injects a prompt driver, replacing the survey default.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		r.driver = driver
	}
}

// Runner walks a form section by section and prompts for field values.
type Runner struct {
	driver PromptDriver
}

// New constructs a Runner with the survey driver unless overridden.
func New(options ...Option) *Runner {
	r := &Runner{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r
}

// Run prompts for every field of the form in document order and returns the
// collected values keyed by field name.
func (r *Runner) Run(ctx context.Context, f form.Form) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("preview: context is required")
	}

	values := make(map[string]any)

	if f.Title != "" {
		if err := r.driver.Info(ctx, f.Title); err != nil {
			return nil, err
		}
	}

	for _, section := range f.Sections {
		if err := r.announce(ctx, section.Title, section.Name); err != nil {
			return nil, err
		}
		for _, element := range section.Elements {
			switch {
			case element.Group != nil:
				if err := r.runGroup(ctx, *element.Group, values); err != nil {
					return nil, err
				}
			case element.Field != nil:
				if err := r.promptField(ctx, *element.Field, values); err != nil {
					return nil, err
				}
			}
		}
	}

	return values, nil
}

func (r *Runner) runGroup(ctx context.Context, group form.Group, values map[string]any) error {
	if group.Title != "" || group.Name != "" {
		if err := r.announce(ctx, group.Title, group.Name); err != nil {
			return err
		}
	}
	for _, field := range group.Members {
		if err := r.promptField(ctx, field, values); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) announce(ctx context.Context, title, name string) error {
	heading := title
	if heading == "" {
		heading = name
	}
	if heading == "" {
		return nil
	}
	return r.driver.Info(ctx, fmt.Sprintf("-- %s --", heading))
}

func (r *Runner) promptField(ctx context.Context, field form.Field, values map[string]any) error {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	required := !field.Attributes.Optional

	switch field.Type {
	case form.FieldTypeCheckbox:
		value, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Help:    field.Instructions,
		})
		if err != nil {
			return err
		}
		values[field.Name] = value
		return nil

	case form.FieldTypeSelect:
		return r.promptSelect(ctx, field, label, values)

	case form.FieldTypeMultiSelect, form.FieldTypeGrid:
		return r.promptMultiSelect(ctx, field, label, values)

	case form.FieldTypeTextArea:
		value, err := r.driver.Multiline(ctx, InputConfig{
			Message: label,
			Help:    field.Instructions,
		})
		if err != nil {
			return err
		}
		if required && strings.TrimSpace(value) == "" {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s is required", field.Name)); err != nil {
				return err
			}
			return r.promptField(ctx, field, values)
		}
		values[field.Name] = value
		return nil

	case form.FieldTypeNumber:
		return r.promptNumber(ctx, field, label, required, values)

	default:
		return r.promptText(ctx, field, label, required, values)
	}
}

func (r *Runner) promptText(ctx context.Context, field form.Field, label string, required bool, values map[string]any) error {
	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: field.Placeholder,
			Help:    field.Instructions,
		})
		if err != nil {
			return err
		}
		if required && strings.TrimSpace(value) == "" {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s is required", field.Name)); err != nil {
				return err
			}
			continue
		}
		values[field.Name] = value
		return nil
	}
}

func (r *Runner) promptNumber(ctx context.Context, field form.Field, label string, required bool, values map[string]any) error {
	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Help:    field.Instructions,
		})
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			if !required {
				values[field.Name] = nil
				return nil
			}
			if err := r.driver.Info(ctx, fmt.Sprintf("%s is required", field.Name)); err != nil {
				return err
			}
			continue
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s must be a number", field.Name)); err != nil {
				return err
			}
			continue
		}
		values[field.Name] = parsed
		return nil
	}
}

func (r *Runner) promptSelect(ctx context.Context, field form.Field, label string, values map[string]any) error {
	options := optionLabels(field.Options)
	if len(options) == 0 {
		return r.promptText(ctx, field, label, !field.Attributes.Optional, values)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: label,
		Options: options,
		Help:    field.Instructions,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		if err := r.driver.Info(ctx, fmt.Sprintf("invalid selection for %s", field.Name)); err != nil {
			return err
		}
		return r.promptSelect(ctx, field, label, values)
	}
	values[field.Name] = field.Options[idx].Name
	return nil
}

func (r *Runner) promptMultiSelect(ctx context.Context, field form.Field, label string, values map[string]any) error {
	options := optionLabels(field.Options)
	if len(options) == 0 {
		return r.promptText(ctx, field, label, !field.Attributes.Optional, values)
	}
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message: label,
		Options: options,
		Help:    field.Instructions,
	})
	if err != nil {
		return err
	}
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			selected = append(selected, field.Options[idx].Name)
		}
	}
	values[field.Name] = selected
	return nil
}

// optionLabels prefers the resolved label, falling back to the option name.
func optionLabels(options []form.FieldOption) []string {
	out := make([]string, len(options))
	for i, option := range options {
		if option.Label != "" {
			out[i] = option.Label
		} else {
			out[i] = option.Name
		}
	}
	return out
}

// Package parser builds one validated form.Form per target language from a
// shared markup.TokenBuffer. Parse is a pure function of the token sequence
// and the target language: it never mutates the buffer, so variant builds
// for different languages can re-walk the same tokens, sequentially or
// concurrently.
package parser

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/AjBreidenbach/mouse-forms/pkg/form"
	"github.com/AjBreidenbach/mouse-forms/pkg/markup"
)

// Parse walks the token sequence once and returns the Form variant for the
// given target language. An empty language builds the unrestricted variant.
// The first structural or attribute error aborts the build; no partial Form
// is returned.
func Parse(buffer *markup.TokenBuffer, language string) (form.Form, error) {
	b := builder{
		language: language,
		form:     form.NewForm(language),
	}
	if err := b.run(buffer.Tokens); err != nil {
		return form.Form{}, err
	}
	return b.form, nil
}

// builder holds the nested-context state of one build pass. The legal
// nesting combinations are fixed, so one open slot per container kind
// replaces a generic stack.
type builder struct {
	language string
	form     form.Form

	section *form.Section
	group   *form.Group
	field   *form.Field
	option  *form.FieldOption

	// skipOption is set while an option excluded by its own lang attribute
	// is open; its payload and end token are consumed without attaching
	// anything, keeping the sibling option count intact.
	skipOption bool
}

func (b *builder) run(tokens []markup.Token) error {
	for _, token := range tokens {
		if err := b.consume(token); err != nil {
			return err
		}
	}
	return nil
}

// langMatches implements the language filter: a token applies when it is
// unrestricted or tagged with the target language.
func (b *builder) langMatches(lang string) bool {
	return lang == "" || lang == b.language
}

func (b *builder) consume(token markup.Token) error {
	switch token.Kind {
	case markup.TokenUnlisted:
		b.form.Unlisted = true

	case markup.TokenCategory:
		if b.langMatches(token.Lang) {
			b.form.Category = token.Text
		}

	case markup.TokenDescription:
		// A plain description fans out to all three description slots; the
		// meta and dir variants then override individually.
		if b.langMatches(token.Lang) {
			b.form.Description = token.Text
			b.form.MetaDescription = token.Text
			b.form.DirDescription = token.Text
		}

	case markup.TokenMetaDescription:
		if b.langMatches(token.Lang) {
			b.form.MetaDescription = token.Text
		}

	case markup.TokenDirDescription:
		if b.langMatches(token.Lang) {
			b.form.DirDescription = token.Text
		}

	case markup.TokenKeywords:
		if b.langMatches(token.Lang) {
			b.form.Keywords = token.Text
		}

	case markup.TokenInstructions:
		if b.langMatches(token.Lang) {
			b.applyInstructions(token.Text)
		}

	case markup.TokenTitle:
		if b.langMatches(token.Lang) {
			b.applyTitle(token.Text)
		}

	case markup.TokenLabel:
		if b.langMatches(token.Lang) {
			b.applyLabel(token.Text)
		}

	case markup.TokenImplicitLabel:
		b.applyImplicitLabel(token.Text)

	case markup.TokenLink:
		b.form.Link = token.Text

	case markup.TokenScript:
		b.form.EmbeddedScripts = append(b.form.EmbeddedScripts, token.Text)

	case markup.TokenStyle:
		b.form.Stylesheet = token.Text

	case markup.TokenIndex:
		b.form.Index = parseIndex(token.Text)

	case markup.TokenSectionStart:
		return b.openSection(token.Attributes)
	case markup.TokenGroupStart:
		return b.openGroup(token.Attributes)
	case markup.TokenFieldStart:
		return b.openField(token.Attributes)
	case markup.TokenOptionStart:
		return b.openOption(token.Attributes)

	case markup.TokenSectionEnd:
		return b.closeSection()
	case markup.TokenGroupEnd:
		return b.closeGroup()
	case markup.TokenFieldEnd:
		return b.closeField()
	case markup.TokenOptionEnd:
		return b.closeOption()
	}
	return nil
}

// applyInstructions routes instructions text to the nearest open container,
// falling back to the form itself.
func (b *builder) applyInstructions(text string) {
	switch {
	case b.skipOption:
	case b.field != nil:
		b.field.Instructions = text
	case b.group != nil:
		b.group.Instructions = text
	case b.section != nil:
		b.section.Instructions = text
	default:
		b.form.Instructions = text
	}
}

func (b *builder) applyTitle(text string) {
	switch {
	case b.group != nil:
		b.group.Title = text
	case b.section != nil:
		b.section.Title = text
	default:
		b.form.Title = text
	}
}

// applyLabel targets the open option, then the open field. A label with no
// labelable container open is dropped; labels have no form-level home.
func (b *builder) applyLabel(text string) {
	switch {
	case b.skipOption:
	case b.option != nil:
		b.option.Label = text
	case b.field != nil:
		b.field.Label = text
	}
}

// applyImplicitLabel resolves trailing plain text into a label or title, but
// only when no explicit token has claimed the slot already.
func (b *builder) applyImplicitLabel(text string) {
	switch {
	case b.skipOption:
	case b.option != nil:
		if b.option.Label == "" {
			b.option.Label = text
		}
	case b.field != nil:
		if b.field.Label == "" {
			b.field.Label = text
		}
	case b.group != nil:
		if b.group.Title == "" {
			b.group.Title = text
		}
	case b.section != nil:
		if b.section.Title == "" {
			b.section.Title = text
		}
	}
}

func (b *builder) openSection(attrs []xml.Attr) error {
	if b.section != nil {
		return &form.SyntacticError{Kind: form.ErrImproperNesting, Context: "section opened inside a section"}
	}
	section, err := form.SectionFromAttributes(attrs)
	if err != nil {
		return err
	}
	b.section = &section
	return nil
}

func (b *builder) openGroup(attrs []xml.Attr) error {
	if b.group != nil {
		return &form.SyntacticError{Kind: form.ErrImproperNesting, Context: "group opened inside a group"}
	}
	group, err := form.GroupFromAttributes(attrs)
	if err != nil {
		return err
	}
	b.group = &group
	return nil
}

func (b *builder) openField(attrs []xml.Attr) error {
	if b.field != nil {
		return &form.SyntacticError{Kind: form.ErrImproperNesting, Context: "field opened inside a field"}
	}
	field, err := form.FieldFromAttributes(attrs)
	if err != nil {
		return err
	}
	b.field = &field
	return nil
}

func (b *builder) openOption(attrs []xml.Attr) error {
	if b.option != nil {
		return &form.SyntacticError{Kind: form.ErrImproperNesting, Context: "option opened inside an option"}
	}
	if !b.langMatches(normalizeLang(attrValue(attrs, "lang"))) {
		b.skipOption = true
		return nil
	}
	option, err := form.OptionFromAttributes(attrs)
	if err != nil {
		return err
	}
	b.option = &option
	return nil
}

func (b *builder) closeSection() error {
	if b.section == nil {
		return &form.SyntacticError{Kind: form.ErrMismatchedTags, ClosingTag: "section"}
	}
	b.form.Sections = append(b.form.Sections, *b.section)
	b.section = nil
	return nil
}

func (b *builder) closeGroup() error {
	if b.group == nil {
		return &form.SyntacticError{Kind: form.ErrMismatchedTags, ClosingTag: "group"}
	}
	group := *b.group
	b.group = nil
	if b.section == nil {
		return &form.SyntacticError{Kind: form.ErrOrphanElement, Context: "group found without a parent section"}
	}
	b.section.Elements = append(b.section.Elements, form.FormElement{Group: &group})
	return nil
}

func (b *builder) closeField() error {
	if b.field == nil {
		return &form.SyntacticError{Kind: form.ErrMismatchedTags, ClosingTag: "field"}
	}
	field := *b.field
	b.field = nil
	switch {
	case b.group != nil:
		b.group.Members = append(b.group.Members, field)
	case b.section != nil:
		b.section.Elements = append(b.section.Elements, form.FormElement{Field: &field})
	default:
		return &form.SyntacticError{Kind: form.ErrOrphanElement, Context: "field found without a parent section or group"}
	}
	return nil
}

func (b *builder) closeOption() error {
	if b.skipOption {
		b.skipOption = false
		return nil
	}
	if b.option == nil {
		return &form.SyntacticError{Kind: form.ErrMismatchedTags, ClosingTag: "option"}
	}
	option := *b.option
	b.option = nil
	if b.field == nil {
		return &form.SyntacticError{Kind: form.ErrOrphanElement, Context: "option found without a parent field"}
	}
	b.field.Options = append(b.field.Options, option)
	return nil
}

// parseIndex resolves the index payload leniently: unparseable text becomes
// the unset sentinel, never an error.
func parseIndex(text string) uint16 {
	position, err := strconv.ParseUint(strings.TrimSpace(text), 10, 16)
	if err != nil {
		return form.IndexUnset
	}
	return uint16(position)
}

// normalizeLang treats the wildcard tag as "no restriction", mirroring the
// tokenizer's handling of lang attributes on text elements.
func normalizeLang(lang string) string {
	if lang == "*" {
		return ""
	}
	return lang
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

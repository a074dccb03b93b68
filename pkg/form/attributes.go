package form

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// applyShared routes one attribute into the shared ElementAttributes set.
// Unrecognized names are a hard error: the attribute schema is closed.
func (a *ElementAttributes) applyShared(name, value, context string) error {
	switch name {
	case "requires":
		a.Requires = value
	case "optional":
		a.Optional = true
	case "optional-if":
		a.OptionalIf = value
	case "class":
		a.Class = value
	default:
		return &SyntacticError{Kind: ErrInvalidAttribute, Attribute: name, Context: context}
	}
	return nil
}

// SectionFromAttributes validates a section start tag's attribute list and
// returns the empty section it opens.
func SectionFromAttributes(attrs []xml.Attr) (Section, error) {
	section := Section{Elements: []FormElement{}}
	named := false

	for _, attr := range attrs {
		value := attr.Value
		switch attr.Name.Local {
		case "name":
			section.Name = value
			named = true
		default:
			if err := section.Attributes.applyShared(attr.Name.Local, value, "section"); err != nil {
				return Section{}, err
			}
		}
	}
	if !named {
		return Section{}, &SyntacticError{Kind: ErrUnnamedElement, Context: "section must have a name"}
	}
	return section, nil
}

// GroupFromAttributes validates a group start tag's attribute list. Groups
// may be anonymous; an absent type defaults to a row.
func GroupFromAttributes(attrs []xml.Attr) (Group, error) {
	group := Group{Type: GroupTypeRow, Members: []Field{}}

	for _, attr := range attrs {
		value := attr.Value
		switch attr.Name.Local {
		case "name":
			group.Name = value
		case "type":
			groupType, err := ParseGroupType(value)
			if err != nil {
				return Group{}, err
			}
			group.Type = groupType
		default:
			if err := group.Attributes.applyShared(attr.Name.Local, value, "group"); err != nil {
				return Group{}, err
			}
		}
	}
	return group, nil
}

// FieldFromAttributes validates a field start tag's attribute list. Both the
// name and type attributes are required.
func FieldFromAttributes(attrs []xml.Attr) (Field, error) {
	field := Field{Options: []FieldOption{}}
	named := false
	typed := false

	for _, attr := range attrs {
		value := attr.Value
		switch attr.Name.Local {
		case "name":
			field.Name = value
			named = true
		case "type":
			fieldType, err := ParseFieldType(value)
			if err != nil {
				return Field{}, err
			}
			field.Type = fieldType
			typed = true
		case "placeholder":
			field.Placeholder = value
		case "length":
			length, err := strconv.ParseUint(value, 10, 16)
			if err != nil {
				return Field{}, &SyntacticError{
					Kind:      ErrInvalidAttribute,
					Attribute: "length",
					Context:   "field; length should be a whole number",
				}
			}
			field.Length = uint16(length)
		case "rows":
			rows, err := parseRows(value)
			if err != nil {
				return Field{}, err
			}
			field.Rows = rows
		default:
			if err := field.Attributes.applyShared(attr.Name.Local, value, "field"); err != nil {
				return Field{}, err
			}
		}
	}
	if !named {
		return Field{}, &SyntacticError{Kind: ErrUnnamedElement, Context: "field must have a name"}
	}
	if !typed {
		return Field{}, &SyntacticError{Kind: ErrInvalidFieldType, InvalidType: "fields must have a type"}
	}
	return field, nil
}

// OptionFromAttributes validates an option start tag's attribute list. The
// lang attribute is tolerated here; the tree builder consumes it to decide
// whether the option participates in the current variant.
func OptionFromAttributes(attrs []xml.Attr) (FieldOption, error) {
	var option FieldOption
	named := false

	for _, attr := range attrs {
		value := attr.Value
		switch attr.Name.Local {
		case "name":
			option.Name = value
			named = true
		case "lang":
		default:
			if err := option.Attributes.applyShared(attr.Name.Local, value, "option"); err != nil {
				return FieldOption{}, err
			}
		}
	}
	if !named {
		return FieldOption{}, &SyntacticError{Kind: ErrUnnamedElement, Context: "option must have a name"}
	}
	return option, nil
}

// parseRows splits a whitespace-separated rows attribute into grid
// dimensions. An empty or unparseable value is an error, never a default.
func parseRows(value string) ([]uint16, error) {
	cells := strings.Fields(value)
	if len(cells) == 0 {
		return nil, rowsError(value)
	}
	rows := make([]uint16, 0, len(cells))
	for _, cell := range cells {
		dim, err := strconv.ParseUint(cell, 10, 16)
		if err != nil {
			return nil, rowsError(value)
		}
		rows = append(rows, uint16(dim))
	}
	return rows, nil
}

func rowsError(value string) error {
	return &SyntacticError{
		Kind:      ErrInvalidAttribute,
		Attribute: "rows",
		Context:   fmt.Sprintf("could not parse the value of rows attribute: %s", value),
	}
}

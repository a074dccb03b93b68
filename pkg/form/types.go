package form

import "math"

// IndexUnset is the sentinel stored in Form.Index when the document declares
// no explicit ordering position. Forms without an index sort last.
const IndexUnset uint16 = math.MaxUint16

// FieldType enumerates the input kinds a field can declare via its type
// attribute.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeFile        FieldType = "file"
	FieldTypeImage       FieldType = "image"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multi-select"
	FieldTypeTextArea    FieldType = "textarea"
	FieldTypeDate        FieldType = "date"
	FieldTypeEmail       FieldType = "email"
	FieldTypeTel         FieldType = "tel"
	FieldTypeURL         FieldType = "url"
	FieldTypeGrid        FieldType = "grid"
)

// ParseFieldType maps a type attribute value onto the FieldType enumeration.
func ParseFieldType(value string) (FieldType, error) {
	switch FieldType(value) {
	case FieldTypeText, FieldTypeNumber, FieldTypeCheckbox, FieldTypeFile,
		FieldTypeImage, FieldTypeSelect, FieldTypeMultiSelect, FieldTypeTextArea,
		FieldTypeDate, FieldTypeEmail, FieldTypeTel, FieldTypeURL, FieldTypeGrid:
		return FieldType(value), nil
	default:
		return "", &SyntacticError{Kind: ErrInvalidFieldType, InvalidType: value}
	}
}

// GroupType enumerates the layout kinds a group can declare. An absent or
// empty type attribute means GroupTypeRow.
type GroupType string

const (
	GroupTypeRow        GroupType = "row"
	GroupTypeSubsection GroupType = "subsection"
)

// ParseGroupType maps a type attribute value onto the GroupType enumeration.
func ParseGroupType(value string) (GroupType, error) {
	switch GroupType(value) {
	case GroupTypeRow, GroupTypeSubsection:
		return GroupType(value), nil
	case "":
		return GroupTypeRow, nil
	default:
		return "", &SyntacticError{Kind: ErrInvalidGroupType, InvalidType: value}
	}
}

// ElementAttributes carries the attributes shared by sections, groups, fields
// and options: dependency wiring, optionality and presentation class.
type ElementAttributes struct {
	Requires   string `json:"requires,omitempty" yaml:"requires,omitempty"`
	Optional   bool   `json:"optional" yaml:"optional"`
	OptionalIf string `json:"optional_if,omitempty" yaml:"optional_if,omitempty"`
	Class      string `json:"class,omitempty" yaml:"class,omitempty"`
}

// Form is the root of one compiled document variant. A Form is populated by
// the tree builder and must be treated as immutable once returned.
type Form struct {
	Title           string    `json:"title,omitempty" yaml:"title,omitempty"`
	Unlisted        bool      `json:"unlisted" yaml:"unlisted"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty" yaml:"meta_description,omitempty"`
	DirDescription  string    `json:"dir_description,omitempty" yaml:"dir_description,omitempty"`
	EmbeddedScripts []string  `json:"embedded_scripts" yaml:"embedded_scripts"`
	Category        string    `json:"category,omitempty" yaml:"category,omitempty"`
	Instructions    string    `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Link            string    `json:"link,omitempty" yaml:"link,omitempty"`
	Index           uint16    `json:"index" yaml:"index"`
	Stylesheet      string    `json:"stylesheet,omitempty" yaml:"stylesheet,omitempty"`
	Keywords        string    `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Language        string    `json:"language,omitempty" yaml:"language,omitempty"`
	Sections        []Section `json:"sections" yaml:"sections"`
}

// NewForm returns an empty Form for the given target language with the index
// sentinel applied.
func NewForm(language string) Form {
	return Form{
		Index:           IndexUnset,
		Language:        language,
		EmbeddedScripts: []string{},
		Sections:        []Section{},
	}
}

// Section is a named top-level grouping of form elements.
type Section struct {
	Name         string            `json:"name" yaml:"name"`
	Title        string            `json:"title,omitempty" yaml:"title,omitempty"`
	Instructions string            `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Elements     []FormElement     `json:"elements" yaml:"elements"`
	Attributes   ElementAttributes `json:"attributes" yaml:"attributes"`
}

// FormElement is the tagged union of the two element kinds a section can
// hold. Exactly one of Group or Field is set.
type FormElement struct {
	Group *Group `json:"group,omitempty" yaml:"group,omitempty"`
	Field *Field `json:"field,omitempty" yaml:"field,omitempty"`
}

// Group lays out a run of fields inside a section. Groups never nest.
type Group struct {
	Name         string            `json:"name" yaml:"name"`
	Type         GroupType         `json:"group_type" yaml:"group_type"`
	Title        string            `json:"title,omitempty" yaml:"title,omitempty"`
	Instructions string            `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Members      []Field           `json:"members" yaml:"members"`
	Attributes   ElementAttributes `json:"attributes" yaml:"attributes"`
}

// Field is a single input.
type Field struct {
	Name         string            `json:"name" yaml:"name"`
	Type         FieldType         `json:"field_type" yaml:"field_type"`
	Instructions string            `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Label        string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Length       uint16            `json:"length" yaml:"length"`
	Rows         []uint16          `json:"rows,omitempty" yaml:"rows,omitempty"`
	Options      []FieldOption     `json:"options" yaml:"options"`
	Attributes   ElementAttributes `json:"attributes" yaml:"attributes"`
}

// FieldOption is one choice offered by a select, multi-select or grid field.
type FieldOption struct {
	Name       string            `json:"name" yaml:"name"`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty"`
	Attributes ElementAttributes `json:"attributes" yaml:"attributes"`
}

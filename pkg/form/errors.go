package form

import (
	"errors"
	"fmt"
)

// ErrorKind identifies one of the structural or attribute rules a document
// can violate while its tree is being built.
type ErrorKind string

const (
	// ErrMismatchedTags indicates an end token arrived with no matching open
	// container of the same kind.
	ErrMismatchedTags ErrorKind = "mismatched-tags"
	// ErrInvalidAttribute indicates an unrecognized attribute name or an
	// attribute value that could not be parsed.
	ErrInvalidAttribute ErrorKind = "invalid-attribute"
	// ErrInvalidFieldType indicates an unrecognized or missing field type.
	ErrInvalidFieldType ErrorKind = "invalid-field-type"
	// ErrInvalidGroupType indicates an unrecognized group type.
	ErrInvalidGroupType ErrorKind = "invalid-group-type"
	// ErrOrphanElement indicates a structurally valid element closed with no
	// permissible parent open.
	ErrOrphanElement ErrorKind = "orphan-element"
	// ErrUnnamedElement indicates a required name attribute is missing.
	ErrUnnamedElement ErrorKind = "unnamed-element"
	// ErrImproperNesting indicates a container opened while another container
	// of the same kind was already open.
	ErrImproperNesting ErrorKind = "improper-nesting"
)

// SyntacticError reports a schema violation detected while converting
// attributes or building the tree. Rendering and markup-lexing failures are
// surfaced as their own error types and are never wrapped in a
// SyntacticError, so callers can tell "bad template", "malformed markup" and
// "schema violation" apart.
type SyntacticError struct {
	Kind ErrorKind

	// Attribute names the offending attribute for ErrInvalidAttribute.
	Attribute string
	// OpenTag and ClosingTag describe the tag pair for ErrMismatchedTags.
	OpenTag    string
	ClosingTag string
	// InvalidType carries the rejected enumeration value for
	// ErrInvalidFieldType and ErrInvalidGroupType.
	InvalidType string
	// Context is a human-readable description of where the error occurred.
	Context string
}

func (e *SyntacticError) Error() string {
	switch e.Kind {
	case ErrMismatchedTags:
		if e.OpenTag == "" {
			return fmt.Sprintf("expected matching opening tag for %s, but none was open", e.ClosingTag)
		}
		return fmt.Sprintf("expected matching opening tag for %s, but got %s", e.ClosingTag, e.OpenTag)
	case ErrInvalidAttribute:
		return fmt.Sprintf("encountered invalid attribute name %s in %s", e.Attribute, e.Context)
	case ErrInvalidFieldType:
		return fmt.Sprintf("invalid field type %s", e.InvalidType)
	case ErrInvalidGroupType:
		return fmt.Sprintf("invalid group type %s", e.InvalidType)
	case ErrOrphanElement:
		return fmt.Sprintf("orphan element: %s", e.Context)
	case ErrUnnamedElement:
		return fmt.Sprintf("unnamed element: %s", e.Context)
	case ErrImproperNesting:
		return fmt.Sprintf("improper nesting: %s", e.Context)
	default:
		return fmt.Sprintf("syntactic error (%s): %s", e.Kind, e.Context)
	}
}

// IsKind reports whether err is (or wraps) a SyntacticError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var syn *SyntacticError
	if !errors.As(err, &syn) {
		return false
	}
	return syn.Kind == kind
}

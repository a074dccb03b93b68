// Package form defines the document model produced by compiling a form
// template: a Form holding ordered Sections, which hold Groups and Fields,
// which hold FieldOptions. The types are pure data; behaviour is limited to
// construction from raw markup attributes, which is where the closed-world
// attribute schema is enforced.
package form

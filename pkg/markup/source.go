package markup

import "path/filepath"

// SourceKind distinguishes where a form template lives.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindString SourceKind = "string"
)

// Source identifies a form template for the compile pipeline. The template
// renderer resolves it; the tokenizer and tree builder never see it.
type Source interface {
	Location() string
	Kind() SourceKind
}

// fileSource identifies an on-disk template.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a template within an fs.FS supplied to the renderer.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a template inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// stringSource carries literal template content.
type stringSource struct {
	content string
}

func (s stringSource) Location() string {
	return s.content
}

func (s stringSource) Kind() SourceKind {
	return SourceKindString
}

// SourceFromString returns a Source holding the template text itself, for
// callers that already have the template in memory.
func SourceFromString(content string) Source {
	return stringSource{content: content}
}

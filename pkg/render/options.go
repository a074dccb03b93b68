package render

import (
	"io/fs"
	"strings"
)

// Options configures how a renderer resolves and evaluates templates.
type Options struct {
	// BaseDir loads templates from a directory on disk. Defaults to the
	// current directory when neither BaseDir nor FileSystem is set.
	BaseDir string

	// FileSystem loads templates from an abstract filesystem instead of, or
	// in addition to, BaseDir.
	FileSystem fs.FS

	// Extension is appended to template names that lack it. Empty disables
	// extension handling.
	Extension string

	// Globals seeds context values available to every template.
	Globals map[string]any
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(opts *Options) {
		opts.BaseDir = strings.TrimSpace(dir)
	}
}

// WithFileSystem loads templates from an fs.FS.
func WithFileSystem(files fs.FS) Option {
	return func(opts *Options) {
		opts.FileSystem = files
	}
}

// WithExtension overrides the template extension appended to bare names.
func WithExtension(ext string) Option {
	return func(opts *Options) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		opts.Extension = trimmed
	}
}

// WithGlobals seeds global context values available to every template.
func WithGlobals(data map[string]any) Option {
	return func(opts *Options) {
		if len(data) == 0 {
			return
		}
		if opts.Globals == nil {
			opts.Globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			opts.Globals[key] = value
		}
	}
}

// NewOptions applies a set of Option values and returns the resulting
// configuration.
func NewOptions(options ...Option) Options {
	cfg := Options{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

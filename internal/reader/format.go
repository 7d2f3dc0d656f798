package reader

import (
	"path/filepath"
	"strings"
)

// Format opens one kind of book file.
type Format interface {
	Name() string
	Extensions() []string
	Open(filename string) (*Book, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// FormatFor returns the registered format for filename's extension, or the
// plain text format when none matches.
func FormatFor(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return &TextFormat{}
}

// OpenBook opens filename with the format matching its extension.
func OpenBook(filename string) (*Book, error) {
	return FormatFor(filename).Open(filename)
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

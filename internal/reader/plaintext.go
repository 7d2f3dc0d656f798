package reader

import (
	"html"
	"os"
	"path/filepath"
	"strings"
)

// TextFormat implements Format for plain text. It is also the fallback for
// unknown extensions.
type TextFormat struct{}

func init() {
	Register(&TextFormat{})
}

func (f *TextFormat) Name() string         { return "Text" }
func (f *TextFormat) Extensions() []string { return []string{".txt"} }

// Open wraps the whole file in a single <pre> document so its line breaks survive.
func (f *TextFormat) Open(filename string) (*Book, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(filename)
	return &Book{
		Title:  strings.TrimSuffix(base, filepath.Ext(base)),
		Source: filename,
		Documents: []Document{{
			Href: base,
			HTML: "<pre>" + html.EscapeString(string(data)) + "</pre>",
		}},
	}, nil
}

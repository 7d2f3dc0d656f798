package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// MarkdownFormat implements Format for Markdown files. Each top-level
// section becomes one document, rendered to HTML with goldmark.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

// headerRegex matches markdown headers (# to ######)
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

var markdown = goldmark.New()

type mdSection struct {
	title string
	body  strings.Builder
}

// Open splits the file at level 1 and 2 headers. Text before the first
// header forms its own untitled document. The first level 1 header names
// the book.
func (f *MarkdownFormat) Open(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	book := &Book{Source: filename}
	sections := []*mdSection{{}}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if match := headerRegex.FindStringSubmatch(line); match != nil && len(match[1]) <= 2 {
			title := strings.TrimSpace(match[2])
			if book.Title == "" && len(match[1]) == 1 {
				book.Title = title
			}
			sections = append(sections, &mdSection{title: title})
		}
		cur := sections[len(sections)-1]
		cur.body.WriteString(line)
		cur.body.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if book.Title == "" {
		book.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	for i, sec := range sections {
		if strings.TrimSpace(sec.body.String()) == "" {
			continue
		}
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(sec.body.String()), &buf); err != nil {
			return nil, fmt.Errorf("failed to render section %d: %w", i, err)
		}
		book.Documents = append(book.Documents, Document{
			Href:  fmt.Sprintf("%s#%d", filepath.Base(filename), i),
			Title: sec.title,
			HTML:  buf.String(),
		})
	}

	return book, nil
}

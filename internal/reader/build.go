package reader

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Unknown stands in for info fields missing from the book.
const Unknown = "Unknown"

// InfoField is one line of the info page: the meta label to look up and the
// heading it is shown under.
type InfoField struct {
	Key     string
	Heading string
}

// DefaultInfoFields are the lines shown on the info page when none are configured.
var DefaultInfoFields = []InfoField{
	{Key: "Release date", Heading: "Release Date"},
	{Key: "Language", Heading: "Language"},
	{Key: "Credits", Heading: "Credits"},
}

// BuildOptions control how a book is split into pages.
type BuildOptions struct {
	LinesPerPage int
	InfoFields   []InfoField
	// Start is the page index the session opens at.
	Start int
}

// Build extracts meta info from the first document, renders the info page and
// paginates every document into a session.
func Build(book *Book, opts BuildOptions, logger *log.Logger) *Session {
	if book == nil {
		book = &Book{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.LinesPerPage < 1 {
		opts.LinesPerPage = DefaultLinesPerPage
	}
	if len(opts.InfoFields) == 0 {
		opts.InfoFields = DefaultInfoFields
	}

	first, ok := book.FirstDocument()
	if !ok || first.HTML == "" {
		logger.Printf("warning: first document of %q is empty", book.Title)
	}
	meta, found := ExtractMetaInfo(first.HTML)
	if !found {
		logger.Printf("warning: no <p> tags found in the first document")
	}
	for label, value := range meta {
		logger.Printf("meta info: %s = %s", label, value)
	}

	pages := NewPageList(InfoPage(book, meta, opts.InfoFields))

	var chapters []Chapter
	for i, doc := range book.Documents {
		split := Paginate(PlainText(doc.HTML), opts.LinesPerPage)
		if len(split) == 0 {
			continue
		}
		start := pages.Append(split...)
		title := doc.Title
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}
		chapters = append(chapters, Chapter{
			Title:     title,
			PageStart: start,
			PageEnd:   start + len(split) - 1,
		})
	}
	logger.Printf("paginated %d documents into %d pages", len(book.Documents), pages.Len())

	return NewSession(book, meta, pages, chapters, opts.Start)
}

// InfoPage renders the book's title, author and selected meta fields. Bold
// runs are wrapped in <b></b> markers for the display to style.
func InfoPage(book *Book, meta MetaInfo, fields []InfoField) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\nby %s\n", book.Title, book.Author)
	if len(fields) > 0 {
		sb.WriteString("\n")
	}
	for i, f := range fields {
		fmt.Fprintf(&sb, "<b>%s:</b> %s", f.Heading, meta.Lookup(f.Key, Unknown))
		if i < len(fields)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Segment is a run of info page text with a single weight.
type Segment struct {
	Text string
	Bold bool
}

// ParseMarkup splits a line of info page text on its <b></b> markers.
func ParseMarkup(line string) []Segment {
	var out []Segment
	bold := false
	for line != "" {
		marker := "<b>"
		if bold {
			marker = "</b>"
		}
		before, after, found := strings.Cut(line, marker)
		if before != "" {
			out = append(out, Segment{Text: before, Bold: bold})
		}
		if !found {
			break
		}
		bold = !bold
		line = after
	}
	return out
}

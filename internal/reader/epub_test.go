package reader

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taylorskalyo/goreader/epub"
)

func TestEPUBOpen(t *testing.T) {
	path := writeEPUB(t, defaultFixture())

	book, err := (&EPUBFormat{}).Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if book.Title != "Moby Dick" {
		t.Errorf("Title = %q", book.Title)
	}
	if book.Author != "Herman Melville" {
		t.Errorf("Author = %q", book.Author)
	}
	if book.Language != "en" {
		t.Errorf("Language = %q", book.Language)
	}
	if book.Source != path {
		t.Errorf("Source = %q, want %q", book.Source, path)
	}

	wantTitles := []string{"Front Matter", "Loomings", "The Carpet-Bag"}
	if len(book.Documents) != len(wantTitles) {
		t.Fatalf("got %d documents, want %d", len(book.Documents), len(wantTitles))
	}
	for i, want := range wantTitles {
		if book.Documents[i].Title != want {
			t.Errorf("Documents[%d].Title = %q, want %q", i, book.Documents[i].Title, want)
		}
	}
	if !strings.Contains(book.Documents[1].HTML, "Call me Ishmael 1.") {
		t.Errorf("chapter 1 HTML not read: %q", book.Documents[1].HTML)
	}

	if !bytes.Equal(book.Cover, defaultFixture().cover) {
		t.Errorf("cover bytes not read (%d bytes)", len(book.Cover))
	}
}

func TestEPUBOpenWithoutNCXOrCover(t *testing.T) {
	f := defaultFixture()
	f.noNCX = true
	f.cover = nil
	path := writeEPUB(t, f)

	book, err := (&EPUBFormat{}).Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i, doc := range book.Documents {
		if doc.Title != "" {
			t.Errorf("Documents[%d].Title = %q, want empty without NCX", i, doc.Title)
		}
	}
	if book.Cover != nil {
		t.Errorf("expected no cover, got %d bytes", len(book.Cover))
	}
}

func TestEPUBOpenNotAnEPUB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.epub")
	writeFile(t, path, "this is not a zip")

	if _, err := (&EPUBFormat{}).Open(path); err == nil {
		t.Error("expected error for non-zip file")
	}
}

func TestBuildFromEPUB(t *testing.T) {
	book, err := OpenBook(writeEPUB(t, defaultFixture()))
	if err != nil {
		t.Fatalf("OpenBook: %v", err)
	}

	s := Build(book, BuildOptions{LinesPerPage: 20}, nil)

	info := s.Pages.Text(1)
	for _, want := range []string{
		"<b>Moby Dick</b>\nby Herman Melville",
		"<b>Release Date:</b> : June 1, 2001",
		"<b>Language:</b> : English",
		"<b>Credits:</b> Unknown",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("info page missing %q:\n%s", want, info)
		}
	}

	if s.Pages.Len() != 7 {
		t.Errorf("Pages.Len() = %d, want 7", s.Pages.Len())
	}

	for s.Next() {
	}
	if got := s.CurrentChapterTitle(); got != "The Carpet-Bag" {
		t.Errorf("last page chapter = %q", got)
	}
	if !strings.Contains(s.Text(), "I stuffed a shirt 5.") {
		t.Errorf("last page = %q", s.Text())
	}
}

func TestBuildTOCHrefMap(t *testing.T) {
	path := writeEPUB(t, defaultFixture())
	rc, err := epub.OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer rc.Close()

	titles := buildTOCHrefMap(path, rc.Rootfiles[0])

	want := map[string]string{
		"text/front.xhtml": "Front Matter",
		"front.xhtml":      "Front Matter",
		"text/ch1.xhtml":   "Loomings",
		"ch2.xhtml":        "The Carpet-Bag",
	}
	for href, title := range want {
		if titles[href] != title {
			t.Errorf("titles[%q] = %q, want %q", href, titles[href], title)
		}
	}
}

func TestTitleForHref(t *testing.T) {
	titles := map[string]string{"ch1.xhtml": "One", "text/ch2.xhtml": "Two"}
	tests := []struct {
		href, want string
	}{
		{"text/ch1.xhtml", "One"},
		{"text/ch2.xhtml", "Two"},
		{"other.xhtml", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleForHref(titles, tt.href); got != tt.want {
			t.Errorf("titleForHref(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

package reader

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

// Open reads the package metadata, the spine documents in reading order and
// the cover image. Spine items that cannot be read are skipped.
func (f *EPUBFormat) Open(filename string) (*Book, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, ErrNoRootfile
	}
	pkg := rc.Rootfiles[0]

	book := &Book{
		Title:    strings.TrimSpace(pkg.Title),
		Author:   strings.TrimSpace(pkg.Creator),
		Language: strings.TrimSpace(pkg.Language),
		Source:   filename,
	}

	titles := buildTOCHrefMap(filename, pkg)

	for _, ref := range pkg.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		data, err := readItem(ref.Item)
		if err != nil {
			continue
		}
		book.Documents = append(book.Documents, Document{
			Href:  ref.Item.HREF,
			Title: titleForHref(titles, ref.Item.HREF),
			HTML:  string(data),
		})
	}

	book.Cover = readCover(pkg)
	return book, nil
}

func readItem(item *epub.Item) ([]byte, error) {
	r, err := item.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func titleForHref(titles map[string]string, href string) string {
	if href == "" {
		return ""
	}
	if t, ok := titles[href]; ok {
		return t
	}
	return titles[path.Base(href)]
}

// readCover returns the first manifest image whose id or href mentions
// "cover", or nil.
func readCover(pkg *epub.Rootfile) []byte {
	for i := range pkg.Manifest.Items {
		item := &pkg.Manifest.Items[i]
		if !strings.HasPrefix(item.MediaType, "image/") {
			continue
		}
		if !strings.Contains(strings.ToLower(item.ID), "cover") &&
			!strings.Contains(strings.ToLower(path.Base(item.HREF)), "cover") {
			continue
		}
		data, err := readItem(item)
		if err != nil || len(data) == 0 {
			continue
		}
		return data
	}
	return nil
}

package reader

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MetaInfo maps a bold paragraph label to the rest of that paragraph's text.
type MetaInfo map[string]string

// ExtractMetaInfo scans every <p> in src for a <strong> label. The value is
// the paragraph text with the label text removed, so punctuation between
// label and value (": 2001") is kept. Later paragraphs overwrite earlier ones
// with the same label. The bool reports whether src had any paragraphs.
func ExtractMetaInfo(src string) (MetaInfo, bool) {
	meta := make(MetaInfo)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return meta, false
	}

	paragraphs := doc.Find("p")
	if paragraphs.Length() == 0 {
		return meta, false
	}

	paragraphs.Each(func(_ int, p *goquery.Selection) {
		strong := p.Find("strong").First()
		if strong.Length() == 0 {
			return
		}
		raw := strong.Text()
		label := strings.TrimSpace(raw)
		value := strings.TrimSpace(strings.ReplaceAll(p.Text(), raw, ""))
		if label == "" || value == "" {
			return
		}
		meta[label] = value
	})

	return meta, true
}

// Lookup returns the value stored for label, or fallback.
func (m MetaInfo) Lookup(label, fallback string) string {
	if v, ok := m[label]; ok {
		return v
	}
	return fallback
}

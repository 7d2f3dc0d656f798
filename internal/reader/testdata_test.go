package reader

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fixtureDoc struct {
	id, href, title, body string
}

type epubFixture struct {
	title, author, language string
	docs                    []fixtureDoc
	cover                   []byte
	noNCX                   bool
}

const metaDocBody = `<h1>The Project Gutenberg eBook of Moby Dick</h1>
<p><strong>Title</strong>: Moby Dick; Or, The Whale</p>
<p><strong>Release date</strong>: June 1, 2001</p>
<p><strong>Language</strong>: English</p>
<p>No label in this paragraph.</p>`

func defaultFixture() epubFixture {
	return epubFixture{
		title:    "Moby Dick",
		author:   "Herman Melville",
		language: "en",
		docs: []fixtureDoc{
			{id: "front", href: "text/front.xhtml", title: "Front Matter", body: metaDocBody},
			{id: "ch1", href: "text/ch1.xhtml", title: "Loomings", body: numberedParagraphs("Call me Ishmael", 25)},
			{id: "ch2", href: "text/ch2.xhtml", title: "The Carpet-Bag", body: numberedParagraphs("I stuffed a shirt", 5)},
		},
		cover: testPNG(8, 12),
	}
}

func numberedParagraphs(prefix string, n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "<p>%s %d.</p>\n", prefix, i)
	}
	return sb.String()
}

func testPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func xhtml(title, body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>` + title + `</title><style>p { margin: 0 }</style></head>
<body>
` + body + `
</body>
</html>`
}

// writeEPUB builds an EPUB 2 container for f in a temp dir and returns its path.
func writeEPUB(t *testing.T, f epubFixture) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		w.Write([]byte(content))
	}

	add("mimetype", "application/epub+zip")
	add("META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`)

	var manifest, spine, navPoints strings.Builder
	for i, d := range f.docs {
		fmt.Fprintf(&manifest, `    <item id="%s" href="%s" media-type="application/xhtml+xml"/>`+"\n", d.id, d.href)
		fmt.Fprintf(&spine, `    <itemref idref="%s"/>`+"\n", d.id)
		fmt.Fprintf(&navPoints, `    <navPoint id="np%d" playOrder="%d"><navLabel><text>%s</text></navLabel><content src="%s#start"/></navPoint>`+"\n",
			i+1, i+1, d.title, d.href)
		add("OEBPS/"+d.href, xhtml(d.title, d.body))
	}
	if !f.noNCX {
		manifest.WriteString(`    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>` + "\n")
		add("OEBPS/toc.ncx", `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
`+navPoints.String()+`  </navMap>
</ncx>`)
	}
	if f.cover != nil {
		manifest.WriteString(`    <item id="cover-image" href="images/cover.png" media-type="image/png"/>` + "\n")
		w, err := zw.Create("OEBPS/images/cover.png")
		if err != nil {
			t.Fatalf("zip create cover: %v", err)
		}
		w.Write(f.cover)
	}

	add("OEBPS/content.opf", `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0" unique-identifier="bookid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>`+f.title+`</dc:title>
    <dc:creator>`+f.author+`</dc:creator>
    <dc:language>`+f.language+`</dc:language>
    <dc:identifier id="bookid">urn:test:1</dc:identifier>
  </metadata>
  <manifest>
`+manifest.String()+`  </manifest>
  <spine toc="ncx">
`+spine.String()+`  </spine>
</package>`)

	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "book.epub")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write epub: %v", err)
	}
	return path
}

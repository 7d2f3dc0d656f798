package reader

// Document is one content file of a book, in reading order.
type Document struct {
	Href  string
	Title string
	HTML  string
}

// Book is a source file opened by one of the registered formats.
type Book struct {
	Title     string
	Author    string
	Language  string
	Cover     []byte
	Documents []Document

	// Source is the local file the book was read from.
	Source string
}

// FirstDocument returns the first document in reading order, if any.
func (b *Book) FirstDocument() (Document, bool) {
	if b == nil || len(b.Documents) == 0 {
		return Document{}, false
	}
	return b.Documents[0], true
}

// Chapter records which pages of a PageList came from one document.
type Chapter struct {
	Title     string
	PageStart int
	PageEnd   int
}

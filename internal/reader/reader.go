// Package reader turns EPUB and text books into a flat list of fixed-height
// pages and tracks the page being read.
package reader

// View is the panel a page index is shown in.
type View int

const (
	ViewCover View = iota
	ViewInfo
	ViewContent
)

func (v View) String() string {
	switch v {
	case ViewCover:
		return "cover"
	case ViewInfo:
		return "info"
	default:
		return "content"
	}
}

// ViewFor maps a page index to its panel: 0 is the cover, 1 the info page,
// anything after that is content.
func ViewFor(index int) View {
	switch {
	case index <= 0:
		return ViewCover
	case index == 1:
		return ViewInfo
	default:
		return ViewContent
	}
}

// PageList is the book's pages in reading order. Index 0 is the cover slot
// and has no text; index 1 is the info page.
type PageList struct {
	pages []string
}

// NewPageList starts a page list with the given info page.
func NewPageList(info string) *PageList {
	return &PageList{pages: []string{info}}
}

// Append adds content pages and returns the index of the first one added.
func (l *PageList) Append(pages ...string) int {
	first := l.Len()
	l.pages = append(l.pages, pages...)
	return first
}

// Len counts the cover slot too.
func (l *PageList) Len() int {
	return len(l.pages) + 1
}

// Text returns the page at index, or "" for the cover slot and out of range indices.
func (l *PageList) Text(index int) string {
	if index < 1 || index > len(l.pages) {
		return ""
	}
	return l.pages[index-1]
}

// Session holds the state of one open book.
type Session struct {
	Book     *Book
	Meta     MetaInfo
	Pages    *PageList
	Chapters []Chapter

	index int
}

// NewSession creates a session positioned at start, clamped into the page range.
func NewSession(book *Book, meta MetaInfo, pages *PageList, chapters []Chapter, start int) *Session {
	if pages == nil {
		pages = NewPageList("")
	}
	s := &Session{
		Book:     book,
		Meta:     meta,
		Pages:    pages,
		Chapters: chapters,
	}
	s.index = clamp(start, 0, pages.Len()-1)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Index returns the current page index.
func (s *Session) Index() int {
	return s.index
}

// Next moves to the next page. It reports false at the last page.
func (s *Session) Next() bool {
	if s.index < s.Pages.Len()-1 {
		s.index++
		return true
	}
	return false
}

// Prev moves to the previous page. It reports false at the cover.
func (s *Session) Prev() bool {
	if s.index > 0 {
		s.index--
		return true
	}
	return false
}

// View returns the panel for the current page.
func (s *Session) View() View {
	return ViewFor(s.index)
}

// Text returns the current page text; the cover has none.
func (s *Session) Text() string {
	return s.Pages.Text(s.index)
}

// Progress returns the 1-based current page and the page count.
func (s *Session) Progress() (current, total int) {
	return s.index + 1, s.Pages.Len()
}

// AtEnd returns true on the last page.
func (s *Session) AtEnd() bool {
	return s.index >= s.Pages.Len()-1
}

// CurrentChapterTitle returns the title of the chapter holding the current page.
func (s *Session) CurrentChapterTitle() string {
	for i := len(s.Chapters) - 1; i >= 0; i-- {
		ch := s.Chapters[i]
		if s.index >= ch.PageStart && s.index <= ch.PageEnd {
			return ch.Title
		}
	}
	return ""
}

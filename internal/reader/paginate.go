package reader

// DefaultLinesPerPage is the page height used when none is configured.
const DefaultLinesPerPage = 20

// Paginate splits text into pages of maxLines lines. Lines keep their
// terminators, so concatenating the pages gives back text unchanged. Every
// page but the last holds exactly maxLines lines; a final line without a
// terminator still counts as a line. Empty text yields no pages.
func Paginate(text string, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if text == "" {
		return nil
	}

	var pages []string
	start, lines := 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		lines++
		if lines == maxLines {
			pages = append(pages, text[start:i+1])
			start, lines = i+1, 0
		}
	}
	if start < len(text) {
		pages = append(pages, text[start:])
	}
	return pages
}

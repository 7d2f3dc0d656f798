package reader

import (
	"strings"
	"testing"
)

func lines(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString("line ")
		sb.WriteString(strings.Repeat("x", i%7))
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLines  int
		wantPages int
		lastLines int
	}{
		{"empty", "", 20, 0, 0},
		{"single line", "hello\n", 20, 1, 1},
		{"no trailing newline", "a\nb", 20, 1, 2},
		{"exact page", lines(20), 20, 1, 20},
		{"one over", lines(21), 20, 2, 1},
		{"several pages", lines(45), 20, 3, 5},
		{"one line per page", "a\nb\nc\n", 1, 3, 1},
		{"zero treated as one", "a\nb\n", 0, 2, 1},
		{"blank lines count", "\n\n\n", 2, 2, 1},
		{"long line is one line", strings.Repeat("w", 5000) + "\n", 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := Paginate(tt.text, tt.maxLines)
			if len(pages) != tt.wantPages {
				t.Fatalf("Paginate() gave %d pages, want %d", len(pages), tt.wantPages)
			}
			if len(pages) == 0 {
				return
			}
			if got := lineCount(pages[len(pages)-1]); got != tt.lastLines {
				t.Errorf("last page has %d lines, want %d", got, tt.lastLines)
			}
		})
	}
}

func lineCount(page string) int {
	n := strings.Count(page, "\n")
	if !strings.HasSuffix(page, "\n") {
		n++
	}
	return n
}

func TestPaginateRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"one",
		"one\n",
		"one\ntwo\n\nfour",
		lines(7),
		lines(100),
		"\n\n\n\n\n",
		"ünïcödé\nlines\r\nwith crlf\r\n",
	}

	for _, text := range inputs {
		for maxLines := 1; maxLines <= 25; maxLines++ {
			pages := Paginate(text, maxLines)
			if got := strings.Join(pages, ""); got != text {
				t.Fatalf("maxLines=%d: round trip gave %q, want %q", maxLines, got, text)
			}
			for i, p := range pages {
				n := lineCount(p)
				if i < len(pages)-1 && n != maxLines {
					t.Errorf("maxLines=%d: page %d has %d lines", maxLines, i, n)
				}
				if i == len(pages)-1 && (n < 1 || n > maxLines) {
					t.Errorf("maxLines=%d: last page has %d lines", maxLines, n)
				}
			}
		}
	}
}

func TestPaginateDefault(t *testing.T) {
	pages := Paginate(lines(41), DefaultLinesPerPage)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages of %d lines, got %d", DefaultLinesPerPage, len(pages))
	}
}

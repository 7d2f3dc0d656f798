package reader

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs",
			html: `<html><head><title>Test</title></head><body>
				<h1>Chapter 1</h1>
				<p>This is the <b>first</b> paragraph.</p>
				<p>
					This is the second paragraph
					with a newline.
				</p>
			</body></html>`,
			want: "Chapter 1\n\nThis is the first paragraph.\n\nThis is the second paragraph with a newline.\n",
		},
		{
			name: "line breaks",
			html: `<p>one<br/>two<br>three</p>`,
			want: "one\ntwo\nthree\n",
		},
		{
			name: "nested blocks collapse",
			html: `<div><div><p>inside</p></div></div><div>after</div>`,
			want: "inside\n\nafter\n",
		},
		{
			name: "inline spacing",
			html: `<p>Some <span>nested</span> text<em>.</em></p>`,
			want: "Some nested text.\n",
		},
		{
			name: "entities decoded",
			html: `<p>Fish &amp; chips &mdash; &lt;cheap&gt;</p>`,
			want: "Fish & chips — <cheap>\n",
		},
		{
			name: "script and style skipped",
			html: `<style>p{}</style><script>alert(1)</script><p>visible</p>`,
			want: "visible\n",
		},
		{
			name: "pre keeps lines",
			html: "<pre>  indented\nsecond  line\n</pre>",
			want: "  indented\nsecond  line\n",
		},
		{
			name: "list items",
			html: `<ul><li>one</li><li>two</li></ul>`,
			want: "one\n\ntwo\n",
		},
		{
			name: "empty",
			html: "",
			want: "",
		},
		{
			name: "whitespace only",
			html: "<p>   </p>\n\n<div>\t</div>",
			want: "",
		},
		{
			name: "multibyte text before inline element",
			html: "<p>café <i>au lait</i></p>",
			want: "café au lait\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.html); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTidyLines(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"\n\n", ""},
		{"a", "a\n"},
		{"\n\na  \n\n\n\nb\t\n\n", "a\n\nb\n"},
		{"  lead\ntrail  ", "  lead\ntrail\n"},
	}
	for _, tt := range tests {
		if got := tidyLines(tt.in); got != tt.want {
			t.Errorf("tidyLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

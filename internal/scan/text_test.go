package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "plain paragraph",
			html: "<p>Great shoes for running and walking every single day of the week</p>",
			want: 12,
		},
		{name: "empty", html: "", want: 0},
		{name: "tags only", html: "<p></p><div></div>", want: 0},
		{name: "nested markup", html: "<p>one <strong>two</strong> three</p>", want: 3},
		{name: "whitespace runs", html: "  one \n\n two  ", want: 2},
		{name: "adjacent tags split words", html: "<p>one</p><p>two</p>", want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordCount(tt.html))
		})
	}
}

func TestBulletCount(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{name: "dash bullets over br", html: "- Comfortable<br>- Durable<br>- Washable", want: 3},
		{name: "star bullets", html: "* one<br/>* two", want: 2},
		{name: "bullet glyph", html: "• one<br>• two", want: 2},
		{name: "li lines", html: "<li>one</li>\n<li>two</li>", want: 2},
		{name: "plain prose", html: "<p>No bullets here, just text.</p>", want: 0},
		{name: "empty", html: "", want: 0},
		{
			// The count is a raw-markup heuristic, not an HTML list parse:
			// a one-line <ul><li>... fragment starts with <ul>, so no line
			// matches the bullet prefix.
			name: "single-line list markup",
			html: "<ul><li>one</li><li>two</li></ul>",
			want: 0,
		},
		{name: "dash without space is not a bullet", html: "-one<br>-two", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bulletCount(tt.html))
		})
	}
}

func TestStripTags_Normalizes(t *testing.T) {
	// Decomposed and precomposed forms of the same text tokenize the same.
	decomposed := "Café blend"
	precomposed := "Café blend"
	assert.Equal(t, stripTags(precomposed), stripTags(decomposed))
	assert.Equal(t, 2, wordCount(decomposed))
}

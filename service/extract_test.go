package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single tag",
			text: "went for a run #exercise",
			want: []string{"exercise"},
		},
		{
			name: "multiple tags keep first-seen order",
			text: "#morning walk then #exercise and more #morning",
			want: []string{"morning", "exercise"},
		},
		{
			name: "case folds to lowercase",
			text: "#Exercise and #EXERCISE",
			want: []string{"exercise"},
		},
		{
			name: "hyphen and underscore allowed",
			text: "#deep-work #read_books",
			want: []string{"deep-work", "read_books"},
		},
		{
			name: "tag at start of line",
			text: "#first thing today",
			want: []string{"first"},
		},
		{
			name: "mid-word hash is not a tag",
			text: "see issue ref#123 and C# basics",
			want: nil,
		},
		{
			name: "html entity is not a tag",
			text: "tom &#38; jerry",
			want: nil,
		},
		{
			name: "bare hash ignored",
			text: "just a # sign",
			want: nil,
		},
		{
			name: "unicode letters",
			text: "#läufen heute",
			want: []string{"läufen"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.text))
		})
	}
}

func TestNormalizeHashtag(t *testing.T) {
	assert.Equal(t, "work", NormalizeHashtag("#Work"))
	assert.Equal(t, "work", NormalizeHashtag("WORK"))
	assert.Equal(t, "deep-work", NormalizeHashtag("deep-work"))
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single url",
			text: "read https://example.com/article today",
			want: []string{"https://example.com/article"},
		},
		{
			name: "trailing punctuation stripped",
			text: "see https://example.com/a.",
			want: []string{"https://example.com/a"},
		},
		{
			name: "dedup keeps first-seen order",
			text: "https://b.test https://a.test https://b.test",
			want: []string{"https://b.test", "https://a.test"},
		},
		{
			name: "http and https both match",
			text: "old http://plain.test and new https://secure.test",
			want: []string{"http://plain.test", "https://secure.test"},
		},
		{
			name: "url with query string",
			text: "https://example.com/search?q=go&page=2 works",
			want: []string{"https://example.com/search?q=go&page=2"},
		},
		{
			name: "no scheme no match",
			text: "just example.com here",
			want: nil,
		},
		{
			name: "balanced parens stay in the path",
			text: "reading https://en.wikipedia.org/wiki/Go_(programming_language) now",
			want: []string{"https://en.wikipedia.org/wiki/Go_(programming_language)"},
		},
		{
			name: "closing paren from surrounding text dropped",
			text: "(see https://example.com/a)",
			want: []string{"https://example.com/a"},
		},
		{
			name: "markdown link",
			text: "[docs](https://example.com/docs) and more",
			want: []string{"https://example.com/docs"},
		},
		{
			name: "paren then period",
			text: "wrapped (https://example.com/b).",
			want: []string{"https://example.com/b"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}

package htmltext

import (
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "hello world", "hello world"},
		{"paragraph", "<p>hello</p>", "hello"},
		{"attributes", `<a href="https://example.com">link</a> text`, "link text"},
		{"nested", "<div><p><strong>bold</strong> move</p></div>", "bold move"},
		{"unclosed bracket kept", "1 < 2", "1 < 2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	html := "\n  <p>The quick brown fox</p>\n<p>jumps   over</p>  "
	if got := CountWords(html); got != 6 {
		t.Errorf("Expected 6 words, got %d", got)
	}
	if got := CountWords("   "); got != 0 {
		t.Errorf("Expected 0 words for whitespace, got %d", got)
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"empty content", "", 1},
		{"one word", "hello", 1},
		{"199 words", words(199), 1},
		{"exactly 200 words", words(200), 1},
		{"201 words", words(201), 2},
		{"400 words", words(400), 2},
		{"401 words", words(401), 3},
		{"tags are not words", "<p>" + strings.Repeat("<br/> ", 500) + "</p>", 1},
		{"200 wrapped words", "<p>" + words(200) + "</p> <p>extra</p>", 2},
		// removing adjacent tags joins the words on either side
		{"adjacent tags join words", "<p>" + words(200) + "</p><p>extra</p>", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTime(tt.content); got != tt.expected {
				t.Errorf("Expected reading time %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestReadingTimeAt_InvalidSpeedFallsBack(t *testing.T) {
	if got := ReadingTimeAt(words(201), 0); got != 2 {
		t.Errorf("Expected default speed to give 2, got %d", got)
	}
	if got := ReadingTimeAt(words(100), 50); got != 2 {
		t.Errorf("Expected 2 minutes at 50 wpm, got %d", got)
	}
}

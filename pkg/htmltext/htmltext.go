// Package htmltext derives plain-text facts from HTML fragments without
// parsing them as a DOM.
package htmltext

import (
	"regexp"
	"strings"
)

// WordsPerMinute is the reading speed used by ReadingTime
const WordsPerMinute = 200

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// StripTags deletes every <...> sequence from s.
func StripTags(s string) string {
	return tagRegex.ReplaceAllString(s, "")
}

// CountWords returns the number of whitespace-delimited tokens in the
// tag-stripped text.
func CountWords(html string) int {
	return len(strings.Fields(StripTags(html)))
}

// ReadingTime estimates minutes to read html at WordsPerMinute: max(1, ceil(words/200)).
func ReadingTime(html string) int {
	return ReadingTimeAt(html, WordsPerMinute)
}

// ReadingTimeAt is ReadingTime with a custom reading speed
func ReadingTimeAt(html string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = WordsPerMinute
	}
	words := CountWords(html)
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

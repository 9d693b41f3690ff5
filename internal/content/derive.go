package content

import (
	"encoding/json"
	"html"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// Average reading speed used across the site.
	wordsPerMinute = 200

	// Maximum excerpt length in characters (runes).
	excerptMaxLen = 200
)

var stripPolicy = bluemonday.StrictPolicy()

// StripTags removes inline markup (angle-bracket spans) from block text.
func StripTags(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadingTime estimates reading time in minutes for a raw document.
// Only paragraph, header, quote and list blocks carry countable text; block
// kind matching is case-insensitive because the upstream editor has emitted
// both "list"/"List" and "header"/"Header". The result is never below one
// minute, even for an absent or empty document, and the function never fails.
func ReadingTime(raw json.RawMessage) int {
	doc := Parse(raw)
	if doc == nil {
		return 1
	}

	words := 0
	for _, b := range doc.Blocks {
		switch strings.ToLower(b.Type) {
		case TypeParagraph, TypeHeader, TypeQuote:
			words += wordCount(StripTags(stringField(b.Data, "text")))
		case TypeList:
			for _, item := range listItems(b.Data) {
				words += wordCount(StripTags(item))
			}
		}
	}

	// Half-minute ties round to even (500 words is 2 minutes, not 3).
	minutes := int(math.RoundToEven(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Excerpt returns the short description for a post. An explicit description
// wins verbatim; otherwise the first paragraph block is stripped of markup
// and truncated to 200 characters with an ellipsis. Absent content degrades
// to the empty string.
func Excerpt(description string, raw json.RawMessage) string {
	if description != "" {
		return description
	}

	doc := Parse(raw)
	if doc == nil {
		return ""
	}

	for _, b := range doc.Blocks {
		if !strings.EqualFold(b.Type, TypeParagraph) {
			continue
		}
		text := StripTags(stringField(b.Data, "text"))
		if r := []rune(text); len(r) > excerptMaxLen {
			return string(r[:excerptMaxLen]) + "..."
		}
		return text
	}

	return ""
}

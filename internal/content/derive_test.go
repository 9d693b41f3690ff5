package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(blocks ...string) json.RawMessage {
	return json.RawMessage(`{"blocks":[` + strings.Join(blocks, ",") + `]}`)
}

func paragraph(text string) string {
	b, _ := json.Marshal(map[string]any{
		"type": "paragraph",
		"data": map[string]any{"text": text},
	})
	return string(b)
}

func TestReadingTimeMinimumOneMinute(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(nil))
	assert.Equal(t, 1, ReadingTime(json.RawMessage(`null`)))
	assert.Equal(t, 1, ReadingTime(json.RawMessage(`{"blocks":[]}`)))
	assert.Equal(t, 1, ReadingTime(doc(paragraph("just a few words"))))
}

func TestReadingTimeMalformedContent(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(json.RawMessage(`{not json`)))
	assert.Equal(t, 1, ReadingTime(json.RawMessage(`"a plain string"`)))
}

func TestReadingTimeCountsTextBlocks(t *testing.T) {
	// 400 words across a paragraph and a header round to 2 minutes.
	half := strings.Repeat("word ", 200)
	raw := doc(
		paragraph(half),
		`{"type":"header","data":{"text":"`+strings.TrimSpace(half)+`"}}`,
	)
	assert.Equal(t, 2, ReadingTime(raw))
}

func TestReadingTimeRoundsToNearestMinute(t *testing.T) {
	// 299 words round down to 1, 301 round up to 2.
	assert.Equal(t, 1, ReadingTime(doc(paragraph(strings.Repeat("w ", 299)))))
	assert.Equal(t, 2, ReadingTime(doc(paragraph(strings.Repeat("w ", 301)))))
}

func TestReadingTimeHalfMinuteTiesRoundToEven(t *testing.T) {
	// Exact half minutes round to the even minute: 500 words is 2, not 3,
	// and 900 is 4, not 5. 700 rounds the other way, to 4.
	assert.Equal(t, 2, ReadingTime(doc(paragraph(strings.Repeat("w ", 500)))))
	assert.Equal(t, 4, ReadingTime(doc(paragraph(strings.Repeat("w ", 700)))))
	assert.Equal(t, 4, ReadingTime(doc(paragraph(strings.Repeat("w ", 900)))))
}

func TestReadingTimeIgnoresNonTextBlocks(t *testing.T) {
	words := strings.TrimSpace(strings.Repeat("w ", 500))
	blocks := []string{
		`{"type":"` + TypeImage + `","data":{"file":{"url":"https://cdn.example.com/a.png"},"caption":"` + words + `"}}`,
		`{"type":"` + TypeDelimiter + `","data":{}}`,
		`{"type":"` + TypeLink + `","data":{"link":"https://example.com"}}`,
		`{"type":"` + TypeRaw + `","data":{"html":"<p>` + words + `</p>"}}`,
		`{"type":"` + TypeChecklist + `","data":{"items":[{"text":"` + words + `","checked":false}]}}`,
		`{"type":"` + TypeTable + `","data":{"content":[["` + words + `"]]}}`,
		`{"type":"unknown-kind","data":{"text":"` + words + `"}}`,
	}
	assert.Equal(t, 1, ReadingTime(doc(blocks...)))
}

func TestReadingTimeBlockKindsAreCaseInsensitive(t *testing.T) {
	half := strings.TrimSpace(strings.Repeat("word ", 200))
	lower := doc(paragraph(half), `{"type":"list","data":{"items":["`+half+`"]}}`)
	upper := doc(
		`{"type":"Paragraph","data":{"text":"`+half+`"}}`,
		`{"type":"List","data":{"items":["`+half+`"]}}`,
	)
	assert.Equal(t, ReadingTime(lower), ReadingTime(upper))
	assert.Equal(t, 2, ReadingTime(upper))
}

func TestReadingTimeListItemShapes(t *testing.T) {
	words := strings.TrimSpace(strings.Repeat("w ", 100))
	raw := doc(`{"type":"list","data":{"items":[` +
		`"` + words + `",` +
		`{"content":"` + words + `"},` +
		`{"text":"` + words + `"},` +
		`{"checked":true}` +
		`]}}`)
	// 300 words total round to 2 minutes; the itemless object adds nothing.
	assert.Equal(t, 2, ReadingTime(raw))
}

func TestReadingTimeStripsMarkup(t *testing.T) {
	// Markup must not glue words together or count as words.
	raw := doc(paragraph("<b>one</b> <i>two</i> <a href=\"https://example.com\">three</a>"))
	d := Parse(raw)
	require.NotNil(t, d)
	assert.Equal(t, "one two three", StripTags(stringField(d.Blocks[0].Data, "text")))
}

func TestReadingTimeShortMixedDocument(t *testing.T) {
	raw := doc(
		`{"type":"header","data":{"text":"Intro"}}`,
		`{"type":"list","data":{"items":["one two three","four five"]}}`,
	)
	// 6 words total, still floored at one minute.
	assert.Equal(t, 1, ReadingTime(raw))
}

func TestReadingTimeOrderIndependent(t *testing.T) {
	a := paragraph(strings.Repeat("w ", 150))
	b := `{"type":"quote","data":{"text":"` + strings.TrimSpace(strings.Repeat("w ", 150)) + `"}}`
	assert.Equal(t, ReadingTime(doc(a, b)), ReadingTime(doc(b, a)))
}

func TestExcerptExplicitDescriptionWins(t *testing.T) {
	raw := doc(paragraph("the first paragraph"))
	assert.Equal(t, "hand-written summary", Excerpt("hand-written summary", raw))
}

func TestExcerptFallsBackToFirstParagraph(t *testing.T) {
	raw := doc(
		`{"type":"header","data":{"text":"A Headline"}}`,
		paragraph("The <b>first</b> paragraph body."),
		paragraph("The second paragraph body."),
	)
	assert.Equal(t, "The first paragraph body.", Excerpt("", raw))
}

func TestExcerptTruncatesLongParagraphs(t *testing.T) {
	long := strings.Repeat("abcde ", 50) // 300 chars
	got := Excerpt("", doc(paragraph(long)))
	require.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, []rune(got), 203)
}

func TestExcerptEmptyWithoutParagraphs(t *testing.T) {
	assert.Equal(t, "", Excerpt("", nil))
	assert.Equal(t, "", Excerpt("", doc(`{"type":"image","data":{}}`)))
}

func TestParseRoundTripIsLossless(t *testing.T) {
	// Unknown block kinds and extra fields survive storage untouched because
	// the document is kept as raw JSON; Parse is only a read-side view.
	raw := json.RawMessage(`{"time":1712345678,"blocks":[{"id":"x1","type":"futuristic","data":{"anything":[1,2,3]}}],"version":"2.28.2"}`)
	d := Parse(raw)
	require.NotNil(t, d)
	assert.Equal(t, "futuristic", d.Blocks[0].Type)
	assert.Equal(t, "x1", d.Blocks[0].ID)
}

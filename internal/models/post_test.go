package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagList(t *testing.T) {
	p := &Post{Tags: " ev, charging ,, fleet "}
	assert.Equal(t, []string{"ev", "charging", "fleet"}, p.TagList())

	p.Tags = ""
	assert.Equal(t, []string{}, p.TagList())
}

func TestCategoryDisplayName(t *testing.T) {
	assert.Equal(t, "Electronic Vehicles", CategoryDisplayName("electronic-vehicles"))
	// Unknown slugs pass through unchanged.
	assert.Equal(t, "custom", CategoryDisplayName("custom"))

	assert.True(t, ValidCategory("news"))
	assert.False(t, ValidCategory("bicycles"))
}

func TestPostDetailProjection(t *testing.T) {
	p := &Post{
		Title:           "T",
		Category:        "reviews",
		Tags:            "a,b",
		MetaDescription: "summary",
		Content:         json.RawMessage(`{"blocks":[]}`),
	}
	d := p.Detail()
	assert.Equal(t, "Reviews", d.CategoryName)
	assert.Equal(t, []string{"a", "b"}, d.TagList)
}

func TestPostListItemExcerptFallback(t *testing.T) {
	p := &Post{
		Title:   "T",
		Content: json.RawMessage(`{"blocks":[{"type":"paragraph","data":{"text":"Body text."}}]}`),
	}
	item := p.ListItem()
	assert.Equal(t, "Body text.", item.Excerpt)

	p.MetaDescription = "explicit"
	assert.Equal(t, "explicit", p.ListItem().Excerpt)
}

func TestPostContentRoundTrip(t *testing.T) {
	raw := `{"time":1712345678,"blocks":[{"id":"x","type":"futuristic","data":{"k":[1,2]}}],"version":"2.28.2"}`
	var p Post
	require.NoError(t, json.Unmarshal([]byte(`{"title":"T","content":`+raw+`}`), &p))

	out, err := json.Marshal(&p)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.JSONEq(t, raw, string(decoded["content"]))
}

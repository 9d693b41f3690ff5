// Package content models the structured rich-text documents produced by the
// block editor and derives metadata (reading time, excerpt) from them.
//
// Documents are stored and transported as raw JSON so that blocks the editor
// adds in future versions round-trip untouched. The typed view below is used
// only by the derivation functions and parses tolerantly: anything that does
// not look like a document simply derives nothing.
package content

import (
	"bytes"
	"encoding/json"
)

// Block kinds the editor currently emits. Unknown kinds are preserved but
// contribute nothing to derived metrics.
const (
	TypeParagraph = "paragraph"
	TypeHeader    = "header"
	TypeList      = "list"
	TypeImage     = "image"
	TypeQuote     = "quote"
	TypeDelimiter = "delimiter"
	TypeLink      = "link"
	TypeRaw       = "raw"
	TypeChecklist = "checklist"
	TypeTable     = "table"
)

type Document struct {
	Blocks []Block `json:"blocks"`
}

// Block is one unit of editor content. Data is kept loose: the derivation
// functions pull out only the fields they understand.
type Block struct {
	ID   string         `json:"id,omitempty"`
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Parse decodes a raw document. Absent, null or malformed input yields nil;
// callers treat a nil document as empty.
func Parse(raw json.RawMessage) *Document {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return &doc
}

func stringField(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}

// listItems extracts the textual items of a list block. The editor has
// shipped both plain string items and {"content": "..."} objects, so both
// are accepted; anything else contributes nothing.
func listItems(data map[string]any) []string {
	raw, ok := data["items"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			if s := stringField(v, "content"); s != "" {
				out = append(out, s)
			} else if s := stringField(v, "text"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

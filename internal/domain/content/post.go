package content

import (
	"encoding/json"
	"time"
)

type Source struct {
	Path string
	Raw  []byte
}

// Metadata is the validated form of a post's meta-data annotation. It is
// built once by the extractor and treated as read-only afterwards.
type Metadata struct {
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	ReadableDate string    `json:"readableDate"`
	Time         time.Time `json:"time"`

	// keys of the annotation other than title and date
	Extra map[string]json.RawMessage `json:"extra,omitempty"`
}

// Field decodes an extra annotation key into a fresh value, so callers
// (templates included) never share the record's storage.
func (m Metadata) Field(key string) any {
	raw, ok := m.Extra[key]
	if !ok {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// PublishedBefore reports whether the post is visible at instant now.
func (m Metadata) PublishedBefore(now time.Time) bool {
	return m.Time.Before(now)
}

type PostRecord struct {
	PostID string   `json:"postId"`
	HTML   string   `json:"html"`
	Meta   Metadata `json:"meta"`
}

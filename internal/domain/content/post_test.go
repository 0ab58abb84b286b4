package content

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetadata_FieldDecodesCopy(t *testing.T) {
	m := Metadata{Extra: map[string]json.RawMessage{
		"tags":  json.RawMessage(`["go","blog"]`),
		"draft": json.RawMessage(`false`),
	}}

	tags, ok := m.Field("tags").([]any)
	require.True(t, ok)
	require.Equal(t, []any{"go", "blog"}, tags)

	tags[0] = "changed"
	require.Equal(t, []any{"go", "blog"}, m.Field("tags"))

	require.Equal(t, false, m.Field("draft"))
	require.Nil(t, m.Field("missing"))
}

func TestMetadata_PublishedBeforeIsStrict(t *testing.T) {
	at := time.Date(2016, time.March, 3, 0, 0, 0, 0, time.UTC)
	m := Metadata{Time: at}

	require.True(t, m.PublishedBefore(at.Add(time.Nanosecond)))
	require.False(t, m.PublishedBefore(at))
	require.False(t, m.PublishedBefore(at.Add(-time.Hour)))
}

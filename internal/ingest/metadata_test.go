package ingest

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainerr "mdblog/internal/domain/errors"
)

func TestExtractMetadata_Valid(t *testing.T) {
	src := []byte("<!-- meta-data: {\"title\":\"Hello\",\"date\":\"03-03-2016\",\"tags\":[\"go\"]} -->\n# Hi\n")

	meta, err := ExtractMetadata("posts/hello.md", src, time.UTC)
	require.NoError(t, err)
	require.Equal(t, "Hello", meta.Title)
	require.Equal(t, "2016-03-03T00:00:00Z", meta.Date)
	require.Equal(t, "Thursday, March 3rd 2016", meta.ReadableDate)
	require.True(t, meta.Time.Equal(time.Date(2016, time.March, 3, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, []any{"go"}, meta.Field("tags"))
	require.NotContains(t, meta.Extra, "title")
	require.NotContains(t, meta.Extra, "date")
}

func TestExtractMetadata_MultiLineAnnotation(t *testing.T) {
	src := []byte("intro\n<!--\n  meta-data: {\n    \"title\": \"Spread out\",\n    \"date\": \"01-01-2000\"\n  }\n-->\nbody")

	meta, err := ExtractMetadata("a.md", src, time.UTC)
	require.NoError(t, err)
	require.Equal(t, "Spread out", meta.Title)
	require.Equal(t, "2000-01-01T00:00:00Z", meta.Date)
	require.Equal(t, "Saturday, January 1st 2000", meta.ReadableDate)
	require.Nil(t, meta.Extra)
}

func TestExtractMetadata_UsesLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	src := []byte(`<!-- meta-data: {"title":"x","date":"01-01-2000"} -->`)

	meta, err := ExtractMetadata("a.md", src, loc)
	require.NoError(t, err)
	require.Equal(t, "2000-01-01T00:00:00+01:00", meta.Date)

	meta, err = ExtractMetadata("a.md", src, nil)
	require.NoError(t, err)
	require.Equal(t, time.Local, meta.Time.Location())
}

func TestExtractMetadata_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind error
	}{
		{"no annotation", "# Just a post\n<!-- a plain comment -->", domainerr.ErrMissingMetadata},
		{"empty file", "", domainerr.ErrMissingMetadata},
		{"missing title", `<!-- meta-data: {"date":"01-01-2000"} -->`, domainerr.ErrInvalidMetadata},
		{"blank title", `<!-- meta-data: {"title":"   ","date":"01-01-2000"} -->`, domainerr.ErrInvalidMetadata},
		{"title not a string", `<!-- meta-data: {"title":42,"date":"01-01-2000"} -->`, domainerr.ErrInvalidMetadata},
		{"missing date", `<!-- meta-data: {"title":"x"} -->`, domainerr.ErrInvalidMetadata},
		{"iso date", `<!-- meta-data: {"title":"x","date":"2000-01-01"} -->`, domainerr.ErrInvalidMetadata},
		{"impossible date", `<!-- meta-data: {"title":"x","date":"31-02-2016"} -->`, domainerr.ErrInvalidMetadata},
		{"broken json", `<!-- meta-data: {"title":"x", -->`, domainerr.ErrInvalidMetadata},
		{"not an object", `<!-- meta-data: ["x"] -->`, domainerr.ErrInvalidMetadata},
		{"null payload", `<!-- meta-data: null -->`, domainerr.ErrInvalidMetadata},
		{
			"two annotations",
			`<!-- meta-data: {"title":"a","date":"01-01-2000"} --><!-- meta-data: {"title":"b","date":"01-01-2000"} -->`,
			domainerr.ErrInvalidMetadata,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractMetadata("posts/bad.md", []byte(tc.src), time.UTC)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.kind), "got %v", err)
			require.Contains(t, err.Error(), "posts/bad.md")

			var pe *domainerr.PathError
			require.True(t, errors.As(err, &pe))
			require.Equal(t, "posts/bad.md", pe.Path)
		})
	}
}

func TestExtractMetadata_MissingTitleNamesField(t *testing.T) {
	_, err := ExtractMetadata("p.md", []byte(`<!-- meta-data: {"date":"01-01-2000"} -->`), time.UTC)
	require.ErrorContains(t, err, "title")
}

func TestReadableDate_Ordinals(t *testing.T) {
	cases := map[int]string{
		1:  "Wednesday, June 1st 2016",
		2:  "Thursday, June 2nd 2016",
		3:  "Friday, June 3rd 2016",
		11: "Saturday, June 11th 2016",
		22: "Wednesday, June 22nd 2016",
	}
	for d, want := range cases {
		require.Equal(t, want, ReadableDate(time.Date(2016, time.June, d, 0, 0, 0, 0, time.UTC)))
	}
}

func TestStripComments(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"none", "# Title\n\ntext", "# Title\n\ntext"},
		{"metadata", "<!-- meta-data: {\"title\":\"x\"} -->\n# Hi", "\n# Hi"},
		{"multi-line", "a<!--\nline one\nline two\n-->b", "ab"},
		{"non-greedy", "a<!-- x -->b<!-- y -->c", "abc"},
		{"reassembled", "<!<!-- a -->-- b -->tail", "tail"},
		{"unterminated", "text <!-- open", "text <!-- open"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			once := StripComments([]byte(tc.src))
			require.Equal(t, tc.want, string(once))

			twice := StripComments(once)
			require.Equal(t, once, twice)
			require.False(t, commentPattern.Match(twice))
		})
	}
}

func TestStripComments_DoesNotModifyInput(t *testing.T) {
	src := []byte("a<!-- x -->b")
	orig := bytes.Clone(src)
	_ = StripComments(src)
	require.Equal(t, orig, src)
}

func TestPostID(t *testing.T) {
	cases := map[string]string{
		"posts/foo/2016-03-03-hello.md": "2016-03-03-hello",
		"2016-03-03-hello.md":           "2016-03-03-hello",
		"/abs/path/Hello-World.MD":      "hello-world",
		"notes/v1.2.markdown":           "v1.2",
		"noext":                         "noext",
	}
	for path, want := range cases {
		require.Equal(t, want, PostID(path), path)
	}
}

func TestExtractMetadata_KeepsTitleAsWritten(t *testing.T) {
	src := []byte(`<!-- meta-data: {"title":"  Hello  ","date":" 01-01-2000 "} -->`)

	meta, err := ExtractMetadata("a.md", src, time.UTC)
	require.NoError(t, err)
	require.Equal(t, "  Hello  ", meta.Title)
	require.Equal(t, "2000-01-01T00:00:00Z", meta.Date)
}

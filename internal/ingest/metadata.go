package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mdblog/internal/domain/content"
	domainerr "mdblog/internal/domain/errors"
)

// DateLayout is the DD-MM-YYYY format of the annotation's date field.
const DateLayout = "02-01-2006"

var (
	metaPattern    = regexp.MustCompile(`(?s)<!--\s*meta-data:\s*(.*?)\s*-->`)
	commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
)

type metaPayload struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

func (p metaPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.By(notBlank)),
		validation.Field(&p.Date, validation.Required, validation.Date(DateLayout)),
	)
}

func notBlank(value interface{}) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}

// ExtractMetadata parses the single `<!-- meta-data: {...} -->` annotation of
// a post. Dates are taken as midnight in loc (time.Local when nil).
func ExtractMetadata(path string, raw []byte, loc *time.Location) (content.Metadata, error) {
	matches := metaPattern.FindAllSubmatch(raw, -1)
	switch len(matches) {
	case 0:
		return content.Metadata{}, domainerr.MissingMetadata(path)
	case 1:
	default:
		return content.Metadata{}, domainerr.InvalidMetadata(path,
			fmt.Errorf("found %d meta-data annotations, want exactly one", len(matches)))
	}
	payload := matches[0][1]

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return content.Metadata{}, domainerr.InvalidMetadata(path, fmt.Errorf("decode payload: %w", err))
	}

	var p metaPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return content.Metadata{}, domainerr.InvalidMetadata(path,
				fmt.Errorf("%s: must be a string", typeErr.Field))
		}
		return content.Metadata{}, domainerr.InvalidMetadata(path, err)
	}
	p.Date = strings.TrimSpace(p.Date)
	if err := p.Validate(); err != nil {
		return content.Metadata{}, domainerr.InvalidMetadata(path, err)
	}

	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, p.Date, loc)
	if err != nil {
		return content.Metadata{}, domainerr.InvalidMetadata(path, err)
	}

	delete(fields, "title")
	delete(fields, "date")
	if len(fields) == 0 {
		fields = nil
	}

	return content.Metadata{
		Title:        p.Title,
		Date:         t.Format(time.RFC3339),
		ReadableDate: ReadableDate(t),
		Time:         t,
		Extra:        fields,
	}, nil
}

// ReadableDate formats t as e.g. "Thursday, March 3rd 2016".
func ReadableDate(t time.Time) string {
	return fmt.Sprintf("%s, %s %s %d", t.Weekday(), t.Month(), humanize.Ordinal(t.Day()), t.Year())
}

// StripComments removes every HTML comment. It repeats until no complete
// comment is left, so removing one comment can't leave a new one behind.
func StripComments(src []byte) []byte {
	out := src
	for commentPattern.Match(out) {
		out = commentPattern.ReplaceAll(out, nil)
	}
	return out
}

// PostID is the lower-cased file name of path without its extension.
func PostID(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return cases.Lower(language.Und).String(stem)
}

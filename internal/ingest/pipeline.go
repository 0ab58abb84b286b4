package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"mdblog/internal/domain/content"
	domainerr "mdblog/internal/domain/errors"
	"os"
	"time"
)

// Markdown turns Markdown source into HTML.
type Markdown interface {
	Render(src []byte) ([]byte, error)
}

type Options struct {
	SourceDir string
	Location  *time.Location
	Markdown  Markdown
	Logger    *slog.Logger
}

// Ingest discovers every post under opt.SourceDir and maps it to a record.
//
// Discovery and read failures abort at once. Metadata problems are gathered
// over all posts and returned together, so one run reports every broken file.
func Ingest(opt Options) ([]content.PostRecord, error) {
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}

	files, err := DiscoverSource(opt.SourceDir)
	if err != nil {
		return nil, err
	}
	log.Debug("discovered sources", "dir", opt.SourceDir, "count", len(files))

	var (
		out  = make([]content.PostRecord, 0, len(files))
		errs []error
		seen = make(map[string]string, len(files))
	)
	for _, sf := range files {
		raw, err := os.ReadFile(sf.Path)
		if err != nil {
			return nil, domainerr.Discovery(sf.Path, err)
		}

		rec, err := BuildRecord(content.Source{Path: sf.Path, Raw: raw}, opt.Location, opt.Markdown)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if first, ok := seen[rec.PostID]; ok {
			errs = append(errs, domainerr.InvalidMetadata(sf.Path,
				fmt.Errorf("post id %q already used by %s", rec.PostID, first)))
			continue
		}
		seen[rec.PostID] = sf.Path

		log.Debug("post ready", "post_id", rec.PostID, "path", sf.Path, "date", rec.Meta.Date)
		out = append(out, rec)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// BuildRecord runs one source through extraction, comment stripping and
// Markdown rendering.
func BuildRecord(src content.Source, loc *time.Location, md Markdown) (content.PostRecord, error) {
	meta, err := ExtractMetadata(src.Path, src.Raw, loc)
	if err != nil {
		return content.PostRecord{}, err
	}
	id := PostID(src.Path)
	if id == "" {
		return content.PostRecord{}, domainerr.InvalidMetadata(src.Path, errors.New("file name gives an empty post id"))
	}

	html, err := md.Render(StripComments(src.Raw))
	if err != nil {
		return content.PostRecord{}, fmt.Errorf("markdown render(%s): %w", src.Path, err)
	}

	return content.PostRecord{
		PostID: id,
		HTML:   string(html),
		Meta:   meta,
	}, nil
}

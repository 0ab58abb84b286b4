package build

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mdblog/internal/domain/config"
	"mdblog/internal/domain/content"
	domainerr "mdblog/internal/domain/errors"
	"mdblog/internal/domain/site"
	"mdblog/internal/index"
	"mdblog/internal/ingest"
	"mdblog/internal/render"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Builder struct {
	Cfg config.Config

	// Templates is required for config.ModeHTML.
	Templates render.Renderer
	// Markdown defaults to render.NewMarkdownRenderer().
	Markdown ingest.Markdown
	Logger   *slog.Logger

	// IndexPath places the post catalog; empty keeps it in a temporary
	// directory for the duration of Run.
	IndexPath string
}

type Result struct {
	BuildID   string
	Posts     int
	Published int
	Written   []string
}

// Run performs one full build: ingest every post, then write the artifacts
// of the configured mode.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	res := &Result{BuildID: uuid.NewString()}
	log := b.logger().With("build_id", res.BuildID)
	start := time.Now()

	recs, err := b.ingest(log)
	if err != nil {
		return nil, err
	}
	res.Posts = len(recs)

	outDir := b.Cfg.Build.PublicDir
	if err := os.MkdirAll(filepath.Join(outDir, "posts"), 0o755); err != nil {
		return nil, domainerr.Write(outDir, err)
	}

	switch b.Cfg.Build.Mode {
	case config.ModeJSON:
		err = b.buildJSON(recs, res)
	case config.ModeHTML, "":
		err = b.buildHTML(ctx, recs, res)
	default:
		err = fmt.Errorf("unknown build mode %q", b.Cfg.Build.Mode)
	}
	if err != nil {
		return nil, err
	}

	log.Info("build finished",
		"mode", b.Cfg.Build.Mode,
		"posts", res.Posts,
		"published", res.Published,
		"files", len(res.Written),
		"duration_ms", time.Since(start).Milliseconds())
	return res, nil
}

// Check ingests every post without writing anything and returns how many
// posts are valid.
func (b *Builder) Check(ctx context.Context) (int, error) {
	recs, err := b.ingest(b.logger())
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

func (b *Builder) ingest(log *slog.Logger) ([]content.PostRecord, error) {
	loc, err := b.Cfg.Site.Location()
	if err != nil {
		return nil, fmt.Errorf("site time zone: %w", err)
	}
	md := b.Markdown
	if md == nil {
		md = render.NewMarkdownRenderer()
	}
	log.Info("ingesting posts", "source", b.Cfg.Build.SourceDir)
	recs, err := ingest.Ingest(ingest.Options{
		SourceDir: b.Cfg.Build.SourceDir,
		Location:  loc,
		Markdown:  md,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	return recs, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

type postArtifact struct {
	PostID string `json:"postId"`
	HTML   string `json:"html"`
}

func (b *Builder) buildJSON(recs []content.PostRecord, res *Result) error {
	for _, rec := range recs {
		data, err := encodePostArtifact(rec)
		if err != nil {
			return fmt.Errorf("encode post(%s): %w", rec.PostID, err)
		}
		if err := b.write(site.PostJSONRoute(rec.PostID), data, res); err != nil {
			return err
		}
	}
	return nil
}

// encodePostArtifact emits compact JSON with HTML left unescaped.
func encodePostArtifact(rec content.PostRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(postArtifact{PostID: rec.PostID, HTML: rec.HTML}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (b *Builder) buildHTML(ctx context.Context, recs []content.PostRecord, res *Result) (err error) {
	if b.Templates == nil {
		return errors.New("html mode needs templates")
	}

	st, err := index.Open(index.OpenOptions{Path: b.IndexPath})
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close index: %w", cerr)
		}
	}()

	if err := st.Rebuild(recs); err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}

	if err := b.buildPosts(ctx, st, res); err != nil {
		return fmt.Errorf("build posts: %w", err)
	}
	if err := b.buildIndex(ctx, st, res); err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	return nil
}

// buildPosts writes a page for every post, published or not.
func (b *Builder) buildPosts(ctx context.Context, st *index.Store, res *Result) error {
	recs, err := st.All()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		htmlBytes, err := b.Templates.RenderPost(ctx, render.NewPostPage(b.Cfg.Site, rec))
		if err != nil {
			return fmt.Errorf("render post(%s): %w", rec.PostID, err)
		}
		if err := b.write(site.PostRoute(rec.PostID), htmlBytes, res); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildIndex(ctx context.Context, st *index.Store, res *Result) error {
	published, err := st.Published(b.Cfg.Build.Now)
	if err != nil {
		return err
	}

	sections := make([][]byte, 0, len(published))
	for _, rec := range published {
		frag, err := b.Templates.RenderSection(ctx, render.NewPostPage(b.Cfg.Site, rec))
		if err != nil {
			return fmt.Errorf("render section(%s): %w", rec.PostID, err)
		}
		sections = append(sections, bytes.TrimRight(frag, "\n"))
	}
	res.Published = len(published)

	page := render.IndexPage{
		Site:      b.Cfg.Site,
		HTML:      template.HTML(bytes.Join(sections, []byte("\n"))),
		Count:     len(published),
		Generated: b.Cfg.Build.Now,
	}
	htmlBytes, err := b.Templates.RenderIndex(ctx, page)
	if err != nil {
		return err
	}

	return b.write(site.IndexRoute(), htmlBytes, res)
}

// write stores data at the route's output path under the public dir.
func (b *Builder) write(r site.Route, data []byte, res *Result) error {
	if err := writeFile(b.Cfg.Build.PublicDir, r.OutPath, data); err != nil {
		return err
	}
	b.logger().Debug("wrote artifact", "route", r.String(), "bytes", len(data))
	res.Written = append(res.Written, r.OutPath)
	return nil
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return domainerr.Write(full, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return domainerr.Write(full, err)
	}
	return nil
}

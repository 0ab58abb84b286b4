package render

import (
	"html/template"
	"mdblog/internal/domain/config"
	"mdblog/internal/domain/content"
	"mdblog/internal/domain/site"
	"time"
)

// PostPage feeds both section.tmpl and post.tmpl.
type PostPage struct {
	Site   config.SiteConfig
	PostID string
	URL    string
	Meta   content.Metadata
	HTML   template.HTML
}

func NewPostPage(s config.SiteConfig, rec content.PostRecord) PostPage {
	return PostPage{
		Site:   s,
		PostID: rec.PostID,
		URL:    site.PostRoute(rec.PostID).URL(),
		Meta:   rec.Meta,
		// post bodies are rendered from trusted sources with raw HTML enabled
		HTML: template.HTML(rec.HTML),
	}
}

// IndexPage feeds index.tmpl. HTML holds the section fragments of every
// published post joined by newlines.
type IndexPage struct {
	Site      config.SiteConfig
	HTML      template.HTML
	Count     int
	Generated time.Time
}

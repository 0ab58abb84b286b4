package render

import (
	"bytes"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// SyntaxStyle is the chroma style behind the highlighting classes.
const SyntaxStyle = "github"

type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer renders GitHub flavoured Markdown, highlights fenced
// code with chroma CSS classes and lets raw HTML in posts through untouched.
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(SyntaxStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &MarkdownRenderer{md: md}
}

func (r *MarkdownRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SyntaxCSS is the stylesheet for the classes emitted on highlighted code.
func SyntaxCSS() (string, error) {
	var buf bytes.Buffer
	f := chromahtml.New(chromahtml.WithClasses(true))
	if err := f.WriteCSS(&buf, styles.Get(SyntaxStyle)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"time"
)

const (
	SectionTemplate = "section.tmpl"
	PostTemplate    = "post.tmpl"
	IndexTemplate   = "index.tmpl"
)

//go:embed theme/*.tmpl
var defaultTheme embed.FS

type TemplateRenderer struct {
	tpl *template.Template
}

// NewTemplateRenderer parses every *.tmpl file of themeDir, or the built-in
// theme when themeDir is empty.
func NewTemplateRenderer(themeDir string) (*TemplateRenderer, error) {
	var (
		tpl *template.Template
		err error
	)
	base := template.New("").Funcs(templateFuncs())
	if themeDir == "" {
		tpl, err = base.ParseFS(defaultTheme, "theme/*.tmpl")
	} else {
		tpl, err = base.ParseGlob(filepath.Join(themeDir, "*.tmpl"))
	}
	if err != nil {
		return nil, err
	}
	if err := checkThemeTemplates(tpl); err != nil {
		return nil, err
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(t interface{}, layout string) string {
			switch v := t.(type) {
			case nil:
				return ""
			case string:
				return v
			case interface{ Format(string) string }:
				return v.Format(layout)
			default:
				return ""
			}
		},
		"nowYear": func() int {
			return time.Now().Year()
		},
		"syntaxCSS": func() (template.CSS, error) {
			css, err := SyntaxCSS()
			return template.CSS(css), err
		},
	}
}

func (r *TemplateRenderer) RenderSection(ctx context.Context, page PostPage) ([]byte, error) {
	return r.exec(SectionTemplate, page)
}

func (r *TemplateRenderer) RenderPost(ctx context.Context, page PostPage) ([]byte, error) {
	return r.exec(PostTemplate, page)
}

func (r *TemplateRenderer) RenderIndex(ctx context.Context, page IndexPage) ([]byte, error) {
	return r.exec(IndexTemplate, page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checkThemeTemplates(tpl *template.Template) error {
	for _, name := range []string{SectionTemplate, PostTemplate, IndexTemplate} {
		if tpl.Lookup(name) == nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}

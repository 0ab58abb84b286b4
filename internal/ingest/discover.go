package ingest

import (
	"io/fs"
	domainerr "mdblog/internal/domain/errors"
	"path/filepath"
	"sort"
	"strings"
)

type SourceFile struct {
	Path string
}

// DiscoverSource lists every Markdown file under root in lexical path order.
func DiscoverSource(root string) ([]SourceFile, error) {
	var out []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isMarkdown(d.Name()) {
			out = append(out, SourceFile{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, domainerr.Discovery(root, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func isMarkdown(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".markdown")
}

package site

import (
	"fmt"
	"path/filepath"
	"strings"
)

type RouteKind string

const (
	RouteIndex    RouteKind = "index"
	RoutePost     RouteKind = "post"
	RoutePostJSON RouteKind = "post-json"
)

const postsDir = "posts"

// Route names one generated artifact. OutPath is relative to the public dir.
type Route struct {
	Kind    RouteKind
	Slug    string
	OutPath string
}

func IndexRoute() Route {
	return Route{Kind: RouteIndex, OutPath: "index.html"}
}

func PostRoute(postID string) Route {
	return Route{
		Kind:    RoutePost,
		Slug:    postID,
		OutPath: filepath.Join(postsDir, postID+".html"),
	}
}

func PostJSONRoute(postID string) Route {
	return Route{
		Kind:    RoutePostJSON,
		Slug:    postID,
		OutPath: filepath.Join(postsDir, postID+".json"),
	}
}

// URL is the site-relative link to the route, always slash separated.
func (r Route) URL() string {
	return "/" + filepath.ToSlash(r.OutPath)
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.OutPath != "" {
		parts = append(parts, fmt.Sprintf("out=%s", r.OutPath))
	}
	return strings.Join(parts, " ")
}

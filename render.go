package pubstatic

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components used to render a site. The core only
// computes data; these functions decide what the pages look like. A nil
// function skips its routes.
type ViewFuncs struct {
	Home     func(cfg SiteConfig, docs []Document) templ.Component
	Document func(cfg SiteConfig, doc Document) templ.Component
	TagIndex func(cfg SiteConfig, entries []TagIndexEntry) templ.Component
	TagPage  func(cfg SiteConfig, chunk TagPageChunk) templ.Component
	NotFound func(cfg SiteConfig) templ.Component

	// Assets is copied verbatim into the output root (stylesheets, icons).
	Assets fs.FS
}

// Route is one rendered page of the site at a public URL path.
type Route struct {
	Path      string
	Component templ.Component
}

// NotFoundPath is where the not-found page is written in static output.
const NotFoundPath = "/404.html"

// Routes lists every page of site in a fixed order: home, the tag index,
// each tag page chunk in index order, documents in corpus order, then the
// not-found page.
func (v ViewFuncs) Routes(site *Site) []Route {
	cfg := site.Config
	var routes []Route
	if v.Home != nil {
		routes = append(routes, Route{Path: "/", Component: v.Home(cfg, site.Recent())})
	}
	if v.TagIndex != nil {
		routes = append(routes, Route{Path: "/tags/", Component: v.TagIndex(cfg, site.Index)})
	}
	if v.TagPage != nil {
		for _, page := range site.Pages {
			for _, chunk := range Paginate(page, cfg.PostsPerPage) {
				routes = append(routes, Route{Path: chunk.Path, Component: v.TagPage(cfg, chunk)})
			}
		}
	}
	if v.Document != nil {
		for _, d := range site.Documents {
			routes = append(routes, Route{Path: d.Path, Component: v.Document(cfg, d)})
		}
	}
	if v.NotFound != nil {
		routes = append(routes, Route{Path: NotFoundPath, Component: v.NotFound(cfg)})
	}
	return routes
}

// RenderBytes renders cmp into memory.
func RenderBytes(ctx context.Context, cmp templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OutputFile maps a public URL path to a slash-separated file path relative
// to the output root: "/tags/ruby/" -> "tags/ruby/index.html". A path with a
// file extension and no trailing slash is kept as a file. ".." segments
// cannot escape the root.
func OutputFile(urlPath string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if clean == "" {
		return "index.html", nil
	}
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("pubstatic: invalid output path %q", urlPath)
	}
	if path.Ext(clean) != "" && !strings.HasSuffix(urlPath, "/") {
		return clean, nil
	}
	return clean + "/index.html", nil
}

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

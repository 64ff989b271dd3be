package pubstatic

import (
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	if a.Views.Home == nil {
		return echo.ErrNotFound
	}
	site, err := a.Cache.Site(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(site.Config, site.Recent()))
}

func (a *App) handleTags(c echo.Context) error {
	if a.Views.TagIndex == nil {
		return echo.ErrNotFound
	}
	site, err := a.Cache.Site(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.TagIndex(site.Config, site.Index))
}

// handleTag serves /tags/:tag/ and /tags/:tag/page/:n/. Page 1 only exists
// at the tag root, as in the static output.
func (a *App) handleTag(c echo.Context) error {
	if a.Views.TagPage == nil {
		return echo.ErrNotFound
	}
	value, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return echo.ErrNotFound
	}
	n := 1
	if raw := c.Param("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n < 2 {
			return echo.ErrNotFound
		}
	}
	site, err := a.Cache.Site(c.Request().Context())
	if err != nil {
		return err
	}
	page, ok := site.PageByValue(value)
	if !ok {
		return echo.ErrNotFound
	}
	chunks := Paginate(page, site.Config.PostsPerPage)
	if n > len(chunks) {
		return echo.ErrNotFound
	}
	return Render(c, a.Views.TagPage(site.Config, chunks[n-1]))
}

// handleDocument resolves any other path, first as a document path and then
// as an asset.
func (a *App) handleDocument(c echo.Context) error {
	p := c.Request().URL.Path
	site, err := a.Cache.Site(c.Request().Context())
	if err != nil {
		return err
	}
	if a.Views.Document != nil {
		if doc, ok := site.DocumentByPath(p); ok {
			return Render(c, a.Views.Document(site.Config, doc))
		}
	}
	if a.Views.Assets != nil {
		name := strings.TrimPrefix(path.Clean("/"+p), "/")
		if info, err := fs.Stat(a.Views.Assets, name); err == nil && !info.IsDir() {
			return echo.StaticFileHandler(name, a.Views.Assets)(c)
		}
	}
	return echo.ErrNotFound
}

func (a *App) handleNotFound(c echo.Context) error {
	return echo.ErrNotFound
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound && a.Views.NotFound != nil {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = c.String(code, "Build failed: "+err.Error())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

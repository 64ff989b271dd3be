// Package pubstatic is a static blog builder. It loads Markdown documents
// with front matter, derives a counted tag index and one listing page per
// tag, and renders everything through user-provided templ components.
//
// The same pipeline backs a live preview server that rebuilds when content
// changes.
package pubstatic

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// App is the preview server. It wires together the builder, the site cache,
// handlers, middleware and the user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *SiteCache
	Views  ViewFuncs

	builder  *Builder
	logger   *log.Logger
	source   Source
	watchDir string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// New creates a preview App with the given configuration and view functions.
// Content is read from cfg.ContentDir unless WithSource is given.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		Views:    views,
		debounce: 300 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = NewLogger()
	}
	if a.source == nil {
		a.source = NewFSSource(os.DirFS(cfg.ContentDir), cfg)
		a.watchDir = cfg.ContentDir
	}
	a.Echo.HideBanner = true
	a.Echo.Logger = a.logger
	a.builder = NewBuilder(cfg, a.source, views, a.logger)
	a.Cache = NewSiteCache(a.builder, cfg.CacheTTL)
	return a
}

// Setup validates the configuration and registers middleware and routes. It
// is called by Start; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("pubstatic: config: %w", err)
	}
	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Start builds the site once, starts the content watcher and serves until
// the server is closed.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if _, err := a.Cache.Site(context.Background()); err != nil {
		return fmt.Errorf("pubstatic: initial build: %w", err)
	}
	if a.watchDir != "" {
		if err := a.watch(a.watchDir); err != nil {
			return fmt.Errorf("pubstatic: watch content: %w", err)
		}
	}

	a.logger.Infof("serving %s on %s", a.Config.Name, a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/", a.handleHome)
	e.GET("/tags/", a.handleTags)
	e.GET("/tags/:tag/", a.handleTag)
	e.GET("/tags/:tag/page/:n/", a.handleTag)
	e.GET(NotFoundPath, a.handleNotFound)
	e.GET("/*", a.handleDocument)
}

// Close stops the watcher and the HTTP server. Call this when the app is
// shutting down.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Close()
	}
	return a.Echo.Close()
}

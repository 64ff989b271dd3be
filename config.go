package pubstatic

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/gommon/log"
)

// SiteConfig holds all configuration for a pubstatic site. It is read once at
// startup and passed by value to every collaborator.
type SiteConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`               // Site name (default "Blog")
	URL         string `mapstructure:"url" yaml:"url"`                 // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description" yaml:"description"` // Site description
	Author      string `mapstructure:"author" yaml:"author"`

	ContentDir string `mapstructure:"content_dir" yaml:"content_dir"` // Markdown root (default "content")
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`   // Build output (default "public")

	WordsPerMinute int  `mapstructure:"words_per_minute" yaml:"words_per_minute"` // Reading speed (default 200)
	PostsPerPage   int  `mapstructure:"posts_per_page" yaml:"posts_per_page"`     // 0 disables tag page pagination
	IncludeDrafts  bool `mapstructure:"include_drafts" yaml:"include_drafts"`

	Addr         string        `mapstructure:"addr" yaml:"addr"`                   // Preview listen address (default ":3000")
	DatabasePath string        `mapstructure:"database_path" yaml:"database_path"` // Build history (default "data/builds.db")
	CacheTTL     time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`         // Preview cache TTL (default 5min)
}

// DefaultWordsPerMinute is the reading speed used when none is configured.
const DefaultWordsPerMinute = 200

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.WordsPerMinute == 0 {
		c.WordsPerMinute = DefaultWordsPerMinute
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/builds.db"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

// WithDefaults returns a copy of c with every unset field defaulted.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}

// Validate checks the configuration after defaults have been applied.
func (c SiteConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required, validation.By(func(any) error {
			return checkOutputDir(c.OutputDir, c.ContentDir)
		})),
		validation.Field(&c.WordsPerMinute, validation.Required, validation.Min(1)),
		validation.Field(&c.PostsPerPage, validation.Min(0)),
	)
}

// ErrUnsafeOutput is returned when the output directory is the content
// directory or one of its parents.
var ErrUnsafeOutput = errors.New("output directory contains the content directory")

// checkOutputDir fails when outDir equals or contains contentDir. Paths are
// compared absolute, with symlinks resolved where they exist.
func checkOutputDir(outDir, contentDir string) error {
	if contentDir == "" {
		return nil
	}
	out, err := resolveDir(outDir)
	if err != nil {
		return err
	}
	content, err := resolveDir(contentDir)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(out, content)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("%w: %s contains %s", ErrUnsafeOutput, outDir, contentDir)
	}
	return nil
}

func resolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithSource replaces the filesystem content source. The file watcher is
// disabled for custom sources.
func WithSource(s Source) Option {
	return func(a *App) {
		a.source = s
	}
}

// WithDebounce sets how long the watcher waits after the last change before
// invalidating the cache (default 300ms).
func WithDebounce(d time.Duration) Option {
	return func(a *App) {
		a.debounce = d
	}
}

// NewLogger returns the logger used when none is supplied.
func NewLogger() *log.Logger {
	l := log.New("pubstatic")
	l.SetLevel(log.INFO)
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	return l
}

package pubstatic

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/labstack/gommon/log"
)

// Builder turns a document source into a validated Site and writes it out.
type Builder struct {
	cfg    SiteConfig
	source Source
	views  ViewFuncs
	logger *log.Logger
}

// NewBuilder returns a Builder. cfg gets defaults applied; a nil logger uses
// NewLogger.
func NewBuilder(cfg SiteConfig, source Source, views ViewFuncs, logger *log.Logger) *Builder {
	cfg.setDefaults()
	if logger == nil {
		logger = NewLogger()
	}
	return &Builder{cfg: cfg, source: source, views: views, logger: logger}
}

// Config returns the configuration the builder runs with.
func (b *Builder) Config() SiteConfig { return b.cfg }

// Build loads every document, derives the tag index and tag pages, and
// validates the result. Any error aborts the build; no partial site is
// returned.
func (b *Builder) Build(ctx context.Context) (*Site, error) {
	docs, err := b.source.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("pubstatic: load documents: %w", err)
	}
	site := &Site{
		Config:    b.cfg,
		Documents: docs,
		Index:     BuildTagIndex(docs),
		Pages:     PlanTagPages(docs),
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("pubstatic: validate: %w", err)
	}
	b.warnSharedPaths(docs)
	b.logger.Infof("built site: %d documents, %d tags", len(docs), len(site.Index))
	return site, nil
}

// Manifest lists the files of a written site.
type Manifest struct {
	Files  []string // slash-separated, relative to the output root, sorted
	Digest string   // hex SHA-256 over every path and its content
}

// Write renders site into outDir. Output is staged in a sibling temporary
// directory and swapped in only after every page rendered, so a failed
// write leaves the previous output untouched. Write refuses an outDir that
// is or contains the content directory.
func (b *Builder) Write(ctx context.Context, site *Site, outDir string) (Manifest, error) {
	if err := checkOutputDir(outDir, b.cfg.ContentDir); err != nil {
		return Manifest{}, fmt.Errorf("pubstatic: %w", err)
	}
	files, err := b.renderFiles(ctx, site)
	if err != nil {
		return Manifest{}, err
	}

	parent := filepath.Dir(filepath.Clean(outDir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("pubstatic: create output parent: %w", err)
	}
	tmp, err := os.MkdirTemp(parent, ".pubstatic-*")
	if err != nil {
		return Manifest{}, fmt.Errorf("pubstatic: create staging dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return Manifest{}, err
		}
		dst := filepath.Join(tmp, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return Manifest{}, fmt.Errorf("pubstatic: write %s: %w", name, err)
		}
		if err := os.WriteFile(dst, files[name], 0o644); err != nil {
			return Manifest{}, fmt.Errorf("pubstatic: write %s: %w", name, err)
		}
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(files[name])
		h.Write([]byte{0})
	}
	if err := os.Chmod(tmp, 0o755); err != nil {
		return Manifest{}, err
	}

	if err := os.RemoveAll(outDir); err != nil {
		return Manifest{}, fmt.Errorf("pubstatic: clear output: %w", err)
	}
	if err := os.Rename(tmp, outDir); err != nil {
		return Manifest{}, fmt.Errorf("pubstatic: publish output: %w", err)
	}
	b.logger.Infof("wrote %d files to %s", len(names), outDir)
	return Manifest{Files: names, Digest: hex.EncodeToString(h.Sum(nil))}, nil
}

// renderFiles renders every route and collects the assets, keyed by output
// file path.
func (b *Builder) renderFiles(ctx context.Context, site *Site) (map[string][]byte, error) {
	files := make(map[string][]byte)
	if b.views.Assets != nil {
		err := fs.WalkDir(b.views.Assets, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := fs.ReadFile(b.views.Assets, p)
			if err != nil {
				return err
			}
			files[p] = data
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("pubstatic: copy assets: %w", err)
		}
	}
	for _, r := range b.views.Routes(site) {
		name, err := OutputFile(r.Path)
		if err != nil {
			return nil, err
		}
		html, err := RenderBytes(ctx, r.Component)
		if err != nil {
			return nil, fmt.Errorf("pubstatic: render %s: %w", r.Path, err)
		}
		files[name] = html
	}
	return files, nil
}

// Result summarizes a Publish run.
type Result struct {
	Site      *Site
	Manifest  Manifest
	Record    BuildRecord
	Unchanged bool // output digest equals the previous recorded build
}

// Publish builds the site, writes it to outDir and, when history is not nil,
// records the build.
func (b *Builder) Publish(ctx context.Context, outDir string, history *BuildStore) (Result, error) {
	site, err := b.Build(ctx)
	if err != nil {
		return Result{}, err
	}
	m, err := b.Write(ctx, site, outDir)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Site:     site,
		Manifest: m,
		Record: BuildRecord{
			Documents: len(site.Documents),
			Tags:      len(site.Index),
			Pages:     len(site.Pages),
			Files:     len(m.Files),
			Digest:    m.Digest,
		},
	}
	if history == nil {
		return res, nil
	}

	prev, err := history.LastBuild()
	switch {
	case err == nil:
		res.Unchanged = prev.Digest == m.Digest
	case !errors.Is(err, ErrNotFound):
		return Result{}, fmt.Errorf("pubstatic: read history: %w", err)
	}
	rec, err := history.RecordBuild(res.Record)
	if err != nil {
		return Result{}, fmt.Errorf("pubstatic: record build: %w", err)
	}
	res.Record = rec
	if res.Unchanged {
		b.logger.Infof("output unchanged since build #%d", prev.ID)
	}
	return res, nil
}

// warnSharedPaths logs documents that share a public path; the later one
// overwrites the earlier in the output.
func (b *Builder) warnSharedPaths(docs []Document) {
	seen := make(map[string]string, len(docs))
	for _, d := range docs {
		key := path.Clean("/" + d.Path)
		if prev, ok := seen[key]; ok {
			b.logger.Warnf("documents %s and %s share path %s", prev, d.Slug, key)
			continue
		}
		seen[key] = d.Slug
	}
}

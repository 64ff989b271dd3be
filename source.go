package pubstatic

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Source returns the complete, ordered document corpus or fails as a whole.
type Source interface {
	Documents(ctx context.Context) ([]Document, error)
}

// FSSource loads every *.md file under FS. Documents are returned in lexical
// path order, which is the corpus order used for tag index insertion order
// and date tie-breaking.
type FSSource struct {
	FS             fs.FS
	WordsPerMinute int
	IncludeDrafts  bool
}

// NewFSSource returns a source over fsys, which should be rooted at the
// content directory. Unset config fields take their defaults.
func NewFSSource(fsys fs.FS, cfg SiteConfig) *FSSource {
	cfg.setDefaults()
	return &FSSource{
		FS:             fsys,
		WordsPerMinute: cfg.WordsPerMinute,
		IncludeDrafts:  cfg.IncludeDrafts,
	}
}

// Documents walks the filesystem and parses each Markdown file.
func (s *FSSource) Documents(ctx context.Context) ([]Document, error) {
	var files []string
	err := fs.WalkDir(s.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.EqualFold(path.Ext(p), ".md") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pubstatic: walk content: %w", err)
	}
	sort.Strings(files)

	docs := make([]Document, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, p := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := fs.ReadFile(s.FS, p)
		if err != nil {
			return nil, &LoadError{Source: p, Err: err}
		}
		docSlug := DocumentSlug(p)
		if prev, ok := seen[docSlug]; ok {
			return nil, &LoadError{Source: p, Err: fmt.Errorf("%w %s (also %s)", ErrDuplicateSlug, docSlug, prev)}
		}
		seen[docSlug] = p

		doc, err := ParseDocument(docSlug, raw, s.WordsPerMinute)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				le.Source = p
			}
			return nil, err
		}
		if doc.Draft && !s.IncludeDrafts {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// StaticSource serves a fixed document slice. Useful for tests and for
// callers that load content themselves.
type StaticSource []Document

// Documents returns a copy of the slice.
func (s StaticSource) Documents(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Document(nil), s...), nil
}

package pubstatic

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/eringen/pubstatic/markdown"
)

const dateLayout = "2006-01-02"

// dateLayouts are tried in order for string dates.
var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var (
	// ErrMissingField is returned when a required front matter field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidDate is returned when the date cannot be read as a calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidTags is returned when tags is not a sequence of strings.
	ErrInvalidTags = errors.New("tags must be a list of strings")
	// ErrDuplicateSlug is returned when two files map to the same slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrNoFrontMatter is returned for files without a front matter block.
	ErrNoFrontMatter = markdown.ErrNoFrontMatter
	// ErrInvalidEncoding is returned for files that are not valid UTF-8.
	ErrInvalidEncoding = markdown.ErrInvalidEncoding
)

// LoadError reports why a single document could not be loaded. Any LoadError
// aborts the build.
type LoadError struct {
	Source string // slug or file path
	Field  string // front matter field, if any
	Err    error
}

func (e *LoadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("pubstatic: load %s: %s: %v", e.Source, e.Field, e.Err)
	}
	return fmt.Sprintf("pubstatic: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type frontMatter struct {
	Title   string `yaml:"title" toml:"title"`
	Path    string `yaml:"path" toml:"path"`
	Date    any    `yaml:"date" toml:"date"`
	Tags    any    `yaml:"tags" toml:"tags"`
	Summary string `yaml:"summary" toml:"summary"`
	Draft   bool   `yaml:"draft" toml:"draft"`
}

// ParseDocument builds a Document from raw front matter + Markdown text.
// wpm is the reading speed used for the reading time estimate.
func ParseDocument(docSlug string, raw []byte, wpm int) (Document, error) {
	var fm frontMatter
	body, err := markdown.SplitFrontMatter(raw, &fm)
	if err != nil {
		return Document{}, &LoadError{Source: docSlug, Err: err}
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		return Document{}, &LoadError{Source: docSlug, Field: "title", Err: ErrMissingField}
	}
	docPath := strings.TrimSpace(fm.Path)
	if docPath == "" {
		return Document{}, &LoadError{Source: docSlug, Field: "path", Err: ErrMissingField}
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return Document{}, &LoadError{Source: docSlug, Field: "date", Err: err}
	}
	tags, err := parseTags(fm.Tags)
	if err != nil {
		return Document{}, &LoadError{Source: docSlug, Field: "tags", Err: err}
	}

	text := string(body)
	return Document{
		Slug:        docSlug,
		Path:        docPath,
		Title:       title,
		Date:        date,
		Tags:        tags,
		Summary:     strings.TrimSpace(fm.Summary),
		Draft:       fm.Draft,
		Body:        text,
		ReadingTime: ComputeReadingTime(text, wpm),
	}, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, ErrMissingField
	case time.Time:
		return calendarDay(d), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, ErrMissingField
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return calendarDay(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported value %v", ErrInvalidDate, v)
	}
}

// calendarDay drops the time of day, keeping the date as written.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseTags(v any) ([]string, error) {
	switch tags := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return FilterEmpty(tags), nil
	case []any:
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			s, ok := t.(string)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidTags, t)
			}
			out = append(out, s)
		}
		return FilterEmpty(out), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidTags, v)
	}
}

// DocumentSlug derives a document slug from its path relative to the
// content root: "posts/Hello World.md" -> "/posts/hello-world/". An
// index.md takes the slug of its directory.
func DocumentSlug(rel string) string {
	rel = path.Clean(strings.TrimPrefix(rel, "/"))
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	segments := strings.Split(rel, "/")
	if len(segments) > 0 && segments[len(segments)-1] == "index" {
		segments = segments[:len(segments)-1]
	}
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		normalized, err := slug.Normalize(seg)
		if err != nil || normalized == "" {
			normalized = KebabCase(seg)
		}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/") + "/"
}

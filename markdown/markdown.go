// Package markdown splits front matter from Markdown sources and renders
// Markdown bodies to HTML, both as bytes and as a templ component.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	// ErrNoFrontMatter is returned when a source has no front matter block.
	ErrNoFrontMatter = errors.New("markdown: no front matter")
	// ErrInvalidEncoding is returned for sources that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("markdown: invalid UTF-8")
)

// engine is stateless after construction and safe for concurrent use.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// SplitFrontMatter decodes the YAML (---) or TOML (+++) front matter of src
// into v and returns the remaining body.
func SplitFrontMatter(src []byte, v any) ([]byte, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidEncoding
	}
	body, err := frontmatter.MustParse(bytes.NewReader(src), v)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, ErrNoFrontMatter
		}
		return nil, fmt.Errorf("markdown: parse front matter: %w", err)
	}
	return body, nil
}

// CountWords returns the number of whitespace-delimited words in body.
func CountWords(body string) int {
	return len(strings.Fields(body))
}

// Render converts a Markdown body to HTML.
func Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("markdown: render: %w", err)
	}
	return buf.Bytes(), nil
}

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := Render([]byte(md))
		if err != nil {
			return err
		}
		_, err = w.Write(html)
		return err
	})
}

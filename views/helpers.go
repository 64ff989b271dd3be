package views

import (
	"strconv"

	"github.com/eringen/pubstatic"
)

// TagLink is a rendered link to a tag page.
type TagLink struct {
	Label string // as authored
	Href  string
}

// TagLinks maps authored tags to their listing pages. Tags that normalize to
// the same value are linked once, with the first spelling.
func TagLinks(tags []string) []TagLink {
	var out []TagLink
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		value := pubstatic.KebabCase(t)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, TagLink{Label: t, Href: pubstatic.TagPath(value)})
	}
	return out
}

// pageTitle is "Title | Site", or the site name alone for the home page.
func pageTitle(cfg pubstatic.SiteConfig, title string) string {
	if title == "" {
		return cfg.Name
	}
	return title + " | " + cfg.Name
}

func footerText(cfg pubstatic.SiteConfig) string {
	if cfg.Author != "" {
		return "© " + cfg.Author
	}
	return cfg.Name
}

// countLabel renders an index entry as "Display (N)".
func countLabel(e pubstatic.TagIndexEntry) string {
	return e.Display + " (" + strconv.Itoa(e.TotalCount) + ")"
}

func pageLabel(chunk pubstatic.TagPageChunk) string {
	return "Page " + strconv.Itoa(chunk.Number) + " of " + strconv.Itoa(chunk.Pages)
}

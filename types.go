package pubstatic

import "time"

// Document is one Markdown post after its front matter has been parsed.
type Document struct {
	Slug        string // derived from the file location, e.g. "/2021/hello-world/"
	Path        string // public URL path from front matter
	Title       string
	Date        time.Time // calendar day, UTC midnight
	Tags        []string  // as authored
	Summary     string
	Draft       bool
	Body        string
	ReadingTime ReadingTime
}

// DateString formats the document date as YYYY-MM-DD.
func (d Document) DateString() string {
	return d.Date.Format(dateLayout)
}

// HasTag reports whether the document carries a tag that normalizes to value.
func (d Document) HasTag(value string) bool {
	for _, t := range d.Tags {
		if KebabCase(t) == value {
			return true
		}
	}
	return false
}

// ReadingTime is the estimated time needed to read a document body.
type ReadingTime struct {
	Minutes int
	Words   int
	Text    string // "1 min read", "4 min read"
}

// TagIndexEntry is one row of the global tag index.
type TagIndexEntry struct {
	Value      string // normalized key, used in URLs
	Display    string // first authored spelling
	TotalCount int
}

// TagPage is the planned listing page for a single tag.
type TagPage struct {
	Tag        string // display string
	Value      string
	Path       string
	Documents  []Document
	TotalCount int
}

// Header returns the page heading, e.g. `2 posts tagged with "ruby"`.
func (p TagPage) Header() string {
	return TagHeader(p.TotalCount, p.Tag)
}

// TagPageChunk is one paginated slice of a TagPage.
type TagPageChunk struct {
	TagPage
	Number   int // 1-based
	Pages    int
	Path     string
	PrevPath string
	NextPath string
}

// Site is the complete, validated output of a build before rendering.
type Site struct {
	Config    SiteConfig
	Documents []Document // corpus order
	Index     []TagIndexEntry
	Pages     []TagPage
}

// Recent returns the site documents sorted newest first.
func (s *Site) Recent() []Document {
	return SortByDateDesc(s.Documents)
}

// DocumentByPath finds a document by its public path. Trailing slashes are
// ignored on both sides.
func (s *Site) DocumentByPath(p string) (Document, bool) {
	want := trimSlashes(p)
	for _, d := range s.Documents {
		if trimSlashes(d.Path) == want {
			return d, true
		}
	}
	return Document{}, false
}

// PageByValue finds the planned page for a normalized tag value.
func (s *Site) PageByValue(value string) (TagPage, bool) {
	for _, p := range s.Pages {
		if p.Value == value {
			return p, true
		}
	}
	return TagPage{}, false
}

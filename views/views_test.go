package views

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/pubstatic"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

var cfg = pubstatic.SiteConfig{Name: "Blog"}

func TestTagIndexListsEntries(t *testing.T) {
	out := render(t, TagIndex(cfg, []pubstatic.TagIndexEntry{
		{Value: "ruby", Display: "Ruby", TotalCount: 2},
		{Value: "dev", Display: "dev", TotalCount: 1},
	}))
	for _, want := range []string{
		"<h1>All Tags</h1>",
		`href="/tags/ruby/">Ruby (2)</a>`,
		`href="/tags/dev/">dev (1)</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "Ruby (2)") > strings.Index(out, "dev (1)") {
		t.Error("entries should keep index order")
	}
}

func TestTagPageHeaderAndLinks(t *testing.T) {
	page := pubstatic.TagPage{
		Tag:   "ruby",
		Value: "ruby",
		Path:  "/tags/ruby/",
		Documents: []pubstatic.Document{
			{Title: "Newer", Path: "/b/", Date: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
			{Title: "Older", Path: "/a/", Date: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		TotalCount: 2,
	}
	out := render(t, TagPage(cfg, pubstatic.Paginate(page, 0)[0]))
	if !strings.Contains(out, "2 posts tagged with &#34;ruby&#34;") {
		t.Errorf("missing header in %s", out)
	}
	if !strings.Contains(out, `<a href="/tags/">All tags</a>`) {
		t.Error("missing All tags link")
	}
	if strings.Index(out, "Newer") > strings.Index(out, "Older") {
		t.Error("documents should render newest first")
	}
	if strings.Contains(out, "pager") {
		t.Error("single page should not render a pager")
	}
}

func TestTagPagePager(t *testing.T) {
	docs := make([]pubstatic.Document, 3)
	for i := range docs {
		docs[i] = pubstatic.Document{Title: "Post", Path: "/p/"}
	}
	page := pubstatic.TagPage{Tag: "go", Value: "go", Path: "/tags/go/", Documents: docs, TotalCount: 3}
	chunks := pubstatic.Paginate(page, 2)
	out := render(t, TagPage(cfg, chunks[0]))
	if !strings.Contains(out, `href="/tags/go/page/2/">Older</a>`) {
		t.Errorf("missing next link in %s", out)
	}
	if !strings.Contains(out, "3 posts tagged with") {
		t.Error("header should report the full count on every chunk")
	}
}

func TestDocumentRendersBodyAndEscapesTitle(t *testing.T) {
	doc := pubstatic.Document{
		Title:       "<script>",
		Path:        "/hello/",
		Date:        time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"Ruby", "ruby", "Web Dev"},
		Body:        "Some **bold** text",
		ReadingTime: pubstatic.ReadingTime{Minutes: 1, Text: "1 min read"},
	}
	out := render(t, Document(cfg, doc))
	if strings.Contains(out, "<script>") {
		t.Error("title should be escaped")
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Error("body should be rendered as HTML")
	}
	if !strings.Contains(out, "1 min read") {
		t.Error("missing reading time")
	}
	if strings.Count(out, `href="/tags/ruby/"`) != 1 {
		t.Error("Ruby and ruby should link once")
	}
	if !strings.Contains(out, `href="/tags/web-dev/"`) {
		t.Error("missing web-dev link")
	}
}

func TestTagLinks(t *testing.T) {
	got := TagLinks([]string{"Go", "go", "  ", "Ruby on Rails"})
	want := []TagLink{
		{Label: "Go", Href: "/tags/go/"},
		{Label: "Ruby on Rails", Href: "/tags/ruby-on-rails/"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d links, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAssetsContainStylesheet(t *testing.T) {
	if _, err := fs.Stat(Assets(), "style.css"); err != nil {
		t.Errorf("style.css missing: %v", err)
	}
}

func TestNotFound(t *testing.T) {
	out := render(t, NotFound(cfg))
	if !strings.Contains(out, "Not found | Blog") {
		t.Errorf("unexpected title in %s", out)
	}
}

func TestLayout(t *testing.T) {
	out := render(t, NotFound(pubstatic.SiteConfig{Name: "Blog", Author: "Ada"}))
	if !strings.HasPrefix(out, "<!doctype html>") {
		t.Errorf("missing doctype in %s", out)
	}
	for _, want := range []string{
		`<link rel="stylesheet" href="/style.css">`,
		`<a class="brand" href="/">Blog</a>`,
		`<footer>© Ada</footer>`,
		`<a href="/">Back home</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if home := render(t, Home(cfg, nil)); !strings.Contains(home, "<title>Blog</title>") {
		t.Error("home page title should be the site name alone")
	}
}

func TestHomeListsDocumentsWithTags(t *testing.T) {
	docs := []pubstatic.Document{{
		Title:       "Hello & welcome",
		Path:        "/hello/",
		Date:        time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"Go"},
		Summary:     "First post",
		ReadingTime: pubstatic.ReadingTime{Minutes: 2, Text: "2 min read"},
	}}
	out := render(t, Home(pubstatic.SiteConfig{Name: "Blog", Description: "Notes"}, docs))
	for _, want := range []string{
		`<p class="lead">Notes</p>`,
		`<a href="/hello/">Hello &amp; welcome</a>`,
		`<time datetime="2021-06-01">2021-06-01</time>`,
		`<span class="reading-time">2 min read</span>`,
		`<p>First post</p>`,
		`<a class="tag" href="/tags/go/">Go</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTagPagePagerLinksBothWays(t *testing.T) {
	docs := make([]pubstatic.Document, 5)
	for i := range docs {
		docs[i] = pubstatic.Document{Title: "Post", Path: "/p/"}
	}
	page := pubstatic.TagPage{Tag: "go", Value: "go", Path: "/tags/go/", Documents: docs, TotalCount: 5}
	out := render(t, TagPage(cfg, pubstatic.Paginate(page, 2)[1]))
	for _, want := range []string{
		`<a rel="prev" href="/tags/go/">Newer</a>`,
		`<span>Page 2 of 3</span>`,
		`<a rel="next" href="/tags/go/page/3/">Older</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

package pubstatic

import (
	"reflect"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func scenarioDocs() []Document {
	rt := ComputeReadingTime("", 200)
	return []Document{
		{Slug: "/a/", Path: "/a/", Title: "A", Date: day(2021, 1, 1), Tags: []string{"ruby", "dev"}, ReadingTime: rt},
		{Slug: "/b/", Path: "/b/", Title: "B", Date: day(2021, 6, 1), Tags: []string{"ruby"}, ReadingTime: rt},
	}
}

func TestBuildTagIndexScenario(t *testing.T) {
	got := BuildTagIndex(scenarioDocs())
	want := []TagIndexEntry{
		{Value: "ruby", Display: "ruby", TotalCount: 2},
		{Value: "dev", Display: "dev", TotalCount: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildTagIndex = %+v, want %+v", got, want)
	}
}

func TestPlanTagPagesScenario(t *testing.T) {
	pages := PlanTagPages(scenarioDocs())
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	ruby := pages[0]
	if ruby.Value != "ruby" || ruby.Path != "/tags/ruby/" {
		t.Errorf("page = %q at %q, want ruby at /tags/ruby/", ruby.Value, ruby.Path)
	}
	if ruby.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", ruby.TotalCount)
	}
	if ruby.Documents[0].Slug != "/b/" || ruby.Documents[1].Slug != "/a/" {
		t.Errorf("order = %s, %s; want /b/, /a/", ruby.Documents[0].Slug, ruby.Documents[1].Slug)
	}
	if h := ruby.Header(); h != `2 posts tagged with "ruby"` {
		t.Errorf("Header = %q", h)
	}
	if h := pages[1].Header(); h != `1 post tagged with "dev"` {
		t.Errorf("Header = %q", h)
	}
}

func TestBuildTagIndexEmpty(t *testing.T) {
	if got := BuildTagIndex(nil); len(got) != 0 {
		t.Errorf("BuildTagIndex(nil) = %v, want empty", got)
	}
	if got := PlanTagPages(nil); len(got) != 0 {
		t.Errorf("PlanTagPages(nil) = %v, want empty", got)
	}
}

func TestBuildTagIndexMergesVariants(t *testing.T) {
	docs := []Document{
		{Slug: "/1/", Date: day(2020, 1, 1), Tags: []string{"Ruby", "ruby"}},
		{Slug: "/2/", Date: day(2020, 1, 2), Tags: []string{"ruby", "Web Dev"}},
		{Slug: "/3/", Date: day(2020, 1, 3), Tags: []string{"web-dev", "  ", "!!"}},
	}
	got := BuildTagIndex(docs)
	want := []TagIndexEntry{
		{Value: "ruby", Display: "Ruby", TotalCount: 2},
		{Value: "web-dev", Display: "Web Dev", TotalCount: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildTagIndex = %+v, want %+v", got, want)
	}
}

func TestIndexCountsEqualMembership(t *testing.T) {
	docs := []Document{
		{Slug: "/1/", Date: day(2020, 3, 1), Tags: []string{"go", "Go", "cli"}},
		{Slug: "/2/", Date: day(2020, 1, 1), Tags: []string{"cli"}},
		{Slug: "/3/", Date: day(2020, 2, 1), Tags: nil},
		{Slug: "/4/", Date: day(2020, 2, 1), Tags: []string{"GO"}},
	}
	index := BuildTagIndex(docs)
	pages := PlanTagPages(docs)
	for i, entry := range index {
		n := 0
		for _, d := range docs {
			if d.HasTag(entry.Value) {
				n++
			}
		}
		if entry.TotalCount != n {
			t.Errorf("%s: TotalCount = %d, membership = %d", entry.Value, entry.TotalCount, n)
		}
		if pages[i].TotalCount != n || len(pages[i].Documents) != n {
			t.Errorf("%s: page count = %d/%d, want %d", entry.Value, pages[i].TotalCount, len(pages[i].Documents), n)
		}
	}
}

func TestPlanTagPagesStableOnEqualDates(t *testing.T) {
	docs := []Document{
		{Slug: "/first/", Date: day(2021, 1, 1), Tags: []string{"go"}},
		{Slug: "/newest/", Date: day(2022, 1, 1), Tags: []string{"go"}},
		{Slug: "/second/", Date: day(2021, 1, 1), Tags: []string{"go"}},
		{Slug: "/third/", Date: day(2021, 1, 1), Tags: []string{"go"}},
	}
	page := PlanTagPages(docs)[0]
	var got []string
	for _, d := range page.Documents {
		got = append(got, d.Slug)
	}
	want := []string{"/newest/", "/first/", "/second/", "/third/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestIndexIdempotent(t *testing.T) {
	docs := scenarioDocs()
	if a, b := BuildTagIndex(docs), BuildTagIndex(docs); !reflect.DeepEqual(a, b) {
		t.Errorf("BuildTagIndex not idempotent: %v vs %v", a, b)
	}
	if a, b := PlanTagPages(docs), PlanTagPages(docs); !reflect.DeepEqual(a, b) {
		t.Error("PlanTagPages not idempotent")
	}
}

func TestSortByDateDescDoesNotMutate(t *testing.T) {
	docs := scenarioDocs()
	_ = SortByDateDesc(docs)
	if docs[0].Slug != "/a/" {
		t.Error("SortByDateDesc modified its input")
	}
}

func TestPaginate(t *testing.T) {
	docs := make([]Document, 5)
	for i := range docs {
		docs[i] = Document{Slug: string(rune('a' + i))}
	}
	page := TagPage{Tag: "go", Value: "go", Path: "/tags/go/", Documents: docs, TotalCount: 5}

	chunks := Paginate(page, 2)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	tests := []struct {
		number         int
		size           int
		path, prev, nx string
	}{
		{1, 2, "/tags/go/", "", "/tags/go/page/2/"},
		{2, 2, "/tags/go/page/2/", "/tags/go/", "/tags/go/page/3/"},
		{3, 1, "/tags/go/page/3/", "/tags/go/page/2/", ""},
	}
	for i, tt := range tests {
		c := chunks[i]
		if c.Number != tt.number || c.Pages != 3 {
			t.Errorf("chunk %d: Number/Pages = %d/%d", i, c.Number, c.Pages)
		}
		if len(c.Documents) != tt.size {
			t.Errorf("chunk %d: %d documents, want %d", i, len(c.Documents), tt.size)
		}
		if c.Path != tt.path || c.PrevPath != tt.prev || c.NextPath != tt.nx {
			t.Errorf("chunk %d: paths = %q %q %q, want %q %q %q", i, c.Path, c.PrevPath, c.NextPath, tt.path, tt.prev, tt.nx)
		}
		if c.TotalCount != 5 {
			t.Errorf("chunk %d: TotalCount = %d, want 5", i, c.TotalCount)
		}
	}

	if got := Paginate(page, 0); len(got) != 1 || len(got[0].Documents) != 5 {
		t.Errorf("Paginate(0) = %d chunks, want a single full chunk", len(got))
	}
	if got := Paginate(page, 5); len(got) != 1 {
		t.Errorf("Paginate(5) = %d chunks, want 1", len(got))
	}
}

package pubstatic

import (
	"sort"
)

// BuildTagIndex groups docs by normalized tag and counts them. Entries are in
// order of first occurrence across docs (and across each document's tag
// list). A tag repeated within one document counts once. Tags that normalize
// to an empty string are ignored.
func BuildTagIndex(docs []Document) []TagIndexEntry {
	var entries []TagIndexEntry
	pos := make(map[string]int)
	for _, d := range docs {
		for _, value := range tagValues(d) {
			i, ok := pos[value.key]
			if !ok {
				i = len(entries)
				pos[value.key] = i
				entries = append(entries, TagIndexEntry{Value: value.key, Display: value.display})
			}
			entries[i].TotalCount++
		}
	}
	return entries
}

// PlanTagPages plans one listing page per index entry, in index order. Each
// page holds the documents carrying the tag, newest first; documents with
// the same date keep their corpus order.
func PlanTagPages(docs []Document) []TagPage {
	index := BuildTagIndex(docs)
	pages := make([]TagPage, 0, len(index))
	for _, entry := range index {
		pages = append(pages, PlanTagPage(docs, entry))
	}
	return pages
}

// PlanTagPage selects the documents carrying entry.Value and sorts them.
func PlanTagPage(docs []Document, entry TagIndexEntry) TagPage {
	var selected []Document
	for _, d := range docs {
		if d.HasTag(entry.Value) {
			selected = append(selected, d)
		}
	}
	selected = SortByDateDesc(selected)
	return TagPage{
		Tag:        entry.Display,
		Value:      entry.Value,
		Path:       TagPath(entry.Value),
		Documents:  selected,
		TotalCount: len(selected),
	}
}

// SortByDateDesc returns a copy of docs ordered newest first. The sort is
// stable.
func SortByDateDesc(docs []Document) []Document {
	out := append([]Document(nil), docs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Paginate splits a tag page into chunks of size documents. A size of zero
// or less yields a single chunk. Every chunk keeps the full TotalCount.
func Paginate(page TagPage, size int) []TagPageChunk {
	if size <= 0 || len(page.Documents) <= size {
		return []TagPageChunk{{
			TagPage: page,
			Number:  1,
			Pages:   1,
			Path:    TagPagePath(page.Value, 1),
		}}
	}
	n := (len(page.Documents) + size - 1) / size
	chunks := make([]TagPageChunk, 0, n)
	for i := 0; i < n; i++ {
		end := (i + 1) * size
		if end > len(page.Documents) {
			end = len(page.Documents)
		}
		chunk := TagPageChunk{
			TagPage: page,
			Number:  i + 1,
			Pages:   n,
			Path:    TagPagePath(page.Value, i+1),
		}
		chunk.Documents = page.Documents[i*size : end]
		if i > 0 {
			chunk.PrevPath = TagPagePath(page.Value, i)
		}
		if i < n-1 {
			chunk.NextPath = TagPagePath(page.Value, i+2)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

type tagValue struct {
	key     string
	display string
}

// tagValues returns the distinct normalized tags of d in authored order.
func tagValues(d Document) []tagValue {
	out := make([]tagValue, 0, len(d.Tags))
	seen := make(map[string]struct{}, len(d.Tags))
	for _, t := range d.Tags {
		key := KebabCase(t)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tagValue{key: key, display: t})
	}
	return out
}

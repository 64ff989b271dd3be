package pubstatic

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const helloSource = `---
title: Hello World
path: /2021/hello-world/
date: 2021-06-01
tags:
  - Ruby
  - dev
summary: First post.
---
Some words in the body.
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument("/hello/", []byte(helloSource), 200)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.Slug != "/hello/" {
		t.Errorf("Slug = %q, want %q", doc.Slug, "/hello/")
	}
	if doc.Title != "Hello World" {
		t.Errorf("Title = %q, want %q", doc.Title, "Hello World")
	}
	if doc.Path != "/2021/hello-world/" {
		t.Errorf("Path = %q, want %q", doc.Path, "/2021/hello-world/")
	}
	if !doc.Date.Equal(time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 2021-06-01", doc.Date)
	}
	if doc.DateString() != "2021-06-01" {
		t.Errorf("DateString = %q", doc.DateString())
	}
	if len(doc.Tags) != 2 || doc.Tags[0] != "Ruby" || doc.Tags[1] != "dev" {
		t.Errorf("Tags = %v, want [Ruby dev]", doc.Tags)
	}
	if doc.Summary != "First post." {
		t.Errorf("Summary = %q", doc.Summary)
	}
	if !strings.Contains(doc.Body, "Some words in the body.") {
		t.Errorf("Body = %q", doc.Body)
	}
	if doc.ReadingTime.Text != "1 min read" || doc.ReadingTime.Words != 5 {
		t.Errorf("ReadingTime = %+v", doc.ReadingTime)
	}
	if !doc.HasTag("ruby") || doc.HasTag("go") {
		t.Error("HasTag should match normalized tags only")
	}
}

func TestParseDocumentTOML(t *testing.T) {
	src := "+++\ntitle = \"Toml\"\npath = \"/toml/\"\ndate = \"2020-02-03\"\ntags = [\"go\"]\n+++\nbody\n"
	doc, err := ParseDocument("/toml/", []byte(src), 200)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.DateString() != "2020-02-03" || len(doc.Tags) != 1 {
		t.Errorf("got %s %v", doc.DateString(), doc.Tags)
	}
}

func TestParseDocumentDateForms(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{`2021-06-01`, "2021-06-01"},
		{`"2021-06-01"`, "2021-06-01"},
		{`"2021-06-01T23:30:00Z"`, "2021-06-01"},
		{`"2021-06-01T10:00:00"`, "2021-06-01"},
		{`"2021-06-01 10:00:00"`, "2021-06-01"},
	}
	for _, tt := range tests {
		src := "---\ntitle: T\npath: /t/\ndate: " + tt.date + "\n---\n"
		doc, err := ParseDocument("/t/", []byte(src), 200)
		if err != nil {
			t.Errorf("date %s: %v", tt.date, err)
			continue
		}
		if got := doc.DateString(); got != tt.want {
			t.Errorf("date %s: DateString = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
		err   error
	}{
		{"missing title", "---\npath: /a/\ndate: 2021-01-01\n---\n", "title", ErrMissingField},
		{"blank title", "---\ntitle: '  '\npath: /a/\ndate: 2021-01-01\n---\n", "title", ErrMissingField},
		{"missing path", "---\ntitle: A\ndate: 2021-01-01\n---\n", "path", ErrMissingField},
		{"missing date", "---\ntitle: A\npath: /a/\n---\n", "date", ErrMissingField},
		{"bad date", "---\ntitle: A\npath: /a/\ndate: yesterday\n---\n", "date", ErrInvalidDate},
		{"numeric date", "---\ntitle: A\npath: /a/\ndate: 42\n---\n", "date", ErrInvalidDate},
		{"scalar tags", "---\ntitle: A\npath: /a/\ndate: 2021-01-01\ntags: ruby\n---\n", "tags", ErrInvalidTags},
		{"non-string tag", "---\ntitle: A\npath: /a/\ndate: 2021-01-01\ntags: [ruby, 3]\n---\n", "tags", ErrInvalidTags},
		{"no front matter", "# Just markdown\n", "", ErrNoFrontMatter},
		{"invalid encoding", "---\ntitle: \xff\n---\n", "", ErrInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument("/a/", []byte(tt.src), 200)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("err = %T, want *LoadError", err)
			}
			if le.Field != tt.field {
				t.Errorf("Field = %q, want %q", le.Field, tt.field)
			}
			if le.Source != "/a/" {
				t.Errorf("Source = %q, want %q", le.Source, "/a/")
			}
		})
	}
}

func TestParseDocumentTagsOptional(t *testing.T) {
	src := "---\ntitle: A\npath: /a/\ndate: 2021-01-01\ntags: ['', ' go ']\n---\n"
	doc, err := ParseDocument("/a/", []byte(src), 200)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(doc.Tags) != 1 || doc.Tags[0] != "go" {
		t.Errorf("Tags = %v, want [go]", doc.Tags)
	}

	src = "---\ntitle: A\npath: /a/\ndate: 2021-01-01\n---\n"
	doc, err = ParseDocument("/a/", []byte(src), 200)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(doc.Tags) != 0 {
		t.Errorf("Tags = %v, want none", doc.Tags)
	}
}

func TestDocumentSlug(t *testing.T) {
	tests := []struct {
		rel, want string
	}{
		{"hello.md", "/hello/"},
		{"posts/Hello World.md", "/posts/hello-world/"},
		{"2021/first-post/index.md", "/2021/first-post/"},
		{"index.md", "/"},
	}
	for _, tt := range tests {
		if got := DocumentSlug(tt.rel); got != tt.want {
			t.Errorf("DocumentSlug(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

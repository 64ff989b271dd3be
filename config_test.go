package pubstatic

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestWithDefaults(t *testing.T) {
	cfg := SiteConfig{Name: "Mine", WordsPerMinute: 250}.WithDefaults()
	if cfg.Name != "Mine" {
		t.Errorf("Name = %q, want %q", cfg.Name, "Mine")
	}
	if cfg.WordsPerMinute != 250 {
		t.Errorf("WordsPerMinute = %d, want 250", cfg.WordsPerMinute)
	}
	if cfg.URL != "http://localhost:3000" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.ContentDir != "content" || cfg.OutputDir != "public" {
		t.Errorf("dirs = %q, %q", cfg.ContentDir, cfg.OutputDir)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.PostsPerPage != 0 {
		t.Errorf("PostsPerPage = %d, want 0 (unpaginated)", cfg.PostsPerPage)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := (SiteConfig{}).WithDefaults().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	tests := []struct {
		name string
		cfg  SiteConfig
	}{
		{"bad url", SiteConfig{URL: "::not a url"}},
		{"negative wpm", SiteConfig{WordsPerMinute: -5}},
		{"negative page size", SiteConfig{PostsPerPage: -1}},
	}
	for _, tt := range tests {
		if err := tt.cfg.WithDefaults().Validate(); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestValidateConfigOutputDir(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "content")
	tests := []struct {
		name    string
		out     string
		content string
		wantErr bool
	}{
		{"sibling", filepath.Join(root, "public"), content, false},
		{"inside content", filepath.Join(content, "public"), content, false},
		{"same dir", content, content, true},
		{"same dir, unclean", content + "/./", content, true},
		{"parent", root, content, true},
		{"relative parent", ".", "content", true},
		{"relative sibling", "public", "content", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SiteConfig{OutputDir: tt.out, ContentDir: tt.content}.WithDefaults().Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			errs, ok := err.(validation.Errors)
			if !ok {
				t.Fatalf("err = %v, want validation.Errors", err)
			}
			if !errors.Is(errs["OutputDir"], ErrUnsafeOutput) {
				t.Errorf("OutputDir error = %v, want ErrUnsafeOutput", errs["OutputDir"])
			}
		})
	}
}

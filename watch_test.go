package pubstatic

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePost(t *testing.T, dir, name, title, path string) {
	t.Helper()
	src := "---\ntitle: " + title + "\npath: " + path + "\ndate: 2021-01-01\ntags: [go]\n---\nbody\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatchInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a.md", "A", "/a/")

	cfg := SiteConfig{ContentDir: dir}.WithDefaults()
	a := New(cfg, testViews(), WithLogger(quietLogger()), WithDebounce(10*time.Millisecond))
	defer a.Close()

	ctx := context.Background()
	if _, err := a.Cache.Site(ctx); err != nil {
		t.Fatalf("Site failed: %v", err)
	}
	if err := a.watch(a.watchDir); err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	writePost(t, dir, "b.md", "B", "/b/")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		site, err := a.Cache.Site(ctx)
		if err != nil {
			t.Fatalf("Site failed: %v", err)
		}
		if len(site.Documents) == 2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("cache was not invalidated after a content change")
}

func TestNewWithCustomSourceDoesNotWatch(t *testing.T) {
	a := New(SiteConfig{}, testViews(), WithLogger(quietLogger()), WithSource(StaticSource(nil)))
	if a.watchDir != "" {
		t.Errorf("watchDir = %q, want empty for a custom source", a.watchDir)
	}
	if a.debounce != 300*time.Millisecond {
		t.Errorf("debounce = %v, want default 300ms", a.debounce)
	}
}

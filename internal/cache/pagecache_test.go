package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPageCache_SaveLoad(t *testing.T) {
	t.Parallel()
	c := &PageCache{Dir: t.TempDir()}
	url := "https://example.com/article"
	if err := c.Save(Entry{URL: url, ContentType: "text/html", ETag: `"v1"`}, []byte("<p>hi</p>")); err != nil {
		t.Fatalf("save: %v", err)
	}
	body, meta, err := c.Load(url)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(body) != "<p>hi</p>" || meta.ETag != `"v1"` || meta.SavedAt.IsZero() {
		t.Fatalf("unexpected entry: %q %+v", body, meta)
	}
}

func TestPageCache_Miss(t *testing.T) {
	t.Parallel()
	c := &PageCache{Dir: t.TempDir()}
	if _, err := c.LoadMeta("https://missing.example"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

func TestPurgeByAge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := &PageCache{Dir: dir}
	old := time.Now().UTC().Add(-48 * time.Hour)
	if err := c.Save(Entry{URL: "https://old.example", SavedAt: old}, []byte("old")); err != nil {
		t.Fatalf("save old: %v", err)
	}
	if err := c.Save(Entry{URL: "https://new.example"}, []byte("new")); err != nil {
		t.Fatalf("save new: %v", err)
	}
	removed, err := PurgeByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed %d, want 1", removed)
	}
	if _, _, err := c.Load("https://old.example"); err == nil {
		t.Fatalf("expected old entry gone")
	}
	if _, _, err := c.Load("https://new.example"); err != nil {
		t.Fatalf("new entry missing: %v", err)
	}
}

func TestClearDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "junk"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ClearDir(dir); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries err=%v", len(entries), err)
	}
}

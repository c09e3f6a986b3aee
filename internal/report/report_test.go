package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sample() Report {
	return Report{
		SourceURL:   "https://example.com/ant",
		Title:       "Ant",
		Author:      "Jane Writer",
		URL:         "https://example.com/ant",
		Paragraphs:  []string{"Ants are insects.  Ants live in colonies.", "Queens found colonies."},
		Keywords:    []string{"Ants", "Queens"},
		Sentences:   5,
		Selected:    3,
		TextSHA256:  SHA256Hex("text"),
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestWriteText_Format(t *testing.T) {
	var b strings.Builder
	if err := WriteText(&b, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "Title: Ant\n" +
		"Author: Jane Writer\n" +
		"Description: None\n" +
		"Url: https://example.com/ant\n" +
		"\n" +
		"\tAnts are insects.  Ants live in colonies.\n" +
		"\tQueens found colonies.\n"
	if b.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestWriteTextFile_CreatesDirs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "out.txt")
	if err := WriteTextFile(p, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || !strings.HasPrefix(string(b), "Title: Ant\n") {
		t.Fatalf("unexpected file: %q err=%v", b, err)
	}
}

func TestWriteManifest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteManifest(out, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(SidecarPath(out))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Paragraphs != 2 || m.Selected != 3 || m.Sentences != 5 || len(m.Keywords) != 2 {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if len(m.TextSHA256) != 64 {
		t.Fatalf("digest = %q", m.TextSHA256)
	}
}

func TestWritePDF(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.pdf")
	r := sample()
	r.Paragraphs = append(r.Paragraphs, "Café culture in Zürich.")
	if err := WritePDF(p, r); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(b), "%PDF-") {
		t.Fatalf("not a pdf: %q", b[:8])
	}
}

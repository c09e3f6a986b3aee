package app

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"example.com-news/2024/ants": "example-com-news-2024-ants",
		"  Hello,  World!  ":         "hello-world",
		"Ünïcode only":               "n-code-only",
		"":                           "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOutputPathFor(t *testing.T) {
	single := Config{URLs: []string{"https://example.com/a"}, OutputPath: "one.txt", OutputDir: "dir"}
	if got := outputPathFor(single, single.URLs[0]); got != "one.txt" {
		t.Fatalf("single = %q", got)
	}

	multi := Config{URLs: []string{"https://example.com/a", "https://example.com/b"}, OutputDir: "dir"}
	a := outputPathFor(multi, multi.URLs[0])
	b := outputPathFor(multi, multi.URLs[1])
	if a == b {
		t.Fatalf("paths collide: %s", a)
	}
	if filepath.Dir(a) != "dir" || !strings.HasPrefix(filepath.Base(a), "example-com-a-") || !strings.HasSuffix(a, ".txt") {
		t.Fatalf("unexpected path %q", a)
	}
	if again := outputPathFor(multi, multi.URLs[0]); again != a {
		t.Fatalf("path not stable: %q vs %q", again, a)
	}
}

func TestReplaceExt(t *testing.T) {
	if got := replaceExt("out/summary.txt", ".pdf"); got != "out/summary.pdf" {
		t.Fatalf("got %q", got)
	}
	if got := replaceExt("noext", ".pdf"); got != "noext.pdf" {
		t.Fatalf("got %q", got)
	}
}

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/gosummarize/internal/app"
	"github.com/hyperifyio/gosummarize/internal/summarize"
)

const page = `<html><head><meta property="og:title" content="Bees"></head><body>
<p>Honey Bees are flying insects closely related to Wasps and Ants, known for their role in pollination and for producing honey.</p>
<p>Bees are found on every continent except Antarctica, and Honey Bees live in colonies that are organised around a single Queen.</p>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/bees", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunCLI_Success(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "bees.txt")
	var stderr bytes.Buffer
	code := runCLI(context.Background(), []string{
		"-output", out, "-cache.dir", "", "-min.line", "50", "-min.sentence", "50", "-fraction", "1",
		srv.URL + "/bees",
	}, &stderr)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(b), "Title: Bees\n") || !strings.Contains(string(b), "\tHoney Bees are flying insects") {
		t.Fatalf("unexpected report:\n%s", b)
	}
}

func TestRunCLI_ExitCodes(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	cases := []struct {
		name string
		args []string
		want int
	}{
		{"no urls", []string{"-cache.dir", ""}, exitConfig},
		{"bad fraction", []string{"-fraction", "2", "-cache.dir", "", srv.URL + "/bees"}, exitConfig},
		{"unknown flag", []string{"-nope"}, exitConfig},
		{"missing stoplist", []string{"-stoplist", filepath.Join(dir, "none"), srv.URL + "/bees"}, exitConfig},
		{"fetch failure", []string{"-output", filepath.Join(dir, "gone.txt"), "-cache.dir", "", srv.URL + "/gone"}, exitRunFailed},
		{"version", []string{"-version"}, exitOK},
	}
	for _, tc := range cases {
		var stderr bytes.Buffer
		if got := runCLI(context.Background(), tc.args, &stderr); got != tc.want {
			t.Errorf("%s: exit = %d, want %d\n%s", tc.name, got, tc.want, stderr.String())
		}
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	yaml := "urls: [https://file.example]\nsummary:\n  keywords: 11\n  fraction: 0.3\nfetch:\n  concurrency: 3\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KEYWORD_LIMIT", "22")
	t.Setenv("CONCURRENCY", "5")

	fs, v := newFlagSet(&bytes.Buffer{})
	if err := fs.Parse([]string{"-config", cfgPath, "-concurrency", "7", "-timeout", "2s"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := resolveConfig(fs, v)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Concurrency != 7 {
		t.Fatalf("flag should win: concurrency = %d", cfg.Concurrency)
	}
	if cfg.KeywordLimit != 22 {
		t.Fatalf("env should beat file: keywords = %d", cfg.KeywordLimit)
	}
	if cfg.SentenceFraction != 0.3 {
		t.Fatalf("file should beat default: fraction = %v", cfg.SentenceFraction)
	}
	if cfg.Timeout != 2*time.Second || len(cfg.URLs) != 1 || cfg.URLs[0] != "https://file.example" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

// Unset flags keep their defaults out of the way of file and env layers.
func TestResolveConfig_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv("OUTPUT", "from-env.txt")
	fs, v := newFlagSet(&bytes.Buffer{})
	if err := fs.Parse([]string{"https://a.example", "https://b.example"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := resolveConfig(fs, v)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.OutputPath != "from-env.txt" || len(cfg.URLs) != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestExitCode(t *testing.T) {
	ce := &summarize.ConfigError{Field: "x", Err: errors.New("bad")}
	if exitCode(ce) != exitConfig {
		t.Fatalf("config error should map to %d", exitConfig)
	}
	if exitCode(errors.Join(app.ErrRunFailed, errors.New("boom"))) != exitRunFailed {
		t.Fatalf("run failure should map to %d", exitRunFailed)
	}
	if exitCode(nil) != exitOK {
		t.Fatalf("nil should map to %d", exitOK)
	}
}

package app

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hyperifyio/gosummarize/internal/cache"
)

// outputPathFor returns where the text report for rawURL goes. A single-URL
// run writes to cfg.OutputPath; otherwise the name is derived from the URL
// as <slug>-<short hash>.txt under cfg.OutputDir so that names stay stable
// across runs and never collide.
func outputPathFor(cfg Config, rawURL string) string {
	if len(cfg.URLs) <= 1 {
		return cfg.OutputPath
	}
	root := strings.TrimSpace(cfg.OutputDir)
	if root == "" {
		root = defaultOutputDir
	}
	slug := slugify(urlLabel(rawURL))
	if slug == "" {
		slug = "article"
	}
	if len(slug) > 60 {
		slug = strings.Trim(slug[:60], "-")
	}
	return filepath.Join(root, slug+"-"+cache.Key(rawURL)[:12]+".txt")
}

func urlLabel(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host + "-" + strings.Trim(u.Path, "/")
}

// slugify lowercases s and replaces each run of non-alphanumerics with '-'.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// replaceExt swaps the extension of path for ext.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

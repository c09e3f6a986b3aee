// Package report renders a summary into the on-disk artifacts: a UTF-8
// text file, an optional PDF, and a JSON manifest sidecar.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Report is everything needed to render one article's summary.
type Report struct {
	SourceURL   string
	Title       string
	Author      string
	Description string
	URL         string
	Paragraphs  []string
	Keywords    []string
	Sentences   int
	Selected    int
	// TextSHA256 is the digest of the extracted text that was summarized.
	TextSHA256  string
	GeneratedAt time.Time
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

// WriteText writes the header block followed by one tab-indented line per
// paragraph.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", orNone(r.Title))
	fmt.Fprintf(&b, "Author: %s\n", orNone(r.Author))
	fmt.Fprintf(&b, "Description: %s\n", orNone(r.Description))
	fmt.Fprintf(&b, "Url: %s\n", orNone(r.URL))
	b.WriteString("\n")
	for _, p := range r.Paragraphs {
		b.WriteString("\t")
		b.WriteString(p)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTextFile writes the text artifact to path, creating parent dirs.
func WriteTextFile(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := WriteText(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}

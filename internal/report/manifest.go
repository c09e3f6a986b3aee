package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"
)

// Manifest is the machine-readable sidecar written next to the text report.
type Manifest struct {
	SourceURL   string    `json:"source_url"`
	Title       string    `json:"title"`
	TextSHA256  string    `json:"text_sha256"`
	Keywords    []string  `json:"keywords"`
	Sentences   int       `json:"sentences"`
	Selected    int       `json:"selected"`
	Paragraphs  int       `json:"paragraphs"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SHA256Hex returns the lowercase hex SHA-256 of text.
func SHA256Hex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// NewManifest builds the sidecar contents for r.
func NewManifest(r Report) Manifest {
	kw := r.Keywords
	if kw == nil {
		kw = []string{}
	}
	return Manifest{
		SourceURL:   r.SourceURL,
		Title:       r.Title,
		TextSHA256:  r.TextSHA256,
		Keywords:    kw,
		Sentences:   r.Sentences,
		Selected:    r.Selected,
		Paragraphs:  len(r.Paragraphs),
		GeneratedAt: r.GeneratedAt.UTC(),
	}
}

// SidecarPath returns the manifest path for a text report at outputPath.
func SidecarPath(outputPath string) string {
	return outputPath + ".manifest.json"
}

// WriteManifest writes the JSON sidecar for r next to outputPath.
func WriteManifest(outputPath string, r Report) error {
	data, err := json.MarshalIndent(NewManifest(r), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(SidecarPath(outputPath), data, 0o644)
}

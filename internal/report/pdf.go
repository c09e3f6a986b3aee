package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders r as a simple A4 document: bold title, metadata lines,
// then one multi-cell per paragraph. The core fonts only cover Latin-1, so
// text is passed through the cp1252 translator.
func WritePDF(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Title, true)
	pdf.SetAuthor(r.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, tr(orNone(r.Title)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 10)
	for _, line := range []string{
		"Author: " + orNone(r.Author),
		"Description: " + orNone(r.Description),
		"Url: " + orNone(r.URL),
	} {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range r.Paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		pdf.MultiCell(0, 5, tr(p), "", "L", false)
		pdf.Ln(3)
	}
	return pdf.OutputFileAndClose(path)
}

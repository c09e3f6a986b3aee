package assemble

import (
	"strings"

	"github.com/hyperifyio/gosummarize/internal/segment"
)

// SentenceGap separates sentences inside a paragraph.
const SentenceGap = "  "

// Paragraphs regroups selected sentences, already in original order, into
// paragraph strings. A sentence flagged ParagraphEnd closes the current
// paragraph; trailing sentences without a closing flag form a final one.
func Paragraphs(selected []segment.Sentence) []string {
	var out []string
	var acc strings.Builder
	flush := func() {
		if p := strings.TrimSpace(acc.String()); p != "" {
			out = append(out, p)
		}
		acc.Reset()
	}
	for _, s := range selected {
		if acc.Len() > 0 {
			acc.WriteString(SentenceGap)
		}
		acc.WriteString(s.Text)
		if s.ParagraphEnd {
			flush()
		}
	}
	flush()
	return out
}

package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMinLineLength is the rune count below which a line is treated as a
// heading, caption or navigation noise rather than prose.
const DefaultMinLineLength = 100

// Options configures line normalization.
type Options struct {
	// MinLineLength drops lines with fewer runes. Negative disables the
	// filter; zero uses DefaultMinLineLength.
	MinLineLength int
}

func (o Options) minLength() int {
	switch {
	case o.MinLineLength < 0:
		return 0
	case o.MinLineLength == 0:
		return DefaultMinLineLength
	}
	return o.MinLineLength
}

// Lines converts raw extracted page text into trimmed, non-empty candidate
// lines in source order. Each returned line is one source paragraph.
func Lines(raw string, opt Options) []string {
	raw = norm.NFC.String(raw)
	minLen := opt.minLength()

	out := make([]string, 0, 32)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Runs of two spaces separate inline blocks that the extractor
		// flattened onto one line.
		for _, piece := range strings.Split(line, "  ") {
			piece = strings.TrimSpace(piece)
			if piece == "" || utf8.RuneCountInString(piece) < minLen {
				continue
			}
			out = append(out, RepairSpacing(piece))
		}
	}
	return out
}

// RepairSpacing inserts a single space after every period that is directly
// followed by a letter, so "end.Next" becomes "end. Next".
func RepairSpacing(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	prevDot := false
	for _, r := range s {
		if prevDot && unicode.IsLetter(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prevDot = r == '.'
	}
	return b.String()
}

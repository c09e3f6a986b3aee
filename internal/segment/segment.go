package segment

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinSentenceLength is the rune count below which a fragment is
// treated as noise rather than a sentence.
const DefaultMinSentenceLength = 100

// Sentence is one segmented sentence. Index is its position in the
// segmented sequence and the only ordering key used downstream.
type Sentence struct {
	Text         string
	Index        int
	ParagraphEnd bool
}

// Options configures segmentation.
type Options struct {
	// MinSentenceLength drops fragments with fewer runes. Negative disables
	// the filter; zero uses DefaultMinSentenceLength.
	MinSentenceLength int
}

func (o Options) minLength() int {
	switch {
	case o.MinSentenceLength < 0:
		return 0
	case o.MinSentenceLength == 0:
		return DefaultMinSentenceLength
	}
	return o.MinSentenceLength
}

// rejectSymbols indicate entity or markup leakage rather than prose.
const rejectSymbols = "&%#"

// Split turns normalized lines into sentences. Each line is one source
// paragraph; the last retained fragment of a line ends the paragraph.
func Split(lines []string, opt Options) []Sentence {
	minLen := opt.minLength()
	out := make([]Sentence, 0, len(lines)*2)
	for _, line := range lines {
		if strings.ContainsAny(line, rejectSymbols) {
			continue
		}
		punct, ok := Terminal(line)
		if !ok {
			continue
		}
		start := len(out)
		for _, frag := range strings.Split(line, punct+" ") {
			frag = strings.TrimSpace(frag)
			if frag == "" || utf8.RuneCountInString(frag) < minLen {
				continue
			}
			out = append(out, Sentence{Text: terminate(frag, punct), Index: len(out)})
		}
		if len(out) > start {
			out[len(out)-1].ParagraphEnd = true
		}
	}
	return out
}

// Terminal returns the punctuation used to split line: '!' when present,
// else '?', else '.'. ok is false when the line has none of them.
func Terminal(line string) (punct string, ok bool) {
	switch {
	case strings.Contains(line, "!"):
		return "!", true
	case strings.Contains(line, "?"):
		return "?", true
	case strings.Contains(line, "."):
		return ".", true
	}
	return "", false
}

// terminate restores the split punctuation unless frag already ends a
// sentence, including a terminal mark closed by a quote or bracket.
func terminate(frag, punct string) string {
	last, size := utf8.DecodeLastRuneInString(frag)
	if isClosing(last) {
		last, _ = utf8.DecodeLastRuneInString(frag[:len(frag)-size])
	}
	switch last {
	case '.', '?', '!':
		return frag
	}
	return frag + punct
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '\u201d', '\u2019':
		return true
	}
	return false
}

// Texts returns the sentence texts in order.
func Texts(sentences []Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

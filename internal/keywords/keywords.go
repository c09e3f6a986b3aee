package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperifyio/gosummarize/internal/segment"
)

// Candidate is a keyword candidate with its occurrence count.
type Candidate struct {
	Word  string
	Count int
}

// Extract returns up to limit keywords, most frequent first. Each step is a
// pure function over the previous step's output.
func Extract(sentences []segment.Sentence, stop Stoplist, limit int) []string {
	return Top(Suppress(Rank(Count(sentences, stop))), limit)
}

// Count tokenizes every sentence on whitespace and counts tokens that are
// not stoplisted and start with an uppercase rune. Candidates are returned
// in first-seen order.
func Count(sentences []segment.Sentence, stop Stoplist) []Candidate {
	pos := map[string]int{}
	var out []Candidate
	for _, s := range sentences {
		for _, tok := range strings.Fields(s.Text) {
			if stop.Contains(tok) || !startsUpper(tok) {
				continue
			}
			if i, ok := pos[tok]; ok {
				out[i].Count++
				continue
			}
			pos[tok] = len(out)
			out = append(out, Candidate{Word: tok, Count: 1})
		}
	}
	return out
}

func startsUpper(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// Rank returns a copy of cands stably sorted by descending count.
func Rank(cands []Candidate) []Candidate {
	out := append([]Candidate(nil), cands...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Suppress drops candidates that are a substring of, or contain, an
// accepted candidate with a strictly higher count. ranked must be sorted by
// descending count; the result keeps that order and holds no zero counts.
func Suppress(ranked []Candidate) []Candidate {
	zeroed := make([]Candidate, len(ranked))
	var accepted []Candidate
	for i, c := range ranked {
		zeroed[i] = c
		if c.Count <= 0 || shadowed(c, accepted) {
			zeroed[i].Count = 0
			continue
		}
		accepted = append(accepted, c)
	}
	out := make([]Candidate, 0, len(accepted))
	for _, c := range Rank(zeroed) {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}

func shadowed(c Candidate, accepted []Candidate) bool {
	for _, a := range accepted {
		if a.Count <= c.Count {
			continue
		}
		if strings.Contains(a.Word, c.Word) || strings.Contains(c.Word, a.Word) {
			return true
		}
	}
	return false
}

// Top returns the words of the first limit candidates. Fewer candidates
// yield a shorter list.
func Top(cands []Candidate, limit int) []string {
	if limit > len(cands) {
		limit = len(cands)
	}
	if limit < 0 {
		limit = 0
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = cands[i].Word
	}
	return out
}

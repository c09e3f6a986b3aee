package rank

import (
	"math"
	"sort"
	"strings"

	"github.com/hyperifyio/gosummarize/internal/segment"
)

// Scores returns, per sentence, the number of whitespace tokens exactly
// matching a keyword. Repeated hits in one sentence each count.
func Scores(sentences []segment.Sentence, keywords []string) []int {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	out := make([]int, len(sentences))
	for i, s := range sentences {
		for _, tok := range strings.Fields(s.Text) {
			if _, ok := set[tok]; ok {
				out[i]++
			}
		}
	}
	return out
}

// Count returns floor(fraction * n), clamped to [0, n]. The epsilon keeps
// products such as 0.57*100 from flooring one below the decimal result.
func Count(fraction float64, n int) int {
	k := int(math.Floor(fraction*float64(n) + 1e-9))
	if k < 0 {
		return 0
	}
	if k > n {
		return n
	}
	return k
}

// Select returns the positions of the highest-scoring sentences in
// ascending order. Equal scores keep their original relative order.
func Select(sentences []segment.Sentence, keywords []string, fraction float64) []int {
	scores := Scores(sentences, keywords)
	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	picked := append([]int(nil), order[:Count(fraction, len(sentences))]...)
	sort.Ints(picked)
	return picked
}

// Pick returns the sentences at the given positions.
func Pick(sentences []segment.Sentence, positions []int) []segment.Sentence {
	out := make([]segment.Sentence, 0, len(positions))
	for _, p := range positions {
		out = append(out, sentences[p])
	}
	return out
}

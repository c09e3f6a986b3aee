package keywords

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stoplist is a read-only set of words excluded from keyword candidacy.
// Matching is exact and case-sensitive. The zero value excludes nothing.
type Stoplist struct {
	words map[string]struct{}
}

// NewStoplist builds a stoplist from words, trimming each one.
func NewStoplist(words ...string) Stoplist {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			m[w] = struct{}{}
		}
	}
	return Stoplist{words: m}
}

// ParseStoplist reads one word per line. Blank lines and lines starting
// with '#' are skipped.
func ParseStoplist(r io.Reader) (Stoplist, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return Stoplist{}, fmt.Errorf("read stoplist: %w", err)
	}
	return NewStoplist(words...), nil
}

// LoadStoplist reads the stoplist file at path.
func LoadStoplist(path string) (Stoplist, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stoplist{}, err
	}
	defer f.Close()
	s, err := ParseStoplist(f)
	if err != nil {
		return Stoplist{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Contains reports whether word is stoplisted.
func (s Stoplist) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words.
func (s Stoplist) Len() int { return len(s.words) }

// DefaultStoplist holds capitalized function words that commonly open
// English sentences.
var DefaultStoplist = NewStoplist(
	"A", "An", "The", "This", "That", "These", "Those", "There", "Their",
	"They", "Them", "Then", "Thus", "Is", "It", "Its", "In", "On", "At",
	"Of", "As", "By", "For", "From", "To", "With", "Without", "Into",
	"And", "But", "Or", "Nor", "So", "Yet", "If", "When", "While", "Where",
	"Which", "Who", "Whom", "Whose", "What", "Why", "How", "After",
	"Before", "During", "Although", "Though", "Because", "Since", "Until",
	"However", "Also", "Some", "Many", "Most", "Other", "Others", "Such",
	"Each", "Every", "All", "Both", "Few", "More", "Several", "One", "Two",
	"He", "She", "His", "Her", "Hers", "We", "Our", "You", "Your", "I",
	"My", "Me", "Us", "Not", "No", "Yes", "Be", "Are", "Was", "Were",
	"Has", "Have", "Had", "Do", "Does", "Did", "Can", "Could", "Will",
	"Would", "Should", "May", "Might", "Must", "About", "Over", "Under",
	"Between", "Through", "Like", "Only", "Even", "Still", "Here",
)

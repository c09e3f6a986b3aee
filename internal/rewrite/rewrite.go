// Package rewrite applies literal abbreviation substitutions so that
// abbreviation periods are not mistaken for sentence boundaries.
package rewrite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Rule replaces every occurrence of Pattern with Replacement.
type Rule struct {
	Pattern     string
	Replacement string
}

// Table is an ordered, read-only list of rules. The zero value applies no
// substitutions. A Table is safe for concurrent use once built.
type Table struct {
	rules []Rule
}

// DefaultTable covers common English titles and Latin abbreviations.
var DefaultTable = MustTable(
	Rule{"Mrs.", "Mrs"},
	Rule{"Mr.", "Mr"},
	Rule{"Ms.", "Ms"},
	Rule{"Dr.", "Dr"},
	Rule{"Prof.", "Prof"},
	Rule{"St.", "St"},
	Rule{"Jr.", "Jr"},
	Rule{"Sr.", "Sr"},
	Rule{"vs.", "vs"},
	Rule{"etc.", "etc"},
	Rule{"e.g.", "eg"},
	Rule{"i.e.", "ie"},
)

// ParseError reports a malformed line in a replacement file.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("replacement rule line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// NewTable validates rules and keeps their order.
func NewTable(rules ...Rule) (Table, error) {
	seen := make(map[string]struct{}, len(rules))
	out := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if r.Pattern == "" {
			return Table{}, &ParseError{Line: i + 1, Text: r.Pattern, Reason: "empty pattern"}
		}
		if strings.Contains(r.Pattern, "=") {
			return Table{}, &ParseError{Line: i + 1, Text: r.Pattern, Reason: "pattern contains '='"}
		}
		if _, dup := seen[r.Pattern]; dup {
			return Table{}, &ParseError{Line: i + 1, Text: r.Pattern, Reason: "duplicate pattern"}
		}
		seen[r.Pattern] = struct{}{}
		out = append(out, r)
	}
	return Table{rules: out}, nil
}

// MustTable is like NewTable but panics on invalid rules. Intended for
// package-level defaults.
func MustTable(rules ...Rule) Table {
	t, err := NewTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse reads pattern=replacement lines. The first '=' is the delimiter.
// Blank lines and lines starting with '#' are skipped.
func Parse(r io.Reader) (Table, error) {
	var rules []Rule
	seen := map[string]int{}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		raw := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(raw) == "" || strings.HasPrefix(strings.TrimSpace(raw), "#") {
			continue
		}
		eq := strings.IndexByte(raw, '=')
		if eq < 0 {
			return Table{}, &ParseError{Line: n, Text: raw, Reason: "missing '=' delimiter"}
		}
		pattern := strings.TrimLeft(raw[:eq], " \t")
		if pattern == "" {
			return Table{}, &ParseError{Line: n, Text: raw, Reason: "empty pattern"}
		}
		if first, dup := seen[pattern]; dup {
			return Table{}, &ParseError{Line: n, Text: raw, Reason: fmt.Sprintf("duplicate pattern (first on line %d)", first)}
		}
		seen[pattern] = n
		rules = append(rules, Rule{Pattern: pattern, Replacement: raw[eq+1:]})
	}
	if err := scanner.Err(); err != nil {
		return Table{}, fmt.Errorf("read replacements: %w", err)
	}
	return Table{rules: rules}, nil
}

// LoadFile parses the replacement table at path.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Len returns the number of rules.
func (t Table) Len() int { return len(t.rules) }

// Rules returns a copy of the rules in application order.
func (t Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Apply runs every rule over text in table order.
func (t Table) Apply(text string) string {
	for _, r := range t.rules {
		text = strings.ReplaceAll(text, r.Pattern, r.Replacement)
	}
	return text
}

// ApplyLines applies the table to each line and returns a new slice.
func (t Table) ApplyLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = t.Apply(l)
	}
	return out
}

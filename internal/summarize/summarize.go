// Package summarize wires the extractive summarization stages into a single
// deterministic pipeline: normalize, rewrite abbreviations, segment, extract
// keywords, rank, and assemble paragraphs.
package summarize

import (
	"errors"
	"fmt"

	"github.com/hyperifyio/gosummarize/internal/assemble"
	"github.com/hyperifyio/gosummarize/internal/keywords"
	"github.com/hyperifyio/gosummarize/internal/normalize"
	"github.com/hyperifyio/gosummarize/internal/rank"
	"github.com/hyperifyio/gosummarize/internal/rewrite"
	"github.com/hyperifyio/gosummarize/internal/segment"
)

// Defaults taken by the CLI when nothing else is configured.
const (
	DefaultKeywordLimit     = 25
	DefaultSentenceFraction = 0.65
)

var (
	errKeywordLimit = errors.New("keyword limit must be greater than zero")
	errFraction     = errors.New("sentence fraction must be in (0, 1]")
)

// Options configures one summarization run. Stoplist and Replacements are
// shared read-only across runs.
type Options struct {
	KeywordLimit     int
	SentenceFraction float64

	// Zero selects the package defaults; negative disables the filter.
	MinLineLength     int
	MinSentenceLength int

	Stoplist     keywords.Stoplist
	Replacements rewrite.Table
}

// Validate checks the numeric parameters.
func (o Options) Validate() error {
	if o.KeywordLimit <= 0 {
		return &ConfigError{Field: "keyword_limit", Err: fmt.Errorf("%w: got %d", errKeywordLimit, o.KeywordLimit)}
	}
	if !(o.SentenceFraction > 0 && o.SentenceFraction <= 1) {
		return &ConfigError{Field: "sentence_fraction", Err: fmt.Errorf("%w: got %v", errFraction, o.SentenceFraction)}
	}
	return nil
}

// Result is the outcome of a run.
type Result struct {
	Paragraphs []string
	Keywords   []string
	// Sentences is the number of segmented sentences; Selected how many of
	// them made it into the summary.
	Sentences int
	Selected  int
}

// Summarize produces the ordered paragraphs of an extractive summary of raw.
// Input with no surviving sentence yields an empty Result and no error.
func Summarize(raw string, opt Options) (res Result, err error) {
	if err := opt.Validate(); err != nil {
		return Result{}, err
	}
	stage := "normalize"
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &PipelineError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	lines := normalize.Lines(raw, normalize.Options{MinLineLength: opt.MinLineLength})

	stage = "rewrite"
	lines = opt.Replacements.ApplyLines(lines)

	stage = "segment"
	sentences := segment.Split(lines, segment.Options{MinSentenceLength: opt.MinSentenceLength})
	if len(sentences) == 0 {
		return Result{}, nil
	}

	stage = "keywords"
	kw := keywords.Extract(sentences, opt.Stoplist, opt.KeywordLimit)

	stage = "rank"
	picked := rank.Select(sentences, kw, opt.SentenceFraction)

	stage = "assemble"
	paragraphs := assemble.Paragraphs(rank.Pick(sentences, picked))

	return Result{
		Paragraphs: paragraphs,
		Keywords:   kw,
		Sentences:  len(sentences),
		Selected:   len(picked),
	}, nil
}

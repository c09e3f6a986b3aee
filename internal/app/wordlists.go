package app

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gosummarize/internal/keywords"
	"github.com/hyperifyio/gosummarize/internal/rewrite"
	"github.com/hyperifyio/gosummarize/internal/summarize"
)

// loadWordLists reads the stoplist and replacement table named by cfg,
// falling back to the built-in lists when a path is empty.
func loadWordLists(cfg Config) (keywords.Stoplist, rewrite.Table, error) {
	stop := keywords.DefaultStoplist
	if p := strings.TrimSpace(cfg.StoplistPath); p != "" {
		s, err := keywords.LoadStoplist(p)
		if err != nil {
			return keywords.Stoplist{}, rewrite.Table{}, &summarize.ConfigError{Field: "stoplist", Err: err}
		}
		stop = s
		log.Debug().Str("path", p).Int("words", s.Len()).Msg("stoplist loaded")
	}
	table := rewrite.DefaultTable
	if p := strings.TrimSpace(cfg.ReplacementsPath); p != "" {
		t, err := rewrite.LoadFile(p)
		if err != nil {
			return keywords.Stoplist{}, rewrite.Table{}, &summarize.ConfigError{Field: "replacements", Err: err}
		}
		table = t
		log.Debug().Str("path", p).Int("rules", t.Len()).Msg("replacement table loaded")
	}
	return stop, table, nil
}

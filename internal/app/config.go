package app

import (
	"time"

	"github.com/hyperifyio/gosummarize/internal/summarize"
)

// Config holds runtime configuration for the application.
type Config struct {
	URLs []string

	// Output. OutputPath is used when exactly one URL is given; otherwise
	// each report is written under OutputDir with a derived name.
	OutputPath string
	OutputDir  string
	OutputPDF  bool

	// Summarization
	KeywordLimit      int
	SentenceFraction  float64
	MinLineLength     int
	MinSentenceLength int
	StoplistPath      string
	ReplacementsPath  string

	// Fetching
	UserAgent     string
	Timeout       time.Duration
	RetryDelay    time.Duration
	Concurrency   int
	// RespectRobots skips URLs that robots.txt disallows for UserAgent.
	RespectRobots bool

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	Verbose bool
}

const (
	defaultOutputPath  = "summary.txt"
	defaultOutputDir   = "summaries"
	defaultUserAgent   = "gosummarize/1.0 (+https://github.com/hyperifyio/gosummarize)"
	defaultTimeout     = 15 * time.Second
	defaultConcurrency = 4
	defaultCacheDir    = ".gosummarize-cache"
)

// DefaultConfig returns the configuration used when no file, env or flag
// overrides a value.
func DefaultConfig() Config {
	return Config{
		OutputPath:        defaultOutputPath,
		OutputDir:         defaultOutputDir,
		KeywordLimit:      summarize.DefaultKeywordLimit,
		SentenceFraction:  summarize.DefaultSentenceFraction,
		MinLineLength:     100,
		MinSentenceLength: 100,
		UserAgent:         defaultUserAgent,
		Timeout:           defaultTimeout,
		Concurrency:       defaultConcurrency,
		CacheDir:          defaultCacheDir,
	}
}

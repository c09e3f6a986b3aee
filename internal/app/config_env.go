package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig overrides cfg fields whose environment variable is set.
// Unparsable numeric values are ignored so that the previous layer stands.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := strings.TrimSpace(os.Getenv("URLS")); v != "" {
		cfg.URLs = splitList(v)
	}
	if v := os.Getenv("OUTPUT"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("STOPLIST_FILE"); v != "" {
		cfg.StoplistPath = v
	}
	if v := os.Getenv("REPLACEMENTS_FILE"); v != "" {
		cfg.ReplacementsPath = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}

	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("KEYWORD_LIMIT"))); err == nil {
		cfg.KeywordLimit = n
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv("SENTENCE_FRACTION")), 64); err == nil {
		cfg.SentenceFraction = f
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("CONCURRENCY"))); err == nil && n > 0 {
		cfg.Concurrency = n
	}
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("CACHE_MAX_AGE"))); err == nil {
		cfg.CacheMaxAge = d
	}

	setBool := func(dst *bool, envKey string) {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
	setBool(&cfg.OutputPDF, "OUTPUT_PDF")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
	setBool(&cfg.RespectRobots, "RESPECT_ROBOTS")
	setBool(&cfg.Verbose, "VERBOSE")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/gosummarize/internal/summarize"
)

// FileConfig is the YAML/JSON configuration file schema. Pointer fields
// distinguish "unset" from an explicit zero.
type FileConfig struct {
	URLs []string `yaml:"urls" json:"urls"`

	Output struct {
		Path string `yaml:"path" json:"path"`
		Dir  string `yaml:"dir" json:"dir"`
		PDF  *bool  `yaml:"pdf" json:"pdf"`
	} `yaml:"output" json:"output"`

	Summary struct {
		Keywords     int     `yaml:"keywords" json:"keywords"`
		Fraction     float64 `yaml:"fraction" json:"fraction"`
		MinLine      *int    `yaml:"minLine" json:"minLine"`
		MinSentence  *int    `yaml:"minSentence" json:"minSentence"`
		Stoplist     string  `yaml:"stoplist" json:"stoplist"`
		Replacements string  `yaml:"replacements" json:"replacements"`
	} `yaml:"summary" json:"summary"`

	Fetch struct {
		UserAgent   string        `yaml:"userAgent" json:"userAgent"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout"`
		RetryDelay  time.Duration `yaml:"retryDelay" json:"retryDelay"`
		Concurrency int           `yaml:"concurrency" json:"concurrency"`
		Robots      bool          `yaml:"robots" json:"robots"`
	} `yaml:"fetch" json:"fetch"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig, picking the decoder by
// extension and trying YAML then JSON otherwise.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, &summarize.ConfigError{Field: "config", Err: err}
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	case ".json":
		err = json.Unmarshal(b, &fc)
	default:
		if yerr := yaml.Unmarshal(b, &fc); yerr != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				err = fmt.Errorf("%v (yaml) / %v (json)", yerr, jerr)
			}
		}
	}
	if err != nil {
		return FileConfig{}, &summarize.ConfigError{Field: "config", Err: fmt.Errorf("parse %s: %w", path, err)}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if len(fc.URLs) > 0 {
		cfg.URLs = append([]string(nil), fc.URLs...)
	}
	if fc.Output.Path != "" {
		cfg.OutputPath = fc.Output.Path
	}
	if fc.Output.Dir != "" {
		cfg.OutputDir = fc.Output.Dir
	}
	if fc.Output.PDF != nil {
		cfg.OutputPDF = *fc.Output.PDF
	}

	if fc.Summary.Keywords != 0 {
		cfg.KeywordLimit = fc.Summary.Keywords
	}
	if fc.Summary.Fraction != 0 {
		cfg.SentenceFraction = fc.Summary.Fraction
	}
	if fc.Summary.MinLine != nil {
		cfg.MinLineLength = *fc.Summary.MinLine
	}
	if fc.Summary.MinSentence != nil {
		cfg.MinSentenceLength = *fc.Summary.MinSentence
	}
	if fc.Summary.Stoplist != "" {
		cfg.StoplistPath = fc.Summary.Stoplist
	}
	if fc.Summary.Replacements != "" {
		cfg.ReplacementsPath = fc.Summary.Replacements
	}

	if fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if fc.Fetch.Timeout > 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if fc.Fetch.RetryDelay > 0 {
		cfg.RetryDelay = fc.Fetch.RetryDelay
	}
	if fc.Fetch.Concurrency > 0 {
		cfg.Concurrency = fc.Fetch.Concurrency
	}

	if fc.Fetch.Robots {
		cfg.RespectRobots = true
	}

	if fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig checks settings before any URL is processed.
func ValidateConfig(cfg Config) error {
	if len(cfg.URLs) == 0 {
		return &summarize.ConfigError{Field: "urls", Err: errors.New("at least one URL is required")}
	}
	for _, u := range cfg.URLs {
		if strings.TrimSpace(u) == "" {
			return &summarize.ConfigError{Field: "urls", Err: errors.New("empty URL")}
		}
	}
	if len(cfg.URLs) == 1 && strings.TrimSpace(cfg.OutputPath) == "" {
		return &summarize.ConfigError{Field: "output", Err: errors.New("output path is required")}
	}
	if len(cfg.URLs) > 1 && strings.TrimSpace(cfg.OutputDir) == "" {
		return &summarize.ConfigError{Field: "output.dir", Err: errors.New("output dir is required for several URLs")}
	}
	if cfg.Concurrency < 0 || cfg.Timeout < 0 || cfg.CacheMaxAge < 0 {
		return &summarize.ConfigError{Field: "limits", Err: errors.New("negative limits are not allowed")}
	}
	return summarize.Options{KeywordLimit: cfg.KeywordLimit, SentenceFraction: cfg.SentenceFraction}.Validate()
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gosummarize/internal/app"
	"github.com/hyperifyio/gosummarize/internal/summarize"
)

// Exit codes.
const (
	exitOK        = 0
	exitConfig    = 1
	exitRunFailed = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runCLI(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// flagValues mirrors app.Config for the subset exposed on the command line.
type flagValues struct {
	configPath       string
	outputPath       string
	outputDir        string
	outputPDF        bool
	keywordLimit     int
	sentenceFraction float64
	minLine          int
	minSentence      int
	stoplistPath     string
	replacementsPath string
	cacheDir         string
	cacheMaxAge      time.Duration
	cacheClear       bool
	cacheStrict      bool
	concurrency      int
	robots           bool
	userAgent        string
	timeout          time.Duration
	verbose          bool
	showVersion      bool
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *flagValues) {
	def := app.DefaultConfig()
	v := &flagValues{}
	fs := flag.NewFlagSet("gosummarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: gosummarize [flags] URL...\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&v.configPath, "config", os.Getenv("GOSUMMARIZE_CONFIG"), "Path to YAML or JSON config file")
	fs.StringVar(&v.outputPath, "output", def.OutputPath, "Path to write the summary when one URL is given")
	fs.StringVar(&v.outputDir, "output.dir", def.OutputDir, "Directory for summaries when several URLs are given")
	fs.BoolVar(&v.outputPDF, "output.pdf", false, "Also write a PDF next to each text summary")
	fs.IntVar(&v.keywordLimit, "keywords", def.KeywordLimit, "Number of keywords used to score sentences")
	fs.Float64Var(&v.sentenceFraction, "fraction", def.SentenceFraction, "Fraction of sentences kept, in (0, 1]")
	fs.IntVar(&v.minLine, "min.line", def.MinLineLength, "Drop lines shorter than this many characters (negative disables)")
	fs.IntVar(&v.minSentence, "min.sentence", def.MinSentenceLength, "Drop sentences shorter than this many characters (negative disables)")
	fs.StringVar(&v.stoplistPath, "stoplist", "", "Stoplist file, one word per line (default built-in)")
	fs.StringVar(&v.replacementsPath, "replacements", "", "Abbreviation table, pattern=replacement per line (default built-in)")
	fs.StringVar(&v.cacheDir, "cache.dir", def.CacheDir, "Page cache directory; empty disables caching")
	fs.DurationVar(&v.cacheMaxAge, "cache.maxAge", 0, "Purge cached pages older than this before the run; 0 disables")
	fs.BoolVar(&v.cacheClear, "cache.clear", false, "Clear the cache directory before the run")
	fs.BoolVar(&v.cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.IntVar(&v.concurrency, "concurrency", def.Concurrency, "Maximum URLs processed at once")
	fs.BoolVar(&v.robots, "robots", false, "Skip URLs disallowed by robots.txt")
	fs.StringVar(&v.userAgent, "ua", def.UserAgent, "User-Agent sent when fetching pages")
	fs.DurationVar(&v.timeout, "timeout", def.Timeout, "Per-request fetch timeout")
	fs.BoolVar(&v.verbose, "v", false, "Verbose logging")
	fs.BoolVar(&v.showVersion, "version", false, "Print version and exit")
	return fs, v
}

// resolveConfig builds the effective configuration. Precedence is
// flags > environment > config file > defaults; only flags the user
// actually set take part in the top layer.
func resolveConfig(fs *flag.FlagSet, v *flagValues) (app.Config, error) {
	cfg := app.DefaultConfig()
	if p := strings.TrimSpace(v.configPath); p != "" {
		fc, err := app.LoadConfigFile(p)
		if err != nil {
			return app.Config{}, err
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	set := map[string]func(){
		"output":            func() { cfg.OutputPath = v.outputPath },
		"output.dir":        func() { cfg.OutputDir = v.outputDir },
		"output.pdf":        func() { cfg.OutputPDF = v.outputPDF },
		"keywords":          func() { cfg.KeywordLimit = v.keywordLimit },
		"fraction":          func() { cfg.SentenceFraction = v.sentenceFraction },
		"min.line":          func() { cfg.MinLineLength = v.minLine },
		"min.sentence":      func() { cfg.MinSentenceLength = v.minSentence },
		"stoplist":          func() { cfg.StoplistPath = v.stoplistPath },
		"replacements":      func() { cfg.ReplacementsPath = v.replacementsPath },
		"cache.dir":         func() { cfg.CacheDir = v.cacheDir },
		"cache.maxAge":      func() { cfg.CacheMaxAge = v.cacheMaxAge },
		"cache.clear":       func() { cfg.CacheClear = v.cacheClear },
		"cache.strictPerms": func() { cfg.CacheStrictPerms = v.cacheStrict },
		"concurrency":       func() { cfg.Concurrency = v.concurrency },
		"robots":            func() { cfg.RespectRobots = v.robots },
		"ua":                func() { cfg.UserAgent = v.userAgent },
		"timeout":           func() { cfg.Timeout = v.timeout },
		"v":                 func() { cfg.Verbose = v.verbose },
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := set[f.Name]; ok {
			apply()
		}
	})
	if args := fs.Args(); len(args) > 0 {
		cfg.URLs = append([]string(nil), args...)
	}
	return cfg, nil
}

func setupLogging(w io.Writer, verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func runCLI(ctx context.Context, args []string, stderr io.Writer) int {
	setupLogging(stderr, false)
	if err := app.LoadEnvFiles(".env", ".env.local"); err != nil {
		log.Error().Err(err).Msg("load .env")
		return exitConfig
	}

	fs, v := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}
	if v.showVersion {
		fmt.Fprintln(stderr, app.VersionString())
		return exitOK
	}

	cfg, err := resolveConfig(fs, v)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return exitConfig
	}
	setupLogging(stderr, cfg.Verbose)

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("init app")
		return exitCode(err)
	}
	outcomes, err := a.Run(ctx)
	ok := 0
	for _, o := range outcomes {
		if o.Err == nil {
			ok++
		}
	}
	log.Info().Int("ok", ok).Int("failed", len(outcomes)-ok).Msg("done")
	if err != nil {
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	var ce *summarize.ConfigError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ce) && !errors.Is(err, app.ErrRunFailed):
		return exitConfig
	default:
		return exitRunFailed
	}
}

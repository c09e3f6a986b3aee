package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/gosummarize/internal/cache"
	"github.com/hyperifyio/gosummarize/internal/extract"
	"github.com/hyperifyio/gosummarize/internal/fetch"
	"github.com/hyperifyio/gosummarize/internal/report"
	"github.com/hyperifyio/gosummarize/internal/robots"
	"github.com/hyperifyio/gosummarize/internal/summarize"
)

// ErrRunFailed is returned by Run when at least one URL could not be
// fetched, summarized or written. The individual causes are joined onto it.
var ErrRunFailed = errors.New("one or more URLs failed")

type App struct {
	cfg     Config
	opts    summarize.Options
	fetcher *fetch.Client
	now     func() time.Time
}

// Outcome describes what happened to one URL.
type Outcome struct {
	URL        string
	OutputPath string
	Sentences  int
	Selected   int
	FromCache  bool
	Err        error
}

// New validates cfg, prepares the page cache and loads the word lists.
// Repeated URLs are processed once.
func New(ctx context.Context, cfg Config) (*App, error) {
	cfg.URLs = uniqueURLs(cfg.URLs)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	stop, table, err := loadWordLists(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg: cfg,
		opts: summarize.Options{
			KeywordLimit:      cfg.KeywordLimit,
			SentenceFraction:  cfg.SentenceFraction,
			MinLineLength:     cfg.MinLineLength,
			MinSentenceLength: cfg.MinSentenceLength,
			Stoplist:          stop,
			Replacements:      table,
		},
		fetcher: &fetch.Client{
			HTTPClient:        newFetchHTTPClient(cfg.Timeout, cfg.Concurrency),
			UserAgent:         cfg.UserAgent,
			PerRequestTimeout: cfg.Timeout,
			RetryDelay:        cfg.RetryDelay,
		},
		now: time.Now,
	}
	if cfg.RespectRobots {
		a.fetcher.Robots = &robots.Checker{HTTPClient: a.fetcher.HTTPClient, UserAgent: cfg.UserAgent}
	}

	if dir := strings.TrimSpace(cfg.CacheDir); dir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(dir); err != nil {
				log.Warn().Err(err).Str("dir", dir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			n, err := cache.PurgeByAge(dir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Str("dir", dir).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Dur("max_age", cfg.CacheMaxAge).Msg("cache purged")
			}
		}
		a.fetcher.Cache = &cache.PageCache{Dir: dir, StrictPerms: cfg.CacheStrictPerms}
	}
	return a, nil
}

// Run summarizes every configured URL, at most cfg.Concurrency at a time.
// A failing URL does not stop the others; the outcomes are returned in the
// order of cfg.URLs.
func (a *App) Run(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, len(a.cfg.URLs))
	limit := a.cfg.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	var mu sync.Mutex
	var errs []error
	for i, u := range a.cfg.URLs {
		g.Go(func() error {
			out := a.processURL(gctx, u)
			outcomes[i] = out
			if out.Err != nil {
				log.Error().Err(out.Err).Str("url", u).Msg("summary failed")
				mu.Lock()
				errs = append(errs, out.Err)
				mu.Unlock()
			}
			// Per-URL failures are collected, never propagated, so the
			// group context stays live for the remaining URLs.
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		return outcomes, errors.Join(append([]error{ErrRunFailed}, errs...)...)
	}
	return outcomes, nil
}

// uniqueURLs drops repeats, comparing trimmed values, and keeps the first
// occurrence order.
func uniqueURLs(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if seen[u] {
			log.Warn().Str("url", u).Msg("duplicate URL ignored")
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func (a *App) processURL(ctx context.Context, rawURL string) Outcome {
	out := Outcome{URL: rawURL, OutputPath: outputPathFor(a.cfg, rawURL)}

	page, err := a.fetcher.Get(ctx, rawURL)
	if err != nil {
		out.Err = err
		return out
	}
	out.FromCache = page.FromCache
	log.Debug().Str("url", rawURL).Int("bytes", len(page.Body)).Bool("cached", page.FromCache).Msg("fetched")

	doc, err := extract.FromHTML(page.Body)
	if err != nil {
		out.Err = fmt.Errorf("extract %s: %w", rawURL, err)
		return out
	}

	res, err := summarize.Summarize(doc.Text, a.opts)
	if err != nil {
		out.Err = fmt.Errorf("summarize %s: %w", rawURL, err)
		return out
	}
	out.Sentences, out.Selected = res.Sentences, res.Selected
	if len(res.Paragraphs) == 0 {
		log.Warn().Str("url", rawURL).Msg("no sentences survived filtering; writing header only")
	}

	rep := report.Report{
		SourceURL:   rawURL,
		Title:       doc.Title,
		Author:      doc.Author,
		Description: doc.Description,
		URL:         doc.URL,
		Paragraphs:  res.Paragraphs,
		Keywords:    res.Keywords,
		Sentences:   res.Sentences,
		Selected:    res.Selected,
		TextSHA256:  report.SHA256Hex(doc.Text),
		GeneratedAt: a.now(),
	}
	if err := report.WriteTextFile(out.OutputPath, rep); err != nil {
		out.Err = fmt.Errorf("write %s: %w", out.OutputPath, err)
		return out
	}
	if err := report.WriteManifest(out.OutputPath, rep); err != nil {
		out.Err = fmt.Errorf("write manifest: %w", err)
		return out
	}
	if a.cfg.OutputPDF {
		pdfPath := replaceExt(out.OutputPath, ".pdf")
		if err := report.WritePDF(pdfPath, rep); err != nil {
			out.Err = fmt.Errorf("write pdf: %w", err)
			return out
		}
	}

	log.Info().
		Str("url", rawURL).
		Int("sentences", res.Sentences).
		Int("selected", res.Selected).
		Strs("keywords", res.Keywords).
		Str("out", out.OutputPath).
		Msg("summary written")
	return out
}

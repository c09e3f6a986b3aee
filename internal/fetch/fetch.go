package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gosummarize/internal/cache"
)

// DefaultRetryDelay is the pause before the single retry on 503.
const DefaultRetryDelay = time.Second

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 16 << 20

// Page is a fetched HTML document.
type Page struct {
	URL         string
	ContentType string
	Body        []byte
	// FromCache is true when the body came from the page cache after a 304.
	FromCache bool
}

// FetchError reports a fetch that failed for good. Status is zero when no
// HTTP response was received.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrDisallowed is returned when robots.txt forbids fetching the page.
var ErrDisallowed = errors.New("disallowed by robots.txt")

var (
	errServiceUnavailable = errors.New("service unavailable")
	errUnexpectedStatus   = errors.New("unexpected status")
	errContentType        = errors.New("unsupported content type")
	errScheme             = errors.New("unsupported URL scheme")
)

// Client fetches article pages. A 503 response is retried exactly once;
// every other failure is returned immediately as a *FetchError.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// PerRequestTimeout bounds each attempt. Zero means no extra bound.
	PerRequestTimeout time.Duration
	// RedirectMaxHops caps redirect following. Zero means 5.
	RedirectMaxHops int
	// RetryDelay is the pause before retrying a 503. Zero means DefaultRetryDelay.
	RetryDelay time.Duration

	// Cache, when set, enables conditional requests and serves 304s.
	Cache *cache.PageCache
	// BypassCache skips conditional headers but still stores fresh responses.
	BypassCache bool

	// Robots, when set, is consulted before each page fetch.
	Robots RobotsPolicy
}

// RobotsPolicy decides whether a URL may be fetched.
type RobotsPolicy interface {
	Allowed(ctx context.Context, rawURL string) (bool, error)
}

func (c *Client) httpClient() *http.Client {
	base := http.Client{}
	if c.HTTPClient != nil {
		base = *c.HTTPClient
	}
	base.CheckRedirect = c.checkRedirect
	return &base
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	if len(via) >= max {
		return errors.New("too many redirects")
	}
	if !isHTTPScheme(req.URL) {
		return errors.New("redirect to unsupported scheme")
	}
	return nil
}

// Get fetches rawURL.
func (c *Client) Get(ctx context.Context, rawURL string) (Page, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Page{}, &FetchError{URL: rawURL, Err: err}
	}
	if !isHTTPScheme(u) {
		return Page{}, &FetchError{URL: rawURL, Err: fmt.Errorf("%w: %q", errScheme, u.Scheme)}
	}

	if c.Robots != nil {
		ok, err := c.Robots.Allowed(ctx, rawURL)
		if err != nil {
			return Page{}, &FetchError{URL: rawURL, Err: fmt.Errorf("robots: %w", err)}
		}
		if !ok {
			return Page{}, &FetchError{URL: rawURL, Err: ErrDisallowed}
		}
	}

	var meta *cache.Entry
	if c.Cache != nil && !c.BypassCache {
		if m, err := c.Cache.LoadMeta(rawURL); err == nil {
			meta = m
		}
	}

	page, status, err := c.tryOnce(ctx, rawURL, meta)
	if status == http.StatusServiceUnavailable {
		delay := c.RetryDelay
		if delay <= 0 {
			delay = DefaultRetryDelay
		}
		log.Warn().Str("url", rawURL).Dur("delay", delay).Msg("server busy; retrying once")
		select {
		case <-ctx.Done():
			return Page{}, &FetchError{URL: rawURL, Status: status, Err: ctx.Err()}
		case <-time.After(delay):
		}
		page, status, err = c.tryOnce(ctx, rawURL, meta)
	}
	if err != nil {
		return Page{}, &FetchError{URL: rawURL, Status: status, Err: err}
	}
	return page, nil
}

func (c *Client) tryOnce(ctx context.Context, rawURL string, meta *cache.Entry) (Page, int, error) {
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.PerRequestTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, 0, fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if meta != nil {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Page{}, 0, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return Page{}, resp.StatusCode, errServiceUnavailable
	case resp.StatusCode == http.StatusNotModified && c.Cache != nil:
		body, cached, err := c.Cache.Load(rawURL)
		if err != nil {
			return Page{}, resp.StatusCode, fmt.Errorf("304 without cached body: %w", err)
		}
		return Page{URL: rawURL, ContentType: cached.ContentType, Body: body, FromCache: true}, resp.StatusCode, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Page{}, resp.StatusCode, errUnexpectedStatus
	}

	ct := resp.Header.Get("Content-Type")
	if !isHTMLContentType(ct) {
		return Page{}, resp.StatusCode, fmt.Errorf("%w: %s", errContentType, ct)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Page{}, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if c.Cache != nil {
		entry := cache.Entry{
			URL:          rawURL,
			ContentType:  ct,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		}
		if err := c.Cache.Save(entry, body); err != nil {
			log.Debug().Err(err).Str("url", rawURL).Msg("cache save failed")
		}
	}
	return Page{URL: rawURL, ContentType: ct, Body: body}, resp.StatusCode, nil
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	s := strings.ToLower(u.Scheme)
	return s == "http" || s == "https"
}

func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	// Servers that omit the header are given the benefit of the doubt.
	return ct == "" || strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}

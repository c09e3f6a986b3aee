// Package robots answers whether a page may be fetched under the site's
// robots.txt. Rules are fetched once per origin and kept in memory.
package robots

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

// maxRobotsBytes caps how much of robots.txt is read.
const maxRobotsBytes = 512 << 10

type rule struct {
	allow       bool
	specificity int
	re          *regexp.Regexp
}

type group struct {
	agents []string
	rules  []rule
}

// Rules is a parsed robots.txt.
type Rules struct {
	groups []group
}

// Checker fetches and evaluates robots.txt for article URLs. The zero value
// is usable; it is safe for concurrent use.
type Checker struct {
	HTTPClient *http.Client
	UserAgent  string
	// TTL bounds how long rules for an origin are reused. Zero means 30m.
	TTL time.Duration

	mu  sync.Mutex
	mem map[string]entry
	now func() time.Time
}

type entry struct {
	rules  Rules
	expiry time.Time
}

// Allowed reports whether pageURL may be fetched. A robots.txt that is
// missing, unreachable or answers with a non-2xx status allows everything.
func (c *Checker) Allowed(ctx context.Context, pageURL string) (bool, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return false, fmt.Errorf("not an absolute url: %q", pageURL)
	}
	rules := c.rulesFor(ctx, u.Scheme+"://"+u.Host)
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return rules.IsAllowed(c.UserAgent, path), nil
}

func (c *Checker) rulesFor(ctx context.Context, origin string) Rules {
	c.mu.Lock()
	if c.now == nil {
		c.now = time.Now
	}
	if c.mem == nil {
		c.mem = make(map[string]entry)
	}
	if e, ok := c.mem[origin]; ok && c.now().Before(e.expiry) {
		c.mu.Unlock()
		return e.rules
	}
	c.mu.Unlock()

	rules, _ := c.fetch(ctx, origin+"/robots.txt")

	ttl := c.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	c.mu.Lock()
	c.mem[origin] = entry{rules: rules, expiry: c.now().Add(ttl)}
	c.mu.Unlock()
	return rules
}

func (c *Checker) fetch(ctx context.Context, robotsURL string) (Rules, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return Rules{}, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Rules{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Rules{}, fmt.Errorf("robots status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return Rules{}, err
	}
	return Parse(string(data)), nil
}

// Parse reads robots.txt text. Unknown directives and malformed lines are
// ignored.
func Parse(text string) Rules {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var groups []group
	var cur group
	inRules := false
	flush := func() {
		if len(cur.agents) > 0 {
			groups = append(groups, cur)
		}
		cur = group{}
		inRules = false
	}
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		switch key {
		case "user-agent":
			// A user-agent line after rules starts a new group.
			if inRules {
				flush()
			}
			cur.agents = append(cur.agents, strings.ToLower(val))
		case "allow", "disallow":
			inRules = true
			if val == "" {
				continue
			}
			cur.rules = append(cur.rules, rule{
				allow:       key == "allow",
				specificity: len(strings.ReplaceAll(strings.TrimSuffix(val, "$"), "*", "")),
				re:          compilePattern(val),
			})
		}
	}
	flush()
	return Rules{groups: groups}
}

// compilePattern turns a robots path pattern into an anchored regexp;
// '*' matches any run and a trailing '$' anchors the end.
func compilePattern(pattern string) *regexp.Regexp {
	anchorEnd := strings.HasSuffix(pattern, "$")
	pattern = strings.TrimSuffix(pattern, "$")
	var b strings.Builder
	b.WriteString("^")
	for i, part := range strings.Split(pattern, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	if anchorEnd {
		b.WriteString("$")
	}
	return regexp.MustCompile(b.String())
}

// IsAllowed evaluates path for userAgent. The group with the longest agent
// token contained in userAgent applies, falling back to '*'. Within the
// group the most specific matching rule wins and Allow wins ties. No
// matching rule means allowed.
func (r Rules) IsAllowed(userAgent, path string) bool {
	g := r.selectGroup(userAgent)
	if g == nil {
		return true
	}
	best := -1
	allowed := true
	for _, ru := range g.rules {
		if !ru.re.MatchString(path) {
			continue
		}
		if ru.specificity > best || (ru.specificity == best && ru.allow) {
			best = ru.specificity
			allowed = ru.allow
		}
	}
	return allowed
}

func (r Rules) selectGroup(userAgent string) *group {
	ua := strings.ToLower(userAgent)
	var best *group
	bestScore := -1
	for i := range r.groups {
		for _, token := range r.groups[i].agents {
			score := -1
			switch {
			case token == "*":
				score = 0
			case token != "" && strings.Contains(ua, token):
				score = len(token)
			}
			if score > bestScore {
				bestScore = score
				best = &r.groups[i]
			}
		}
	}
	return best
}

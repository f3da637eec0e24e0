package common

import (
	"strings"
	"sync"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/platform/validator"
)

// ExtractURL drops a leading "YYYY-MM-DD HH:MM:SS " stamp (waybackurls
// -dates) and returns the URL part of line.
func ExtractURL(line string) string {
	line = strings.TrimSpace(line)
	idx := strings.Index(line, "http://")
	if s := strings.Index(line, "https://"); s >= 0 && (idx < 0 || s < idx) {
		idx = s
	}
	if idx > 0 {
		return strings.TrimSpace(line[idx:])
	}
	return line
}

// URLHost returns the host part of raw by plain string slicing, without
// validating escapes or ports. Lines with no "scheme://" yield "".
func URLHost(raw string) string {
	i := strings.Index(raw, "://")
	if i < 0 {
		return ""
	}
	rest := raw[i+3:]
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		rest = rest[:end]
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}
	if strings.HasPrefix(rest, "[") {
		return ""
	}
	if colon := strings.Index(rest, ":"); colon >= 0 {
		rest = rest[:colon]
	}
	return strings.ToLower(rest)
}

// URLInScope reports whether raw carries a host belonging to target.
func URLInScope(raw string, target domain.Target) bool {
	host := URLHost(raw)
	return host != "" && target.IsInScope(host)
}

// HostsFromURLs reduces live URLs to unique bare host names.
func HostsFromURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	hosts := make([]string, 0, len(urls))
	for _, u := range urls {
		h := validator.NormalizeDomain(u)
		if h == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		hosts = append(hosts, h)
	}
	return hosts
}

// URLCollector is an OutputHandler for crawl and archive output. Every
// non-blank line is kept as written, minus a -dates prefix. With scoped
// set, lines whose host is not under the target are dropped.
type URLCollector struct {
	target domain.Target
	scoped bool

	mu      sync.Mutex
	urls    []string
	dropped int
}

func NewURLCollector(target domain.Target, scoped bool) *URLCollector {
	return &URLCollector{target: target, scoped: scoped}
}

func (c *URLCollector) ProcessLine(line []byte) error {
	raw := ExtractURL(string(line))
	if raw == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scoped && !URLInScope(raw, c.target) {
		c.dropped++
		return nil
	}
	c.urls = append(c.urls, raw)
	return nil
}

func (c *URLCollector) Finalize() error { return nil }

// URLs returns kept lines in arrival order.
func (c *URLCollector) URLs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.urls))
	copy(out, c.urls)
	return out
}

// Dropped counts lines rejected by the scope check.
func (c *URLCollector) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

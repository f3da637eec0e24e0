package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"sqlihunt/internal/platform/logx"
)

// Parser turns httpx stdout into a list of live base URLs. It implements
// common.OutputHandler and accepts both JSONL and plain URL lines.
type Parser struct {
	logger logx.Logger

	mu     sync.Mutex
	seen   map[string]struct{}
	urls   []string
	failed int
}

func NewParser(logger logx.Logger) *Parser {
	return &Parser{
		logger: logger.With("component", "httpx_parser"),
		seen:   make(map[string]struct{}),
	}
}

func (p *Parser) ProcessLine(line []byte) error {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}

	if line[0] != '{' {
		p.add(string(line))
		return nil
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return fmt.Errorf("decode httpx record: %w", err)
	}
	if resp.Failed.Bool() || resp.URL == "" {
		p.mu.Lock()
		p.failed++
		p.mu.Unlock()
		return nil
	}

	p.logger.Debug("live host",
		"url", resp.URL,
		"status", resp.StatusCode,
		"title", resp.Title.String(),
		"server", resp.Webserver.String(),
	)
	p.add(resp.URL)
	return nil
}

func (p *Parser) add(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, dup := p.seen[url]; dup {
		return
	}
	p.seen[url] = struct{}{}
	p.urls = append(p.urls, url)
}

func (p *Parser) Finalize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger.Debug("parsed httpx output", "live", len(p.urls), "failed", p.failed)
	return nil
}

// URLs returns live URLs in first-seen order.
func (p *Parser) URLs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.urls))
	copy(out, p.urls)
	return out
}

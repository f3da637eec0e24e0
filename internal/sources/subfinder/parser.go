// Package subfinder drives Project Discovery's subfinder CLI and turns its
// JSONL output into in-scope subdomains.
package subfinder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/platform/logx"
)

// StringOrArray unmarshals either a JSON string or an array of strings.
type StringOrArray []string

func (sa *StringOrArray) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = StringOrArray(arr)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = StringOrArray([]string{str})
	return nil
}

// Response is one JSONL record printed by `subfinder -oJ`.
type Response struct {
	Host      string        `json:"host"`
	Input     string        `json:"input,omitempty"`
	Source    StringOrArray `json:"source"`
	Timestamp string        `json:"timestamp,omitempty"`
}

// Parser collects unique in-scope hosts. It implements common.OutputHandler.
type Parser struct {
	logger logx.Logger
	target domain.Target

	mu    sync.Mutex
	seen  map[string]struct{}
	hosts []string
}

func NewParser(logger logx.Logger, target domain.Target) *Parser {
	return &Parser{
		logger: logger.With("component", "subfinder_parser"),
		target: target,
		seen:   make(map[string]struct{}),
	}
}

// ProcessLine accepts a JSON record or, when subfinder was told to print
// plain text, a bare hostname.
func (p *Parser) ProcessLine(line []byte) error {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}

	resp := &Response{Host: string(line)}
	if line[0] == '{' {
		resp = &Response{}
		if err := json.Unmarshal(line, resp); err != nil {
			return fmt.Errorf("decode subfinder record: %w", err)
		}
	}

	host, ok := p.ParseResponse(resp)
	if !ok {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, dup := p.seen[host]; dup {
		p.logger.Debug("duplicate subdomain", "host", host)
		return nil
	}
	p.seen[host] = struct{}{}
	p.hosts = append(p.hosts, host)
	return nil
}

func (p *Parser) Finalize() error {
	p.logger.Debug("parsed subfinder output", "unique_hosts", len(p.Hosts()))
	return nil
}

// Hosts returns unique hosts in first-seen order.
func (p *Parser) Hosts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.hosts))
	copy(out, p.hosts)
	return out
}

// ParseResponse normalizes resp.Host and reports whether it should be kept.
func (p *Parser) ParseResponse(resp *Response) (string, bool) {
	if err := ValidateResponse(resp); err != nil {
		p.logger.Debug("dropping subfinder record", "reason", err.Error())
		return "", false
	}

	host := strings.TrimSuffix(strings.TrimSpace(strings.ToLower(resp.Host)), ".")

	if strings.HasPrefix(host, "*.") {
		p.logger.Debug("skipping wildcard subdomain", "host", host)
		return "", false
	}

	if !p.target.IsInScope(host) {
		p.logger.Debug("host out of scope", "host", host, "target", p.target.Root)
		return "", false
	}

	return host, true
}

// ValidateResponse checks that a record carries a bare hostname.
func ValidateResponse(resp *Response) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if strings.TrimSpace(resp.Host) == "" {
		return fmt.Errorf("host is empty")
	}
	if strings.Contains(resp.Host, "://") {
		return fmt.Errorf("host contains protocol: %s", resp.Host)
	}
	return nil
}

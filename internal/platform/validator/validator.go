// internal/platform/validator/validator.go
package validator

import (
	"net"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

// IsDomain reports whether s is a syntactically valid host name.
// IP literals are rejected.
func IsDomain(s string) bool {
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	if !domainRegex.MatchString(s) {
		return false
	}
	return net.ParseIP(s) == nil
}

// HasRegistrableDomain reports whether s sits under a public suffix, i.e.
// it has an eTLD+1 ("example.com", "shop.example.co.uk"). Bare suffixes
// ("com", "co.uk") and single-label names ("localhost") do not.
func HasRegistrableDomain(s string) bool {
	if !IsDomain(s) {
		return false
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(s))
	return err == nil && etld1 != ""
}

// RegistrableDomain returns the eTLD+1 of s, or s itself when it has none.
func RegistrableDomain(s string) string {
	etld1, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(s))
	if err != nil {
		return s
	}
	return etld1
}

// IsSubdomain reports whether subdomain is a strict subdomain of baseDomain.
func IsSubdomain(subdomain, baseDomain string) bool {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	baseDomain = strings.ToLower(strings.TrimSpace(baseDomain))

	if subdomain == baseDomain {
		return false
	}

	return strings.HasSuffix(subdomain, "."+baseDomain)
}

// InScope reports whether host is root itself or one of its subdomains.
func InScope(host, root string) bool {
	host = NormalizeDomain(host)
	root = NormalizeDomain(root)
	return host == root || IsSubdomain(host, root)
}

// NormalizeDomain reduces operator input to a bare lower-case host name.
// A scheme, path, port and trailing dot are dropped so "https://Example.com/"
// and "example.com" compare equal.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if i := strings.Index(domain, "://"); i >= 0 {
		domain = domain[i+3:]
	}
	if i := strings.IndexAny(domain, "/?#"); i >= 0 {
		domain = domain[:i]
	}
	if host, _, err := net.SplitHostPort(domain); err == nil {
		domain = host
	}
	return strings.TrimSuffix(domain, ".")
}

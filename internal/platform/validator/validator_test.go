// internal/platform/validator/validator_test.go
package validator

import (
	"testing"

	"sqlihunt/internal/testutil"
)

func TestIsDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid domain", "example.com", true},
		{"valid subdomain", "test.example.com", true},
		{"empty string", "", false},
		{"too long", string(make([]byte, 300)), false},
		{"ip address", "192.168.1.1", false},
		{"invalid chars", "exam ple.com", false},
		{"starts with hyphen", "-example.com", false},
		{"flag-like", "-oJ", false},
		{"shell metachars", "example.com;id", false},
		{"single label", "localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsDomain(tt.input), tt.expected, "domain validation")
		})
	}
}

func TestHasRegistrableDomain(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"example.com", true},
		{"api.example.com", true},
		{"shop.example.co.uk", true},
		{"com", false},
		{"co.uk", false},
		{"localhost", false},
		{"10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, HasRegistrableDomain(tt.input), tt.expected, "registrable")
		})
	}
}

func TestRegistrableDomain(t *testing.T) {
	testutil.AssertEqual(t, RegistrableDomain("a.b.example.co.uk"), "example.co.uk", "eTLD+1")
	testutil.AssertEqual(t, RegistrableDomain("com"), "com", "fallback to input")
}

func TestInScope(t *testing.T) {
	tests := []struct {
		host, root string
		expected   bool
	}{
		{"example.com", "example.com", true},
		{"api.example.com", "example.com", true},
		{"API.Example.com.", "example.com", true},
		{"notexample.com", "example.com", false},
		{"example.com.evil.net", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			testutil.AssertEqual(t, InScope(tt.host, tt.root), tt.expected, "scope")
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		input, expected string
	}{
		{"  Example.COM  ", "example.com"},
		{"example.com.", "example.com"},
		{"https://example.com/path?q=1", "example.com"},
		{"http://example.com:8080", "example.com"},
		{"www.example.com", "www.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, NormalizeDomain(tt.input), tt.expected, "normalized")
		})
	}
}

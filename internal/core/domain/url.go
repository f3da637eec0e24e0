// internal/core/domain/url.go
package domain

import "strings"

// URL records are treated as opaque text lines. Nothing here parses or
// validates URLs: a stray '?' is enough to make a line a candidate.

// HasQuery reports whether line carries a '?' anywhere.
func HasQuery(line string) bool {
	return strings.Contains(line, "?")
}

// FirstParamKey returns the text between the first '?' and the first '='
// after it. Lines with no '=' after the '?' have no key.
//
//	http://x?foo=bar&baz=qux -> "foo", true
//	http://x?nokey           -> "", false
func FirstParamKey(line string) (string, bool) {
	_, query, ok := strings.Cut(line, "?")
	if !ok {
		return "", false
	}
	key, _, ok := strings.Cut(query, "=")
	if !ok {
		return "", false
	}
	return key, true
}

// MentionsParam reports whether the literal "name=" occurs in line. It is a
// plain substring test, so "id" also matches "valid_id=".
func MentionsParam(line, name string) bool {
	return strings.Contains(line, name+"=")
}

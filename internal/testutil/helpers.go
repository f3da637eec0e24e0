// internal/testutil/helpers.go
// Package testutil holds small assertion helpers shared by package tests.
package testutil

import (
	"reflect"
	"strings"
	"testing"
)

// AssertEqual fails the test when got and want are not deeply equal.
func AssertEqual(t *testing.T, got, want interface{}, msg string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s: expected %v, got %v", msg, want, got)
	}
}

// AssertNotEqual fails the test when got and notWant are deeply equal.
func AssertNotEqual(t *testing.T, got, notWant interface{}, msg string) {
	t.Helper()
	if reflect.DeepEqual(got, notWant) {
		t.Errorf("%s: did not expect %v", msg, got)
	}
}

func AssertTrue(t *testing.T, cond bool, msg string) {
	t.Helper()
	if !cond {
		t.Errorf("%s: expected true", msg)
	}
}

func AssertFalse(t *testing.T, cond bool, msg string) {
	t.Helper()
	if cond {
		t.Errorf("%s: expected false", msg)
	}
}

// AssertNoError stops the test on a non-nil error.
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", msg, err)
	}
}

// AssertError fails the test when err is nil.
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", msg)
	}
}

// AssertNotNil fails the test when v is nil (including typed nils).
func AssertNotNil(t *testing.T, v interface{}, msg string) {
	t.Helper()
	if isNil(v) {
		t.Errorf("%s: expected non-nil value", msg)
	}
}

// AssertLen checks the length of a slice, map, string or channel.
func AssertLen(t *testing.T, v interface{}, want int, msg string) {
	t.Helper()
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array, reflect.Chan:
		if rv.Len() != want {
			t.Errorf("%s: expected length %d, got %d", msg, want, rv.Len())
		}
	default:
		t.Errorf("%s: value of kind %s has no length", msg, rv.Kind())
	}
}

// AssertContains checks that s contains substr.
func AssertContains(t *testing.T, s, substr, msg string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s: %q does not contain %q", msg, s, substr)
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

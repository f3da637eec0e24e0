package registry

import (
	"testing"
	"time"

	"sqlihunt/internal/testutil"
)

func TestGetIntConfig(t *testing.T) {
	tests := []struct {
		name  string
		extra map[string]interface{}
		want  int
	}{
		{"nil map", nil, 3},
		{"missing key", map[string]interface{}{}, 3},
		{"yaml int", map[string]interface{}{"depth": 5}, 5},
		{"json float", map[string]interface{}{"depth": 4.0}, 4},
		{"wrong type", map[string]interface{}{"depth": "deep"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, GetIntConfig(tt.extra, "depth", 3), tt.want, "depth")
		})
	}
}

func TestGetStringAndBoolConfig(t *testing.T) {
	extra := map[string]interface{}{"mode": "fast", "empty": "", "all": true}

	testutil.AssertEqual(t, GetStringConfig(extra, "mode", "slow"), "fast", "string")
	testutil.AssertEqual(t, GetStringConfig(extra, "empty", "slow"), "slow", "empty string falls back")
	testutil.AssertTrue(t, GetBoolConfig(extra, "all", false), "bool")
	testutil.AssertFalse(t, GetBoolConfig(extra, "mode", false), "wrong type falls back")
}

func TestGetDurationConfig(t *testing.T) {
	extra := map[string]interface{}{"a": "90s", "b": 2 * time.Second, "c": "soon"}

	testutil.AssertEqual(t, GetDurationConfig(extra, "a", 0), 90*time.Second, "string")
	testutil.AssertEqual(t, GetDurationConfig(extra, "b", 0), 2*time.Second, "duration")
	testutil.AssertEqual(t, GetDurationConfig(extra, "c", time.Minute), time.Minute, "unparsable")
}

func TestGetSliceConfig(t *testing.T) {
	extra := map[string]interface{}{
		"yaml":  []interface{}{"crtsh", "anubis"},
		"typed": []string{"x"},
		"mixed": []interface{}{"a", 1},
	}

	testutil.AssertEqual(t, GetSliceConfig(extra, "yaml", nil), []string{"crtsh", "anubis"}, "yaml sequence")
	testutil.AssertEqual(t, GetSliceConfig(extra, "typed", nil), []string{"x"}, "typed")
	testutil.AssertEqual(t, GetSliceConfig(extra, "mixed", []string{"d"}), []string{"d"}, "mixed falls back")
}

func TestValidators(t *testing.T) {
	testutil.AssertNoError(t, ValidatePositiveInt("batch_size", 200), "positive")
	testutil.AssertError(t, ValidatePositiveInt("batch_size", 0), "zero")
	testutil.AssertNoError(t, ValidateNonNegativeDuration("timeout", 0), "zero duration")
	testutil.AssertError(t, ValidateNonNegativeDuration("timeout", -time.Second), "negative")
}

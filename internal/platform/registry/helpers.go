package registry

import (
	"fmt"
	"time"
)

// Typed accessors for ports.ToolConfig.Extra. YAML decodes numbers as int
// and JSON as float64, so both are accepted. Missing keys and values of the
// wrong type yield the default.

func GetStringConfig(extra map[string]interface{}, key, defaultValue string) string {
	if val, ok := extra[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

func GetIntConfig(extra map[string]interface{}, key string, defaultValue int) int {
	switch v := extra[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultValue
}

func GetBoolConfig(extra map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := extra[key].(bool); ok {
		return val
	}
	return defaultValue
}

// GetDurationConfig accepts a time.Duration or a string such as "90s".
func GetDurationConfig(extra map[string]interface{}, key string, defaultValue time.Duration) time.Duration {
	switch v := extra[key].(type) {
	case time.Duration:
		return v
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// GetSliceConfig accepts []string or a YAML sequence of strings.
func GetSliceConfig(extra map[string]interface{}, key string, defaultValue []string) []string {
	switch v := extra[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return defaultValue
			}
			out = append(out, s)
		}
		return out
	}
	return defaultValue
}

func ValidatePositiveInt(fieldName string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %d", fieldName, value)
	}
	return nil
}

func ValidateNonNegativeDuration(fieldName string, value time.Duration) error {
	if value < 0 {
		return fmt.Errorf("%s cannot be negative, got %s", fieldName, value)
	}
	return nil
}

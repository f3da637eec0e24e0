package httpx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexibleString accepts a JSON string, an array of strings (joined with
// ", ") or null. httpx has emitted all three for the same field across
// releases.
type FlexibleString struct {
	value string
}

func (fs *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		fs.value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		fs.value = s
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		fs.value = strings.Join(arr, ", ")
		return nil
	}

	return fmt.Errorf("FlexibleString: cannot unmarshal %s", string(data))
}

func (fs FlexibleString) MarshalJSON() ([]byte, error) {
	return json.Marshal(fs.value)
}

func (fs FlexibleString) String() string {
	return fs.value
}

// FlexibleBool accepts a JSON bool, a "true"/"false" style string, a number
// or null.
type FlexibleBool struct {
	value bool
}

func (fb *FlexibleBool) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		fb.value = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		fb.value = b
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes":
			fb.value = true
		case "false", "0", "no", "":
			fb.value = false
		default:
			return fmt.Errorf("FlexibleBool: cannot parse string '%s' as bool", s)
		}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		fb.value = n != 0
		return nil
	}

	return fmt.Errorf("FlexibleBool: cannot unmarshal %s", string(data))
}

func (fb FlexibleBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(fb.value)
}

func (fb FlexibleBool) Bool() bool {
	return fb.value
}

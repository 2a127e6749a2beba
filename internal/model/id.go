package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a recipe. Stored payloads carry it either as a JSON number
// (timestamp ids) or as a JSON string; both decode to the same ID.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether id is unset.
func (id ID) IsZero() bool { return id == "" }

// numeric reports whether id is a plain run of decimal digits that fits an int64.
func (id ID) numeric() bool {
	if id == "" || len(id) > 18 || len(id) > 1 && id[0] == '0' {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// MarshalJSON writes numeric ids as JSON numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("recipe id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	// Fractional or exponent form, e.g. 1.7e12.
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("recipe id: %w", err)
	}
	*id = ID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// UnmarshalTOML accepts TOML integers, floats and strings.
func (id *ID) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case nil:
		*id = ""
	case string:
		*id = ID(x)
	case int64:
		*id = ID(strconv.FormatInt(x, 10))
	case float64:
		*id = ID(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return fmt.Errorf("recipe id: unsupported TOML type %T", v)
	}
	return nil
}

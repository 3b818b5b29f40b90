// Package output renders analysis results in the supported formats
// and guarantees byte-identical JSON for identical inputs.
package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// EncodeJSON produces deterministic indented JSON:
//   - object keys sorted alphabetically
//   - floats rounded to at most 6 decimal places
//   - null and empty collection fields omitted
func EncodeJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}

	return json.MarshalIndent(normalize(tree), "", "  ")
}

// normalize walks a decoded JSON tree rounding floats and dropping
// nulls and empty containers. Map keys need no handling: encoding/json
// already emits them sorted.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if n := normalize(val); n != nil {
				out[k] = n
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []interface{}:
		if len(t) == 0 {
			return nil
		}
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return RoundFloat(f)
	default:
		return v
	}
}

// RoundFloat rounds to 6 decimal places
func RoundFloat(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

// FormatFloat renders a float without trailing zeros
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(RoundFloat(f), 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

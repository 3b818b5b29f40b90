package output

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// volatileFields vary between identical runs and are stripped before
// snapshot comparison.
var volatileFields = map[string]bool{
	"reportId":    true,
	"generatedAt": true,
}

// NormalizeSnapshot re-encodes JSON deterministically with volatile
// fields removed, so two runs over the same tree compare equal.
func NormalizeSnapshot(data []byte) ([]byte, error) {
	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return EncodeJSON(stripVolatile(tree))
}

func stripVolatile(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if volatileFields[k] {
				delete(t, k)
				continue
			}
			t[k] = stripVolatile(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = stripVolatile(val)
		}
		return t
	default:
		return v
	}
}

// CompareSnapshots reports whether two JSON documents are equal after
// normalization. On mismatch the message names the first differing
// byte offset.
func CompareSnapshots(a, b []byte) (bool, string) {
	na, err := NormalizeSnapshot(a)
	if err != nil {
		return false, fmt.Sprintf("first document: %v", err)
	}
	nb, err := NormalizeSnapshot(b)
	if err != nil {
		return false, fmt.Sprintf("second document: %v", err)
	}
	if bytes.Equal(na, nb) {
		return true, ""
	}
	n := len(na)
	if len(nb) < n {
		n = len(nb)
	}
	for i := 0; i < n; i++ {
		if na[i] != nb[i] {
			return false, fmt.Sprintf("documents differ at byte %d", i)
		}
	}
	return false, fmt.Sprintf("documents differ in length: %d vs %d", len(na), len(nb))
}

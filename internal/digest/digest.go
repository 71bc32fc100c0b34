// Package digest fingerprints node data and prepares decoded JSON values for
// re-encoding.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/goliatone/go-contentgraph/pkg/interfaces"
)

// SHA256 is the default interfaces.Digester: a hex encoded SHA-256 over the
// canonical JSON encoding of the data.
type SHA256 struct{}

var _ interfaces.Digester = SHA256{}

// Digest implements interfaces.Digester.
func (SHA256) Digest(data map[string]any) string {
	return Sum(data)
}

// Sum hashes the canonical JSON encoding of value. Map keys are sorted by
// encoding/json, so equal maps always hash the same.
func Sum(value any) string {
	payload, err := Canonical(value)
	if err != nil {
		payload = []byte(fmt.Sprintf("%#v", value))
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Canonical encodes value as JSON after Normalize.
func Canonical(value any) ([]byte, error) {
	return json.Marshal(Normalize(value))
}

// Normalize returns a copy of value that encoding/json can always encode:
// NaN and infinite floats become nil, matching how JavaScript serialises them.
// Maps and slices are copied; other values are returned as-is.
func Normalize(value any) any {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}

package graph

import "fmt"

// reservedFields are owned by the host and never copied from source data.
var reservedFields = []string{"id", "children", "parent", "internal"}

// omitKeys returns a shallow copy of m without keys.
func omitKeys[M ~map[K]V, K comparable, V any](m M, keys ...K) M {
	out := make(M, len(m))
	for key, value := range m {
		out[key] = value
	}
	for _, key := range keys {
		delete(out, key)
	}
	return out
}

func stripReserved(data map[string]any) map[string]any {
	return omitKeys(data, reservedFields...)
}

// listValue returns value as a slice, or nil when it is absent or not a list.
func listValue(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}

// keyString renders a decoded JSON value for use inside an id key.
func keyString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

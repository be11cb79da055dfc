package resolver

import (
	"fmt"
	"strconv"
	"strings"
)

// lookupPointer navigates doc with JSON Pointer semantics (RFC 6901) and
// returns the addressed value. An empty pointer addresses the whole document;
// any other pointer must start with "/".
func lookupPointer(doc any, pointer string) (any, error) {
	if pointer == "" {
		return doc, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("pointer %q does not start with '/'", pointer)
	}

	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	current := doc
	for i, part := range parts {
		part = unescapePointerToken(part)

		switch v := current.(type) {
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil, fmt.Errorf("missing key %q at /%s", part, strings.Join(parts[:i+1], "/"))
			}
			current = next

		case []any:
			index, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid array index %q at /%s (must be a non-negative integer)", part, strings.Join(parts[:i+1], "/"))
			}
			if index < 0 || index >= len(v) {
				return nil, fmt.Errorf("array index %d out of bounds (length %d) at /%s", index, len(v), strings.Join(parts[:i+1], "/"))
			}
			current = v[index]

		default:
			return nil, fmt.Errorf("cannot traverse into type %T at /%s", v, strings.Join(parts[:i], "/"))
		}
	}

	return current, nil
}

// unescapePointerToken unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// escapePointerToken escapes a key for use as a JSON Pointer token,
// the inverse of unescapePointerToken.
func escapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

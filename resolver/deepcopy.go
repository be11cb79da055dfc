package resolver

// deepCopyValue recursively copies a JSON-compatible value. Substituted
// content must be copied out of the document cache so that mutation of the
// output tree never corrupts cached documents.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, val := range t {
			cp[k] = deepCopyValue(val)
		}
		return cp
	case []any:
		cp := make([]any, len(t))
		for i, val := range t {
			cp[i] = deepCopyValue(val)
		}
		return cp
	default:
		// Scalars (string, bool, numbers, nil) are immutable.
		return t
	}
}

package loader

// Merge combines option layers into a new map. Later layers win; tables
// present in several layers are combined key by key. The layers are not
// modified and share nothing with the result.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		mergeInto(out, layer)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		sub, isTable := v.(map[string]any)
		if prev, ok := dst[k].(map[string]any); ok && isTable {
			mergeInto(prev, sub)
			continue
		}
		dst[k] = copyValue(v)
	}
}

// Clone returns a deep copy of m.
func Clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return copyValue(m).(map[string]any)
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

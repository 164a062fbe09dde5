package utils

// Loose-map helpers used when coercing untrusted generator output into
// typed WDL values. Missing or wrongly typed entries yield the default.

func FromAny[V any](val any, defaultValue V) V {
	v, ok := val.(V)
	if ok {
		return v
	}
	return defaultValue
}

func FromAnyMap[K comparable, V any](amap map[K]any, key K, defaultValue V) V {
	if val, ok := amap[key]; ok {
		return FromAny(val, defaultValue)
	}
	return defaultValue
}

func F64FromMap(parametersMap map[string]any, k string, defaultValue float64) float64 {
	if v, ok := parametersMap[k]; ok {
		switch v1 := v.(type) {
		case float64:
			return v1
		case int:
			return float64(v1)
		}
	}

	return defaultValue
}

func IntFromMap(parametersMap map[string]any, k string, defaultValue int) int {
	if v, ok := parametersMap[k]; ok {
		switch v1 := v.(type) {
		case int:
			return v1
		case float64:
			return int(v1)
		}
	}

	return defaultValue
}

func BoolFromMap(parametersMap map[string]any, k string, defaultValue bool) bool {
	if v, ok := parametersMap[k]; ok {
		if v1, ok := v.(bool); ok {
			return v1
		}
	}

	return defaultValue
}

func StringFromMap(parametersMap map[string]any, k string, defaultValue string) string {
	if v, ok := parametersMap[k]; ok {
		if v1, ok := v.(string); ok {
			return v1
		}
	}

	return defaultValue
}

func MapFromMap(parametersMap map[string]any, k string) map[string]any {
	if v, ok := parametersMap[k]; ok {
		if v1, ok := v.(map[string]any); ok {
			return v1
		}
	}

	return nil
}

// StringsFromMap : list values decoded from JSON arrive as []any
func StringsFromMap(parametersMap map[string]any, k string) []string {
	v, ok := parametersMap[k]
	if !ok {
		return nil
	}
	switch v1 := v.(type) {
	case []string:
		return v1
	case []any:
		out := make([]string, 0, len(v1))
		for _, e := range v1 {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func SlicesFromMap(parametersMap map[string]any, k string) []any {
	if v, ok := parametersMap[k]; ok {
		if v1, ok := v.([]any); ok {
			return v1
		}
	}
	return nil
}

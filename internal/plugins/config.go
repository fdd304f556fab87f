package plugins

// FloatFromConfig safely extracts a float from a generic config map.
// Handles int, int64 and float64 types that may come from TOML/JSON parsing.
func FloatFromConfig(cfg map[string]any, key string, fallback float64) float64 {
	val, ok := cfg[key]
	if !ok {
		return fallback
	}
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}

// IntFromConfig safely extracts an int from a generic config map.
func IntFromConfig(cfg map[string]any, key string, fallback int) int {
	val, ok := cfg[key]
	if !ok {
		return fallback
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// StringFromConfig extracts a string, returning fallback when missing or empty.
func StringFromConfig(cfg map[string]any, key, fallback string) string {
	if v, ok := cfg[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

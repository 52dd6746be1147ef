package action

// toInt64 coerces a schema-validated numeric payload value (decoded JSON
// numbers arrive as float64) into an int64.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

func toInt(v any) int {
	return int(toInt64(v))
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

// fieldInt64 and fieldString read an optional field straight off the raw
// payload (no schema check), with a safe zero default; used for
// payload fields that are conditionally required (e.g. x/y only for
// build, not for upgrade).
func fieldInt64(payload map[string]any, name string) (int64, bool) {
	v, ok := payload[name]
	if !ok {
		return 0, false
	}
	return toInt64(v), true
}

func fieldString(payload map[string]any, name string) (string, bool) {
	v, ok := payload[name]
	if !ok {
		return "", false
	}
	return toString(v), true
}

package textutil

// ReplaceUnsafe replaces every rune outside [A-Za-z0-9_.\- ] with '_'.
func ReplaceUnsafe(value string) string {
	out := make([]rune, 0, len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == '_' || r == '.' || r == '-' || r == ' ':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// Truncate shortens value to at most limit runes. A non-positive limit
// returns value unchanged.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

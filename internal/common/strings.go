package common

// UnknownStr is printed for enumeration values without a name.
const UnknownStr = "unknown"

// FirstNonEmpty returns the first non-empty value, or "" if all are empty.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

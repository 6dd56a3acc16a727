package util

// TrimString cuts s down to at most length runes
func TrimString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length])
}

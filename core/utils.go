package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanCode trims and upper-cases a code such as a school code.
func CleanCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// StringOr returns s, or fallback when s is blank.
func StringOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

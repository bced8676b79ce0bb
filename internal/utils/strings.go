package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSeatList trims, uppercases and de-duplicates seat addresses while
// preserving request order.
func NormalizeSeatList(seats []string) []string {
	out := make([]string, 0, len(seats))
	seen := map[string]bool{}
	for _, s := range seats {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// SplitSeatList splits comma/semicolon separated seat strings into cleaned
// slices.
func SplitSeatList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	return NormalizeSeatList(parts)
}

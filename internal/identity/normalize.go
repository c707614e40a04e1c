// Package identity reconciles market-listed player names with the stats roster.
package identity

import "strings"

// Normalize canonicalizes a free-text player name for comparison.
// "J. Medek" -> "j medek", "  Medek   Josef " -> "medek josef"
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, ".", "")
	return strings.Join(strings.Fields(name), " ")
}

// tokens splits a normalized name and drops initials.
func tokens(normalized string) []string {
	parts := strings.Fields(normalized)
	out := parts[:0]
	for _, p := range parts {
		if len([]rune(p)) > 1 {
			out = append(out, p)
		}
	}
	return out
}

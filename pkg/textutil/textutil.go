package textutil

import "strings"

// NormalizeName lowercases a name and collapses every run of whitespace into
// a single space, so names scraped from differently indented markup compare
// equal.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

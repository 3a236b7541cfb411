package triage

import "strings"

// Normalize prepares free-text symptom input for signature matching.  It
// trims, lower-cases, and collapses runs of whitespace to single spaces.
// Total over any string, including empty.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

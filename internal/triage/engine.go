package triage

import (
	"sort"

	"medassist/pkg"
)

// Evaluate matches normalized symptom text against every signature in the
// table and aggregates the result.  Matching never exits early: even after
// a high-level hit, the remaining signatures still run so the verdict
// carries the full category evidence.  The aggregate level is the maximum
// across matches, so signature order cannot change it.  Pure and
// deterministic: the same text and table always yield the same verdict.
func Evaluate(t *Table, normalized string) pkg.RiskVerdict {
	v := pkg.RiskVerdict{Level: pkg.RiskNone}
	seen := make(map[string]bool)
	for _, c := range t.sigs {
		snippet, ok := c.match(normalized)
		if !ok {
			continue
		}
		if c.sig.Level > v.Level {
			v.Level = c.sig.Level
		}
		if !seen[c.sig.Category] {
			seen[c.sig.Category] = true
			v.Categories = append(v.Categories, c.sig.Category)
		}
		v.Matches = append(v.Matches, pkg.RiskMatch{Category: c.sig.Category, Snippet: snippet})
	}
	sort.Strings(v.Categories)
	return v
}

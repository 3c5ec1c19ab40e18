// Package matching resolves free-text employer names against a directory of
// known UK universities and their postcodes using sequence similarity.
package matching

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Default thresholds for the two directory lookups.
const (
	UniversityThreshold = 0.70
	PostcodeThreshold   = 0.90
)

// Ratio returns the similarity of a and b in [0, 1], computed from the
// longest matching blocks of their characters. Identical strings score 1.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// BestMatch returns the corpus entry most similar to candidate. Ties go to
// the entry seen first and an exact match ends the scan. It reports false
// when the corpus is empty or the best ratio is below threshold.
func BestMatch(candidate string, corpus []string, threshold float64) (string, bool) {
	best, bestRatio := "", -1.0
	for _, entry := range corpus {
		r := Ratio(candidate, entry)
		if r > bestRatio {
			best, bestRatio = entry, r
		}
		if r == 1 {
			break
		}
	}
	if bestRatio < threshold {
		return "", false
	}
	return best, true
}

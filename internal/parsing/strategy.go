package parsing

import (
	"strings"

	"github.com/jonathan/jobad-parser/internal/types"
)

// textStrategy is one way of locating a block of text on a page. It reports
// false when the structure it looks for is missing.
type textStrategy func(p *page) (string, bool)

// firstText runs strategies in order and returns the first result that is
// not blank.
func firstText(p *page, strategies ...textStrategy) (string, bool) {
	for _, s := range strategies {
		if text, ok := s(p); ok && strings.TrimSpace(text) != "" {
			return text, true
		}
	}
	return "", false
}

// detailPair is a label/value pair read from the page. The label is raw and
// still has to go through NormalizeFieldName.
type detailPair struct {
	label string
	value types.Value
}

// pairStrategy is one markup pattern for attribute tables. A nil result
// means the pattern did not apply.
type pairStrategy func(p *page) []detailPair

// firstPairs returns the pairs of the first strategy that yields any.
func firstPairs(p *page, strategies ...pairStrategy) []detailPair {
	for _, s := range strategies {
		if pairs := s(p); len(pairs) > 0 {
			return pairs
		}
	}
	return nil
}

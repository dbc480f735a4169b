package service

import "strings"

// Similarity scores lexical overlap between two strings in [0,1]. A word of a
// counts as common when it equals, contains, or is contained in any word of b,
// so short words over-match on purpose. The numerator is always taken over a's
// tokens, which makes the score asymmetric: duplicate detection relies on the
// candidate text being the first argument.
func Similarity(a, b string) float64 {
	wordsA := strings.Fields(strings.ToLower(a))
	wordsB := strings.Fields(strings.ToLower(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	common := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if wa == wb || strings.Contains(wa, wb) || strings.Contains(wb, wa) {
				common++
				break
			}
		}
	}

	denom := len(wordsA)
	if len(wordsB) > denom {
		denom = len(wordsB)
	}
	if denom < 1 {
		denom = 1
	}
	return float64(common) / float64(denom)
}

package fuzzy

import "unicode"

// Scorer calculates match scores.
type Scorer interface {
	// Score rates a match. queryRunes and textRunes are case folded unless
	// the matcher is case sensitive, originalRunes keeps the candidate's case
	// for camelCase detection, and matches holds the matched rune indices.
	Score(queryRunes, originalRunes, textRunes []rune, matches []int) int
}

// DefaultScorer is tuned for dotted action names such as
// "sentence.moveToNextStart".
type DefaultScorer struct{}

// Score implements Scorer.
func (DefaultScorer) Score(queryRunes, originalRunes, textRunes []rune, matches []int) int {
	if len(matches) == 0 {
		return 0
	}

	score := 100

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += 20
		}
	}

	for _, idx := range matches {
		if isWordBoundary(originalRunes, idx) {
			score += 15
		}
	}

	if matches[0] == 0 {
		score += 25
	} else {
		score -= matches[0]
	}

	if len(matches) > 1 {
		if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
			score -= gap * 2
		}
	}

	if n := len(textRunes); n < 20 {
		score += 20 - n
	}

	if hasPrefix(textRunes, queryRunes) {
		score += 50
	}

	return max(score, 1)
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isWordBoundary reports whether runes[idx] starts a word: the first rune,
// a rune after a space or punctuation, or an upper-case rune after a
// lower-case one.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

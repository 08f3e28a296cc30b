package fuzzy

import (
	"slices"
	"strings"
)

// Result is one matching candidate.
type Result struct {
	// Text is the candidate as given.
	Text string

	// Index is the candidate's position in the input slice.
	Index int

	// Score is the match score (higher is better).
	Score int

	// Matches holds the rune indices of the matched characters.
	Matches []int
}

// Options configures a Matcher.
type Options struct {
	// MinScore is the score a match must exceed to be returned.
	MinScore int

	// CaseSensitive disables case folding.
	CaseSensitive bool
}

// DefaultOptions returns case-insensitive matching with no score floor.
func DefaultOptions() Options {
	return Options{}
}

// Matcher performs fuzzy matching. It holds no mutable state and is safe
// for concurrent use.
type Matcher struct {
	scorer  Scorer
	options Options
}

// NewMatcher creates a matcher using DefaultScorer.
func NewMatcher(opts Options) *Matcher {
	return &Matcher{scorer: DefaultScorer{}, options: opts}
}

// WithScorer returns a copy of m that scores with s.
func (m *Matcher) WithScorer(s Scorer) *Matcher {
	c := *m
	c.scorer = s
	return &c
}

// Match returns the candidates matching query, best first, ties broken by
// text. A limit of 0 or less returns every match. An empty query matches
// every candidate with score 0, in input order.
func (m *Matcher) Match(query string, candidates []string, limit int) []Result {
	query = strings.TrimSpace(query)
	if !m.options.CaseSensitive {
		query = strings.ToLower(query)
	}

	if query == "" {
		results := make([]Result, len(candidates))
		for i, c := range candidates {
			results[i] = Result{Text: c, Index: i}
		}
		return applyLimit(results, limit)
	}

	queryRunes := []rune(query)
	var results []Result
	for i, c := range candidates {
		score, matches := m.matchOne(queryRunes, c)
		if matches == nil || score <= m.options.MinScore {
			continue
		}
		results = append(results, Result{Text: c, Index: i, Score: score, Matches: matches})
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Text, b.Text)
	})
	return applyLimit(results, limit)
}

// matchOne scans text left to right for the query runes. It returns nil
// matches when some query rune is missing.
func (m *Matcher) matchOne(queryRunes []rune, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}
	original := []rune(text)
	folded := original
	if !m.options.CaseSensitive {
		folded = []rune(strings.ToLower(text))
	}
	// ToLower can change the rune count for a few scripts; fall back to the
	// unfolded text so indices stay aligned.
	if len(folded) != len(original) {
		folded = original
	}

	matches := make([]int, 0, len(queryRunes))
	qi := 0
	for i := 0; i < len(folded) && qi < len(queryRunes); i++ {
		if folded[i] == queryRunes[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(queryRunes) {
		return 0, nil
	}
	return m.scorer.Score(queryRunes, original, folded, matches), matches
}

func applyLimit(results []Result, limit int) []Result {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}

// Suggest returns up to limit candidates resembling query, best first.
// Exact matches are left out since suggesting the query back is useless.
func Suggest(query string, candidates []string, limit int) []string {
	var out []string
	for _, r := range NewMatcher(DefaultOptions()).Match(query, candidates, 0) {
		if strings.EqualFold(r.Text, query) || slices.Contains(out, r.Text) {
			continue
		}
		out = append(out, r.Text)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

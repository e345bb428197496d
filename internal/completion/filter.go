package completion

import (
	"sort"
	"strings"
	"unicode"
)

// Match is a candidate that matched a query.
type Match struct {
	Candidate Candidate

	// Score is the match score (higher is better).
	Score int

	// Positions holds the byte indices of the matched characters in the text.
	Positions []int
}

// Filter scores candidates against the text typed so far.
type Filter struct {
	// PrefixOnly restricts matches to candidates starting with the query.
	PrefixOnly bool
}

// NewFilter creates a fuzzy filter.
func NewFilter() *Filter {
	return &Filter{}
}

// Search returns the candidates matching query, best first. An empty query
// matches everything in name order.
func (f *Filter) Search(candidates []Candidate, query string) []Match {
	results := make([]Match, 0, len(candidates))
	if query == "" {
		for _, c := range candidates {
			results = append(results, Match{Candidate: c})
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Candidate.Text < results[j].Candidate.Text
		})
		return results
	}

	query = strings.ToLower(query)
	for _, c := range candidates {
		score, positions := f.match(query, c.Text)
		if score > 0 {
			results = append(results, Match{Candidate: c, Score: score, Positions: positions})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Candidate.Text < results[j].Candidate.Text
	})
	return results
}

func (f *Filter) match(query, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}

	textLower := strings.ToLower(text)
	if f.PrefixOnly && !strings.HasPrefix(textLower, query) {
		return 0, nil
	}

	positions := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(textLower) && qi < len(query); i++ {
		if textLower[i] == query[qi] {
			positions = append(positions, i)
			qi++
		}
	}

	// All query characters must match
	if qi != len(query) {
		return 0, nil
	}

	return score(query, text, textLower, positions), positions
}

func score(query, text, textLower string, positions []int) int {
	s := 100

	// Consecutive matches
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			s += 20
		}
	}

	for _, idx := range positions {
		if isWordBoundary(text, idx) {
			s += 15
		}
	}

	if positions[0] == 0 {
		s += 25
	} else {
		s -= positions[0]
	}

	// Gaps between matches
	if len(positions) > 1 {
		gap := positions[len(positions)-1] - positions[0] - len(positions) + 1
		if gap > 0 {
			s -= gap * 2
		}
	}

	if len(text) < 20 {
		s += 20 - len(text)
	}

	if strings.HasPrefix(textLower, query) {
		s += 50
	}

	if s < 1 {
		s = 1
	}
	return s
}

func isWordBoundary(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(text) {
		return false
	}

	prev := rune(text[idx-1])
	curr := rune(text[idx])

	switch prev {
	case '/', '_', '-', '.', ' ', ':':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}

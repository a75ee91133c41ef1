package ui

import (
	"sort"
	"strings"
)

// maxSuggestionDistance is the largest edit distance still considered a
// plausible typo.
const maxSuggestionDistance = 3

// maxSuggestions caps how many candidates a diagnostic lists.
const maxSuggestions = 3

// Suggest returns the candidates closest to the target name, nearest
// first. Matching is case-insensitive and candidates further than
// maxSuggestionDistance edits away are dropped.
func Suggest(target string, candidates []string) []string {
	if target == "" || len(candidates) == 0 {
		return nil
	}

	type scored struct {
		name     string
		distance int
	}

	lowered := strings.ToLower(target)
	matches := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		d := levenshtein(lowered, strings.ToLower(candidate))
		if d <= maxSuggestionDistance {
			matches = append(matches, scored{name: candidate, distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

// levenshtein computes the edit distance between two strings using two
// rolling rows.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

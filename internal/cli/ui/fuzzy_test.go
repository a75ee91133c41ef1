package ui

import (
	"reflect"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		s1       string
		s2       string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"str", "strr", 1},
		{"Metric", "Metrc", 1},
		{"datetime", "datetme", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			result := levenshtein(tt.s1, tt.s2)
			if result != tt.expected {
				t.Errorf("levenshtein(%q, %q) = %d; want %d", tt.s1, tt.s2, result, tt.expected)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"str", "int", "float", "bool", "datetime", "uuid", "Metric"}

	tests := []struct {
		name     string
		target   string
		expected []string
	}{
		{
			name:     "one character off",
			target:   "strr",
			expected: []string{"str", "Metric"}, // "metric" is also distance 3 from "strr"
		},
		{
			name:     "case insensitive",
			target:   "metric",
			expected: []string{"Metric"},
		},
		{
			name:     "typo in builtin",
			target:   "datetme",
			expected: []string{"datetime"},
		},
		{
			name:     "nothing close",
			target:   "CompletelyUnrelatedName",
			expected: []string{},
		},
		{
			name:     "nearest first",
			target:   "flot",
			expected: []string{"float", "bool", "int"}, // distance 1, then the distance-3 ties by name
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Suggest(tt.target, candidates)

			if len(result) != len(tt.expected) {
				t.Errorf("Suggest(%q) returned %d results; want %d\nGot: %v\nWant: %v",
					tt.target, len(result), len(tt.expected), result, tt.expected)
				return
			}
			if len(tt.expected) > 0 && !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Suggest(%q) = %v; want %v", tt.target, result, tt.expected)
			}
		})
	}
}

func TestSuggestCapsResults(t *testing.T) {
	candidates := []string{"aaa", "aab", "aba", "baa", "abb"}

	result := Suggest("aax", candidates)
	if len(result) > maxSuggestions {
		t.Errorf("Suggest() returned %d results; want at most %d", len(result), maxSuggestions)
	}
}

func TestSuggestCaseVariantIsBestMatch(t *testing.T) {
	result := Suggest("basestock", []string{"BaseStock", "Stock"})
	if len(result) == 0 || result[0] != "BaseStock" {
		t.Errorf("Suggest() should rank the case variant first, got %v", result)
	}
}

func TestSuggestEmptyInputs(t *testing.T) {
	if got := Suggest("", []string{"str"}); got != nil {
		t.Errorf("Suggest with empty target = %v; want nil", got)
	}
	if got := Suggest("str", nil); got != nil {
		t.Errorf("Suggest with no candidates = %v; want nil", got)
	}
}

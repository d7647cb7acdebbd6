package utils

import (
	"strings"
)

// SuggestionFilter drops case-insensitive duplicates of already seen words.
// It is not safe for concurrent use; create one per request.
type SuggestionFilter struct {
	seen      map[string]struct{}
	inputWord string
}

// NewSuggestionFilter creates a filter. When excludeInput is set the input itself counts
// as seen, so a suggestion equal to what was typed is dropped.
func NewSuggestionFilter(input string, excludeInput bool) *SuggestionFilter {
	f := &SuggestionFilter{
		seen:      make(map[string]struct{}),
		inputWord: strings.ToLower(input),
	}
	if excludeInput {
		f.seen[f.inputWord] = struct{}{}
	}
	return f
}

// ShouldInclude reports whether word is new, and marks it as seen
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	lower := strings.ToLower(word)
	if _, ok := f.seen[lower]; ok {
		return false
	}
	f.seen[lower] = struct{}{}
	return true
}

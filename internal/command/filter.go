package command

import (
	"strings"
	"unicode"
)

// SearchResult is a matched command with its score.
type SearchResult struct {
	Command *Command

	// Score is the match score (higher is better).
	Score int

	// Matches holds the byte indices of matched characters in the field
	// that matched.
	Matches []int
}

// search scores every command against query. Commands that do not match
// are dropped; an empty query matches everything with score 0.
func search(commands []*Command, query string) []SearchResult {
	query = strings.ToLower(query)
	results := make([]SearchResult, 0, len(commands))
	for _, cmd := range commands {
		if query == "" {
			results = append(results, SearchResult{Command: cmd})
			continue
		}
		if score, matches := matchCommand(query, cmd); score > 0 {
			results = append(results, SearchResult{Command: cmd, Score: score, Matches: matches})
		}
	}
	return results
}

// matchCommand tries the title, then the ID, then the description.
func matchCommand(query string, cmd *Command) (int, []int) {
	if score, m := fuzzyMatch(query, cmd.Title); score > 0 {
		return score + 50, m
	}
	if score, m := fuzzyMatch(query, cmd.ID); score > 0 {
		return score + 25, m
	}
	return fuzzyMatch(query, cmd.Description)
}

// fuzzyMatch matches query as a subsequence of text. query must already be
// lower case.
func fuzzyMatch(query, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}

	lower := strings.ToLower(text)
	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(lower) && qi < len(query); i++ {
		if lower[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return 0, nil
	}
	return score(query, text, lower, matches), matches
}

func score(query, text, lower string, matches []int) int {
	s := 100

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += 20
		}
	}
	for _, idx := range matches {
		if isWordBoundary(text, idx) {
			s += 15
		}
	}

	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		s -= gap * 2
	}
	s -= matches[0]

	if strings.HasPrefix(lower, query) {
		s += 50
	}
	return max(s, 1)
}

func isWordBoundary(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, cur := rune(text[idx-1]), rune(text[idx])
	switch prev {
	case '_', '-', '.', ' ', ':', '/':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

package markdown

import (
	"strings"
)

// Note is a linkable document known to the editor.
type Note struct {
	Title string
	Tags  []string
}

const minMatchWordLen = 3

// SuggestLinks proposes notes worth linking from the given content: a
// note qualifies when enough of its title's words (longer than 3
// characters) appear as substrings of content words, or when any of
// its tags does. Lightweight lexical overlap, not semantic search.
func SuggestLinks(content string, availableNotes []Note) []string {
	contentWords := strings.Fields(strings.ToLower(content))

	var suggestions []string
	seen := map[string]struct{}{}

	for _, note := range availableNotes {
		if _, ok := seen[note.Title]; ok {
			continue
		}
		if matchesTitle(contentWords, note.Title) || matchesTags(contentWords, note.Tags) {
			seen[note.Title] = struct{}{}
			suggestions = append(suggestions, note.Title)
		}
	}

	return suggestions
}

func matchesTitle(contentWords []string, title string) bool {
	var titleWords []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if len([]rune(w)) > minMatchWordLen {
			titleWords = append(titleWords, w)
		}
	}
	if len(titleWords) == 0 {
		return false
	}

	needed := min(2, len(titleWords))
	matches := 0
	for _, tw := range titleWords {
		if wordInContent(contentWords, tw) {
			matches++
			if matches >= needed {
				return true
			}
		}
	}
	return false
}

func matchesTags(contentWords []string, tags []string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		if len([]rune(tag)) > minMatchWordLen && wordInContent(contentWords, tag) {
			return true
		}
	}
	return false
}

func wordInContent(contentWords []string, candidate string) bool {
	for _, cw := range contentWords {
		if strings.Contains(cw, candidate) {
			return true
		}
	}
	return false
}

package markdown

import (
	"math"
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var (
	fencedCodeRegex  = regexp.MustCompile("(?s)```.*?```")
	headingMarkRegex = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	linkRegex        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	inlineCodeRegex  = regexp.MustCompile("`([^`]*)`")
	emphasisRegex    = regexp.MustCompile(`\*\*|__|\*|_`)
	wikiAliasRegex   = regexp.MustCompile(`!?\[\[[^\]|]*\|([^\]]+)\]\]`)
	wikiBracketRegex = regexp.MustCompile(`!?\[\[([^\]]+)\]\]`)
	statsTagRegex    = regexp.MustCompile(`(^|\s)#[\p{L}\p{N}_-]+`)
)

// plainText projects the source down to prose: heading markers,
// emphasis markers, link syntax (keeping link text), inline code
// markers, fenced code blocks, wiki-link brackets and tags are all
// stripped.
func plainText(text string) string {
	text = fencedCodeRegex.ReplaceAllString(text, "")
	text = headingMarkRegex.ReplaceAllString(text, "")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = wikiAliasRegex.ReplaceAllString(text, "$1")
	text = wikiBracketRegex.ReplaceAllString(text, "$1")
	text = emphasisRegex.ReplaceAllString(text, "")
	text = statsTagRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

func countWords(plain string) int {
	return len(strings.Fields(plain))
}

func countCharacters(plain string) int {
	return len([]rune(plain))
}

func readingTime(wordCount int) int {
	minutes := int(math.Round(float64(wordCount) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

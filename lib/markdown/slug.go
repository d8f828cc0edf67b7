package markdown

import (
	"regexp"
	"strings"
)

var (
	slugStripRegex      = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugWhitespaceRegex = regexp.MustCompile(`\s+`)
)

// Slugify derives a heading's anchor id: lowercase, strip everything
// that is not a word character, whitespace or hyphen, collapse
// whitespace runs to single hyphens, trim. Shared by structured
// extraction and HTML rendering so in-document anchors resolve.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugStripRegex.ReplaceAllString(slug, "")
	slug = slugWhitespaceRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

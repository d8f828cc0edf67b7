package markdown

import (
	"regexp"
	"strings"
)

var (
	headingRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	blockIdRegex = regexp.MustCompile(`\s*\^([A-Za-z0-9-]+)\s*$`)
)

// extractStructure re-scans the original (not preprocessed) text
// line-by-line for wiki links, block references, inline tags, ATX
// headings and block-id paragraphs. Offsets are relative to the start
// of each line; consumers needing absolute positions add the line's own
// start offset themselves.
func extractStructure(text string) Result {
	var result Result

	for i, line := range strings.Split(text, "\n") {
		lineNumber := i + 1

		blockRefSpans := extractBlockRefs(line, lineNumber, &result)
		extractWikiLinks(line, lineNumber, blockRefSpans, &result)
		extractTags(line, lineNumber, &result)
		extractHeading(line, lineNumber, &result)
		extractBlockId(line, lineNumber, &result)
	}

	return result
}

type span struct{ start, end int }

func (s span) contains(start, end int) bool {
	return start >= s.start && end <= s.end
}

func extractBlockRefs(line string, lineNumber int, out *Result) []span {
	var spans []span
	for _, m := range blockRefRegex.FindAllStringSubmatchIndex(line, -1) {
		out.BlockReferences = append(out.BlockReferences, BlockReference{
			TargetTitle: line[m[2]:m[3]],
			BlockId:     line[m[4]:m[5]],
			LineNumber:  lineNumber,
			StartOffset: m[0],
			EndOffset:   m[1],
		})
		spans = append(spans, span{start: m[0], end: m[1]})
	}
	return spans
}

func extractWikiLinks(line string, lineNumber int, blockRefSpans []span, out *Result) {
	for _, m := range wikiLinkRegex.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[0], m[1]

		// the wiki-link pattern also matches inside block references
		// and embeds, which were already handled
		inBlockRef := false
		for _, s := range blockRefSpans {
			if s.contains(start, end) {
				inBlockRef = true
				break
			}
		}
		if inBlockRef || (start > 0 && line[start-1] == '!') {
			continue
		}

		link := WikiLink{
			TargetTitle: line[m[2]:m[3]],
			LineNumber:  lineNumber,
			StartOffset: start,
			EndOffset:   end,
		}
		if m[4] >= 0 {
			link.AliasText = line[m[4]:m[5]]
		}
		out.WikiLinks = append(out.WikiLinks, link)
	}
}

func extractTags(line string, lineNumber int, out *Result) {
	for _, m := range inlineTagRegex.FindAllStringSubmatchIndex(line, -1) {
		// m[4]:m[5] is the tag name group; the '#' sits right before it
		out.Tags = append(out.Tags, Tag{
			TagName:     line[m[4]:m[5]],
			LineNumber:  lineNumber,
			StartOffset: m[4] - 1,
			EndOffset:   m[5],
		})
	}
}

func extractHeading(line string, lineNumber int, out *Result) {
	groups := headingRegex.FindStringSubmatch(line)
	if groups == nil {
		return
	}
	text := strings.TrimSpace(groups[2])
	// the renderer slugs the heading's visible text, so link syntax
	// must contribute only its label to the anchor id here too
	out.Headings = append(out.Headings, Heading{
		Level:      len(groups[1]),
		Text:       text,
		SlugId:     Slugify(linkRegex.ReplaceAllString(text, "$1")),
		LineNumber: lineNumber,
	})
}

func extractBlockId(line string, lineNumber int, out *Result) {
	groups := blockIdRegex.FindStringSubmatch(line)
	if groups == nil {
		return
	}
	content := strings.TrimSpace(blockIdRegex.ReplaceAllString(line, ""))
	if content == "" {
		return
	}
	out.Blocks = append(out.Blocks, Block{
		BlockId:      groups[1],
		Content:      content,
		InferredType: inferBlockType(content),
		LineNumber:   lineNumber,
	})
}

func inferBlockType(content string) string {
	switch {
	case strings.HasPrefix(content, "#"):
		return "heading"
	case strings.HasPrefix(content, "- ") ||
		strings.HasPrefix(content, "* ") ||
		strings.HasPrefix(content, "+ "):
		return "list"
	case strings.HasPrefix(content, "> "):
		return "quote"
	case strings.HasPrefix(content, "```"):
		return "code"
	default:
		return "paragraph"
	}
}

package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	blockRefRegex   = regexp.MustCompile(`!\[\[([^\[\]#|]+)#\^([A-Za-z0-9-]+)\]\]`)
	attachmentRegex = regexp.MustCompile(`!\[\[([^\[\]|#]+\.(?:png|jpe?g|gif|svg|webp|pdf))\]\]`)
	wikiLinkRegex   = regexp.MustCompile(`\[\[([^\[\]|#]+)(?:\|([^\[\]]+))?\]\]`)
	inlineTagRegex  = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}_-]+)`)
	codeSpanRegex   = regexp.MustCompile("(?s)```.*?```|`[^`\n]*`")
)

// preprocess rewrites the custom syntaxes into raw-HTML islands the
// renderer passes through unchanged. Fenced blocks and inline code keep
// their literal text, so the rewrites only run on the segments between
// code spans.
func preprocess(text string) string {
	spans := codeSpanRegex.FindAllStringIndex(text, -1)
	if spans == nil {
		return rewriteSyntax(text)
	}

	var out strings.Builder
	last := 0
	for _, span := range spans {
		out.WriteString(rewriteSyntax(text[last:span[0]]))
		out.WriteString(text[span[0]:span[1]])
		last = span[1]
	}
	out.WriteString(rewriteSyntax(text[last:]))
	return out.String()
}

// rewriteSyntax applies the rewrites in order. Block references come
// before plain wiki links: the wiki-link character class would
// otherwise also match inside the block-reference form.
func rewriteSyntax(text string) string {
	text = blockRefRegex.ReplaceAllStringFunc(text, func(match string) string {
		groups := blockRefRegex.FindStringSubmatch(match)
		title, blockId := groups[1], groups[2]
		return fmt.Sprintf(
			`<a class="block-reference" data-note=%q data-block=%q>%s#^%s</a>`,
			title, blockId, title, blockId,
		)
	})

	text = attachmentRegex.ReplaceAllString(text, `<img src="/attachments/$1" alt="$1">`)

	text = replaceWikiLinks(text)

	text = inlineTagRegex.ReplaceAllString(
		text,
		`$1<span class="tag" data-tag="$2">#$2</span>`,
	)

	return text
}

// replaceWikiLinks rewrites [[Title]] and [[Title|Alias]] while leaving
// any remaining ![[...]] embeds alone (no lookbehind in go regexp, so
// the preceding byte is checked by hand).
func replaceWikiLinks(text string) string {
	matches := wikiLinkRegex.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var out strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && text[start-1] == '!' {
			continue
		}

		title := text[m[2]:m[3]]
		display := title
		if m[4] >= 0 {
			display = text[m[4]:m[5]]
		}

		out.WriteString(text[last:start])
		out.WriteString(fmt.Sprintf(`<a class="wiki-link" data-note=%q>%s</a>`, title, display))
		last = end
	}
	out.WriteString(text[last:])
	return out.String()
}

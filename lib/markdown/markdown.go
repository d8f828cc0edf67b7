// Package markdown parses the editor's wiki-markdown dialect into HTML
// plus structured link/tag/heading metadata and document statistics.
//
// Parse is a total function: it runs on every autosave cycle in the
// consuming editor and must never panic, degrading to partial output
// instead.
package markdown

type WikiLink struct {
	TargetTitle string
	AliasText   string
	LineNumber  int
	StartOffset int
	EndOffset   int
}

type BlockReference struct {
	TargetTitle string
	BlockId     string
	LineNumber  int
	StartOffset int
	EndOffset   int
}

type Tag struct {
	TagName     string
	LineNumber  int
	StartOffset int
	EndOffset   int
}

type Heading struct {
	Level      int
	Text       string
	SlugId     string
	LineNumber int
}

type Block struct {
	BlockId      string
	Content      string
	InferredType string
	LineNumber   int
}

type Result struct {
	Html            string
	WikiLinks       []WikiLink
	BlockReferences []BlockReference
	Tags            []Tag
	Headings        []Heading
	Blocks          []Block

	WordCount          int
	CharacterCount     int
	ReadingTimeMinutes int
}

// Parse converts raw editor text into rendered HTML plus the
// side-channel of structured metadata. Offsets in the metadata are
// relative to the start of their own line, not the whole document.
// Recomputed fully on every call, no incremental state.
func Parse(text string) Result {
	result := extractStructure(text)
	result.Html = render(preprocess(text))

	plain := plainText(text)
	result.WordCount = countWords(plain)
	result.CharacterCount = countCharacters(plain)
	result.ReadingTimeMinutes = readingTime(result.WordCount)

	return result
}

package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	result := Parse("# Título\n\nVeja [[Outra Nota|aqui]] sobre #direito.")

	expectedHeadings := []Heading{
		{Level: 1, Text: "Título", SlugId: "título", LineNumber: 1},
	}
	if diff := cmp.Diff(expectedHeadings, result.Headings); diff != "" {
		t.Fatal(diff)
	}

	expectedLinks := []WikiLink{
		{
			TargetTitle: "Outra Nota",
			AliasText:   "aqui",
			LineNumber:  3,
			StartOffset: 5,
			EndOffset:   24,
		},
	}
	if diff := cmp.Diff(expectedLinks, result.WikiLinks); diff != "" {
		t.Fatal(diff)
	}

	expectedTags := []Tag{
		{TagName: "direito", LineNumber: 3, StartOffset: 31, EndOffset: 39},
	}
	if diff := cmp.Diff(expectedTags, result.Tags); diff != "" {
		t.Fatal(diff)
	}

	require.Contains(t, result.Html, `id="título"`)
	require.Contains(t, result.Html, `<a class="wiki-link" data-note="Outra Nota">aqui</a>`)
	require.Contains(t, result.Html, `<span class="tag" data-tag="direito">#direito</span>`)
}

// the structured slug and the rendered heading id come from the same
// function, so anchors always resolve
func TestParseHeadingAnchorRoundTrip(t *testing.T) {
	result := Parse("## Guia de Revisão")

	require.Len(t, result.Headings, 1)
	heading := result.Headings[0]
	require.Equal(t, "guia-de-revisão", heading.SlugId)
	require.Contains(t, result.Html, `id="`+heading.SlugId+`"`)
}

func TestParseHeadingWithLinkAnchorRoundTrip(t *testing.T) {
	result := Parse("# [link](https://x) no título")

	require.Len(t, result.Headings, 1)
	heading := result.Headings[0]
	require.Equal(t, "link-no-título", heading.SlugId)
	require.Contains(t, result.Html, `id="`+heading.SlugId+`"`)
}

// code keeps its literal text: a # inside a fence or inline code is a
// comment or a flag, not a tag
func TestParseTagInsideCodeStaysLiteral(t *testing.T) {
	result := Parse("```\n#nao\n```\n\nUse `#cmd` para rodar e veja #real.")
	require.NotContains(t, result.Html, `data-tag="nao"`)
	require.NotContains(t, result.Html, `data-tag="cmd"`)
	require.Contains(t, result.Html, `data-tag="real"`)
}

func TestParseBlockReference(t *testing.T) {
	result := Parse("Como em ![[Nota Base#^abc123]] se explica.")

	expected := []BlockReference{
		{
			TargetTitle: "Nota Base",
			BlockId:     "abc123",
			LineNumber:  1,
			StartOffset: 8,
			EndOffset:   30,
		},
	}
	if diff := cmp.Diff(expected, result.BlockReferences); diff != "" {
		t.Fatal(diff)
	}
	// the embed form never doubles as a plain wiki link
	require.Empty(t, result.WikiLinks)
	require.Contains(t, result.Html,
		`<a class="block-reference" data-note="Nota Base" data-block="abc123">Nota Base#^abc123</a>`)
}

func TestParseAttachmentEmbed(t *testing.T) {
	result := Parse("![[diagrama.png]]")

	require.Contains(t, result.Html, `<img src="/attachments/diagrama.png" alt="diagrama.png">`)
	require.Empty(t, result.WikiLinks)
}

func TestParseBlockIds(t *testing.T) {
	result := Parse("Uma frase importante. ^ref-1\n\n- item da lista ^li1")

	expected := []Block{
		{BlockId: "ref-1", Content: "Uma frase importante.", InferredType: "paragraph", LineNumber: 1},
		{BlockId: "li1", Content: "- item da lista", InferredType: "list", LineNumber: 3},
	}
	if diff := cmp.Diff(expected, result.Blocks); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseStats(t *testing.T) {
	result := Parse("Hello **world**, see [link](url).")

	require.Equal(t, 4, result.WordCount)
	require.Equal(t, len([]rune("Hello world, see link.")), result.CharacterCount)
	require.Equal(t, 1, result.ReadingTimeMinutes)
}

func TestParseReadingTime(t *testing.T) {
	result := Parse(strings.TrimSpace(strings.Repeat("palavra ", 600)))

	require.Equal(t, 600, result.WordCount)
	require.Equal(t, 3, result.ReadingTimeMinutes)
}

func TestParseDegenerateInput(t *testing.T) {
	for _, text := range []string{
		"",
		"[[",
		"![[sem fechamento",
		"#",
		strings.Repeat("[", 1000),
	} {
		result := Parse(text)
		require.Equal(t, 1, result.ReadingTimeMinutes, text)
	}
}

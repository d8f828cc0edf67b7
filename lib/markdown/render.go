package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// headingIDTransformer sets every heading's id attribute to the same
// slug the structured extraction produces, keeping in-document anchor
// links resolvable.
type headingIDTransformer struct{}

func (headingIDTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			title := string(heading.Text(reader.Source()))
			heading.SetAttributeString("id", []byte(Slugify(title)))
		}
		return ast.WalkContinue, nil
	})
}

// raw HTML passes through unescaped: the editor is a trusted-author
// surface, not a public-comment one
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(
			util.Prioritized(headingIDTransformer{}, 100),
		),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// render converts preprocessed text to HTML; any failure degrades to an
// empty string rather than propagating to the editor.
func render(preprocessed string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
		}
	}()

	var buf bytes.Buffer
	err := renderer.Convert([]byte(preprocessed), &buf)
	if err != nil {
		return ""
	}
	return buf.String()
}

package extract

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownTitle returns the text of the first heading in the document, at
// any level. It returns "" when the document has no heading, in which case
// the caller falls back to the plain-text title heuristic.
func markdownTitle(source []byte) string {
	markdownParser := goldmark.New()
	documentRoot := markdownParser.Parser().Parse(text.NewReader(source))

	var headingText string
	walkError := ast.Walk(documentRoot, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, isHeading := node.(*ast.Heading)
		if !isHeading {
			return ast.WalkContinue, nil
		}
		headingText = strings.TrimSpace(nodeText(heading, source))
		if headingText != "" {
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if walkError != nil {
		return ""
	}
	return headingText
}

// nodeText collects the text content of a node's direct children.
func nodeText(node ast.Node, source []byte) string {
	var buffer bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, isText := child.(*ast.Text); isText {
			buffer.Write(textNode.Segment.Value(source))
		}
	}
	return buffer.String()
}

package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
)

// Heading is one extracted heading node. Level, Text, and Position are
// fixed at extraction; Anchor is populated when the heading passes through
// the AnchorMap.
type Heading struct {
	Level    int    // 1-6
	Text     string // plain text with inline markup stripped
	Position int    // byte offset of the heading text in the source
	Anchor   string // unique anchor id, assigned during extraction
}

// ExtractHeadings walks the parsed document in source order, assigns each
// heading a unique anchor through the AnchorMap, and stamps the anchor onto
// the AST node as an id attribute so the renderer emits it on the exact
// node it came from. Headings inside fenced code blocks never appear here:
// the parser already classified their lines as code, not structure.
func ExtractHeadings(doc ast.Node, src []byte, anchors *AnchorMap) []*Heading {
	var headings []*Heading

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		text := nodeText(h, src)
		anchor := anchors.Assign(text, h.Level)
		h.SetAttribute([]byte("id"), []byte(anchor))

		pos := 0
		if lines := h.Lines(); lines.Len() > 0 {
			pos = lines.At(0).Start
		}

		headings = append(headings, &Heading{
			Level:    h.Level,
			Text:     text,
			Position: pos,
			Anchor:   anchor,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// nodeText collects the plain text of a node's inline content,
// dropping formatting markers but keeping their inner text.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeNodeText(&buf, n, src)
	return buf.String()
}

func writeNodeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
		case *ast.String:
			buf.Write(t.Value)
		default:
			writeNodeText(buf, c, src)
		}
	}
}

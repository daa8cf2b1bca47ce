package pipeline

import (
	"html"
	"strconv"
	"strings"
)

// TOCNode is one entry in the table of contents forest. Children hold the
// headings nested under this one; nesting follows heading levels with gap
// tolerance (an H3 directly after an H1 nests under the H1).
type TOCNode struct {
	Heading  *Heading
	Children []*TOCNode
}

// BuildTOC assembles the ordered heading sequence into a forest. A stack of
// open nodes tracks nesting: each incoming heading pops entries with level
// greater than or equal to its own, attaches to the remaining top (or
// becomes a root), and is pushed. No heading is ever dropped; an empty
// input yields an empty forest.
func BuildTOC(headings []*Heading) []*TOCNode {
	var forest []*TOCNode
	var stack []*TOCNode

	for _, h := range headings {
		node := &TOCNode{Heading: h}

		for len(stack) > 0 && stack[len(stack)-1].Heading.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			forest = append(forest, node)
		} else {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, node)
		}
		stack = append(stack, node)
	}

	return forest
}

// FilterHeadings returns the headings with level deeper than maxDepth
// removed. maxDepth <= 0 keeps everything.
func FilterHeadings(headings []*Heading, maxDepth int) []*Heading {
	if maxDepth <= 0 {
		return headings
	}
	kept := make([]*Heading, 0, len(headings))
	for _, h := range headings {
		if h.Level <= maxDepth {
			kept = append(kept, h)
		}
	}
	return kept
}

// RenderTOC renders the forest as a <nav> block of nested lists, each entry
// linking to "#" + anchor. Returns "" for an empty forest so callers can
// skip the block entirely.
func RenderTOC(forest []*TOCNode, title string) string {
	if len(forest) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="toc">`)
	if title != "" {
		b.WriteString(`<h2 class="toc-title">`)
		b.WriteString(html.EscapeString(title))
		b.WriteString(`</h2>`)
	}
	writeTOCList(&b, forest)
	b.WriteString(`</nav>`)
	return b.String()
}

func writeTOCList(b *strings.Builder, nodes []*TOCNode) {
	b.WriteString(`<ul>`)
	for _, n := range nodes {
		b.WriteString(`<li class="toc-h`)
		b.WriteString(strconv.Itoa(n.Heading.Level))
		b.WriteString(`"><a href="#`)
		b.WriteString(html.EscapeString(n.Heading.Anchor))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(n.Heading.Text))
		b.WriteString(`</a>`)
		if len(n.Children) > 0 {
			writeTOCList(b, n.Children)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
}

// Package footerlink resynchronizes the interactive dashboard's footer
// links with the anchors generated for the full report. The dashboard and
// the report are published together; a footer link pointing at a section
// that no longer exists is a correctness regression, so resolution failures
// are surfaced instead of silently skipped.
package footerlink

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/acao/cuyahoga-county-fiscal-flows/internal/pipeline"
)

// Sentinel errors for footer synchronization.
var (
	ErrLinkTargetNotFound   = errors.New("no heading matches configured section")
	ErrFooterBlockNotFound  = errors.New("footer links block not found")
	ErrFooterBlockAmbiguous = errors.New("multiple footer links blocks found")
	ErrPresentationParse    = errors.New("presentation document is not parseable HTML")
)

// footerBlockClass identifies the rewrite target in the dashboard markup.
const footerBlockClass = "footer-links"

// Section is one configured footer entry. Href, when set, is used verbatim
// (external links, downloads). Otherwise the section resolves against the
// report's headings: every Match term must appear, case-insensitively, in a
// heading's text, and the first such heading in document order wins.
type Section struct {
	Name  string   // logical section name, used in error reports
	Label string   // visible link text
	Match []string // substring terms for heading resolution
	Href  string   // literal target (skips resolution)
}

// Rule is a fully resolved rewrite: link label to final href.
type Rule struct {
	Label string
	Href  string
}

// Resolve maps every configured section to a final href using the anchor
// map from the current conversion run. Returns ErrLinkTargetNotFound (with
// the section name) on the first section that matches no heading, so that
// content drift between dashboard and report fails the publish step.
func Resolve(sections []Section, reportPath string, anchors []pipeline.AnchorEntry) ([]Rule, error) {
	rules := make([]Rule, 0, len(sections))
	for _, sec := range sections {
		if sec.Href != "" {
			rules = append(rules, Rule{Label: sec.Label, Href: sec.Href})
			continue
		}

		anchor, ok := findAnchor(sec.Match, anchors)
		if !ok {
			name := sec.Name
			if name == "" {
				name = sec.Label
			}
			return nil, fmt.Errorf("%w: %q", ErrLinkTargetNotFound, name)
		}
		rules = append(rules, Rule{Label: sec.Label, Href: reportPath + "#" + anchor})
	}
	return rules, nil
}

// findAnchor returns the anchor of the first heading whose text contains
// every match term, case-insensitively.
func findAnchor(terms []string, anchors []pipeline.AnchorEntry) (string, bool) {
	if len(terms) == 0 {
		return "", false
	}
	for _, entry := range anchors {
		text := strings.ToLower(entry.Text)
		matched := true
		for _, term := range terms {
			if !strings.Contains(text, strings.ToLower(term)) {
				matched = false
				break
			}
		}
		if matched {
			return entry.Anchor, true
		}
	}
	return "", false
}

// Patterns locating the rewrite region in the raw document. The rewrite is
// textual so that every byte outside the block survives untouched; the
// structural check in countFooterBlocks guarantees the opening tag found
// here is the element it verified.
var (
	footerBlockOpenPattern = regexp.MustCompile(`<div class="` + footerBlockClass + `">`)
	divTagPattern          = regexp.MustCompile(`(?i)<div\b[^>]*>|</div\s*>`)
)

// Sync rewrites the footer links block to the resolved rules and returns
// the updated document. The input must contain exactly one footer links
// element; anything else is an error per the one-element rewrite policy.
// Output depends only on the inputs, so applying Sync twice yields the same
// bytes as applying it once.
func Sync(doc []byte, rules []Rule) ([]byte, error) {
	n, err := countFooterBlocks(doc)
	if err != nil {
		return nil, err
	}
	switch {
	case n == 0:
		return nil, ErrFooterBlockNotFound
	case n > 1:
		return nil, fmt.Errorf("%w: %d", ErrFooterBlockAmbiguous, n)
	}

	start, end, ok := footerBlockExtent(doc)
	if !ok {
		// The element exists structurally but not in the exact textual form
		// the rewrite targets (e.g., reordered attributes).
		return nil, ErrFooterBlockNotFound
	}

	var out bytes.Buffer
	out.Grow(len(doc))
	out.Write(doc[:start])
	writeFooterBlock(&out, rules)
	out.Write(doc[end:])
	return out.Bytes(), nil
}

// footerBlockExtent returns the byte range of the footer links element,
// from its opening tag through its matching close tag. Nested divs inside
// the block are balanced, so the whole element is replaced rather than
// truncating at the first close tag.
func footerBlockExtent(doc []byte) (start, end int, ok bool) {
	open := footerBlockOpenPattern.FindIndex(doc)
	if open == nil {
		return 0, 0, false
	}

	depth := 1
	for _, tag := range divTagPattern.FindAllIndex(doc[open[1]:], -1) {
		if doc[open[1]+tag[0]+1] == '/' {
			depth--
		} else {
			depth++
		}
		if depth == 0 {
			return open[0], open[1] + tag[1], true
		}
	}
	return 0, 0, false
}

// writeFooterBlock emits the canonical footer links markup.
func writeFooterBlock(out *bytes.Buffer, rules []Rule) {
	out.WriteString(`<div class="` + footerBlockClass + `">`)
	for _, r := range rules {
		out.WriteString("\n                <a href=\"")
		out.WriteString(html.EscapeString(r.Href))
		out.WriteString(`">`)
		out.WriteString(html.EscapeString(r.Label))
		out.WriteString(`</a>`)
	}
	out.WriteString("\n            </div>")
}

// countFooterBlocks parses the document and counts elements carrying the
// footer links class.
func countFooterBlocks(doc []byte) (int, error) {
	root, err := xhtml.Parse(bytes.NewReader(doc))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPresentationParse, err)
	}

	count := 0
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && hasClass(n, footerBlockClass) {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return count, nil
}

// hasClass reports whether the element's class attribute contains the
// given class token.
func hasClass(n *xhtml.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, token := range strings.Fields(attr.Val) {
			if token == class {
				return true
			}
		}
	}
	return false
}

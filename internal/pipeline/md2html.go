package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrHTMLConversion indicates the markdown body could not be rendered.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// RenderedDocument is the output of one conversion pass: the body fragment
// with anchored headings, the TOC forest, and the anchor map that produced
// both. Produced once per run, read-only afterward.
type RenderedDocument struct {
	Body     string
	Headings []*Heading
	TOC      []*TOCNode
	Anchors  *AnchorMap
}

// HTMLRenderer abstracts the markdown-to-HTML rendering stage.
type HTMLRenderer interface {
	Render(ctx context.Context, source string) (*RenderedDocument, error)
}

// GoldmarkRenderer renders the report body with goldmark (pure Go).
// A single parse produces the AST used for both heading extraction and
// rendering, so every heading element carries the anchor resolved for that
// exact heading occurrence rather than a re-derived slug.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a renderer with GFM extensions and syntax
// highlighting.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] citations used throughout the report
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // classes styled by the embedded stylesheets
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// Render converts the markdown source into a RenderedDocument. The parse,
// anchor assignment, TOC construction, and body rendering all happen in one
// pass over a single AST. Context cancellation is supported via the
// goroutine + select pattern since goldmark is not context-aware.
func (r *GoldmarkRenderer) Render(ctx context.Context, source string) (*RenderedDocument, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *RenderedDocument
		err error
	}

	done := make(chan result, 1)

	go func() {
		src := []byte(source)
		root := r.md.Parser().Parse(text.NewReader(src))

		anchors := NewAnchorMap()
		headings := ExtractHeadings(root, src, anchors)
		forest := BuildTOC(headings)

		var buf bytes.Buffer
		if err := r.md.Renderer().Render(&buf, src, root); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}

		done <- result{doc: &RenderedDocument{
			Body:     buf.String(),
			Headings: headings,
			TOC:      forest,
			Anchors:  anchors,
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.doc, res.err
	}
}

// Compile-time interface checks.
var (
	_ HTMLRenderer         = (*GoldmarkRenderer)(nil)
	_ MarkdownPreprocessor = (*SourceNormalizer)(nil)
)

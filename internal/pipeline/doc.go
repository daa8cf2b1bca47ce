// Package pipeline implements the report transformation pipeline: heading
// extraction, anchor assignment with collision numbering, table of contents
// construction, and markdown-to-HTML rendering.
//
// The stages run single-threaded over a single parse of the source:
//   - Source normalization (line endings, blank-line compression)
//   - One goldmark parse producing the AST shared by all stages
//   - Heading extraction + anchor assignment (AnchorMap, document order)
//   - TOC forest construction (stack nesting, gap tolerant)
//   - Body rendering with anchors attached by heading node identity
//   - Page shell assembly (screen or print)
//
// PDF generation is handled by the root package using headless Chrome,
// which consumes the final HTML without any markdown-aware processing of
// its own. Anchor state lives in an AnchorMap value scoped to one
// conversion run; nothing here persists across runs.
package pipeline

// Package report converts the Cuyahoga County fiscal flows research report
// from markdown into its published artifacts: a navigable HTML page with a
// generated table of contents and stable in-page anchors, and a paginated
// PDF rendered with headless Chrome.
//
// # Quick Start
//
// Create a service, render, and close when done:
//
//	svc, err := report.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	rendered, err := svc.RenderHTML(ctx, report.Input{
//	    Markdown: source,
//	    Document: report.DocumentMeta{Title: "Fiscal Flows"},
//	})
//
// The result carries the final HTML and the anchor map: every heading's
// unique, URL-safe anchor in document order. Headings with identical text
// receive numeric suffixes (revenue, revenue-2, ...), assigned strictly in
// source order so re-running on identical input is byte-for-byte
// reproducible.
//
// # Pipeline
//
//  1. Source normalization (line endings, blank-line compression)
//  2. One goldmark parse shared by extraction and rendering
//  3. Anchor assignment per heading occurrence, collision-numbered
//  4. TOC forest construction and navigation block rendering
//  5. Page shell assembly (screen chrome or print title page)
//  6. PDF rendering via headless Chrome (go-rod), PDF path only
//
// The companion internal/footerlink package rewrites the interactive
// dashboard's footer links against the same anchor map, failing loudly
// when a configured section no longer matches any heading.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run. Set ROD_BROWSER_BIN to use a pre-installed
// browser (containers, CI).
package report

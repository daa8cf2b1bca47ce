package report

import (
	"context"
	"fmt"
	"html/template"

	"github.com/acao/cuyahoga-county-fiscal-flows/internal/assets"
	"github.com/acao/cuyahoga-county-fiscal-flows/internal/pipeline"
)

// Navigation link defaults matching the published site layout.
const (
	defaultDashboardHref = "index.html"
	defaultPDFHref       = "report.pdf"
)

// Service orchestrates the report transformation pipeline: markdown in,
// HTML and PDF artifacts out. One Service may run many conversions; anchor
// state never leaks between runs because each conversion builds its own
// AnchorMap inside the renderer.
type Service struct {
	cfg          serviceConfig
	preprocessor pipeline.MarkdownPreprocessor
	renderer     pipeline.HTMLRenderer
	pageShell    *pipeline.ShellBuilder
	printShell   *pipeline.ShellBuilder
	pdf          PDFConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) (*Service, error) {
	pageShell, err := pipeline.NewShellBuilder("page", assets.PageTemplate)
	if err != nil {
		return nil, err
	}
	printShell, err := pipeline.NewShellBuilder("print", assets.PrintTemplate)
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:          serviceConfig{timeout: defaultTimeout},
		preprocessor: &pipeline.SourceNormalizer{},
		renderer:     pipeline.NewGoldmarkRenderer(),
		pageShell:    pageShell,
		printShell:   printShell,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF converter if not injected (e.g., by tests).
	// The browser connection itself is lazy, so HTML-only callers never
	// pay for Chrome.
	if s.pdf == nil {
		s.pdf = newRodConverter(s.cfg.timeout)
	}

	return s, nil
}

// RenderHTML runs the pipeline and assembles the screen HTML artifact.
// The output is deterministic: identical input produces byte-identical
// HTML and the same anchor assignments.
func (s *Service) RenderHTML(ctx context.Context, input Input) (*Rendered, error) {
	doc, err := s.render(ctx, input)
	if err != nil {
		return nil, err
	}

	dashboardHref := input.DashboardHref
	if dashboardHref == "" {
		dashboardHref = defaultDashboardHref
	}
	pdfHref := input.PDFHref
	if pdfHref == "" {
		pdfHref = defaultPDFHref
	}

	page, err := s.pageShell.Build(ctx, pipeline.PageData{
		Title:         input.Document.Title,
		Subtitle:      input.Document.Subtitle,
		Date:          input.Document.Date,
		DashboardHref: dashboardHref,
		PDFHref:       pdfHref,
		CSS:           template.CSS(assets.ScreenCSS),
		TOC:           template.HTML(s.tocHTML(doc, input.TOC)),
		Body:          template.HTML(doc.Body),
	})
	if err != nil {
		return nil, fmt.Errorf("assembling page: %w", err)
	}

	return &Rendered{HTML: page, Anchors: toAnchorEntries(doc.Anchors)}, nil
}

// RenderPDF runs the pipeline, assembles the print HTML (title page, TOC,
// body), and renders it to PDF bytes with headless Chrome.
func (s *Service) RenderPDF(ctx context.Context, input Input) ([]byte, error) {
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.render(ctx, input)
	if err != nil {
		return nil, err
	}

	page, err := s.printShell.Build(ctx, pipeline.PrintData{
		Title:        input.Document.Title,
		Subtitle:     input.Document.Subtitle,
		Organization: input.Document.Organization,
		Date:         input.Document.Date,
		CSS:          template.CSS(assets.PrintCSS),
		TOC:          template.HTML(s.tocHTML(doc, input.TOC)),
		Body:         template.HTML(doc.Body),
	})
	if err != nil {
		return nil, fmt.Errorf("assembling print page: %w", err)
	}

	settings := input.Page
	if settings == nil {
		settings = DefaultPageSettings()
	}

	pdfBytes, err := s.pdf.ToPDF(ctx, page, &pdfOptions{
		Page:       settings,
		HeaderText: headerText(input.Document),
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	return pdfBytes, nil
}

// ExtractAnchors runs heading extraction and anchor assignment without
// assembling an artifact. Used by the footer synchronizer, which needs the
// anchor map of the current report source.
func (s *Service) ExtractAnchors(ctx context.Context, markdown string) ([]AnchorEntry, error) {
	doc, err := s.render(ctx, Input{Markdown: markdown})
	if err != nil {
		return nil, err
	}
	return toAnchorEntries(doc.Anchors), nil
}

// Close releases resources (the headless Chrome browser, if one was
// started).
func (s *Service) Close() error {
	if s.pdf != nil {
		return s.pdf.Close()
	}
	return nil
}

// render runs the shared pipeline stages: validation, normalization, and
// the single-pass parse/extract/render.
func (s *Service) render(ctx context.Context, input Input) (*pipeline.RenderedDocument, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	source := s.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.renderer.Render(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return doc, nil
}

// tocHTML renders the navigation block for the configured depth.
func (s *Service) tocHTML(doc *pipeline.RenderedDocument, opts TOCOptions) string {
	forest := pipeline.BuildTOC(pipeline.FilterHeadings(doc.Headings, opts.MaxDepth))
	return pipeline.RenderTOC(forest, opts.Title)
}

// headerText builds the PDF page header line from document metadata.
func headerText(meta DocumentMeta) string {
	if meta.Title == "" {
		return ""
	}
	if meta.Subtitle == "" {
		return meta.Title
	}
	return meta.Title + " - " + meta.Subtitle
}

// toAnchorEntries converts the internal anchor map to the public type.
func toAnchorEntries(m *pipeline.AnchorMap) []AnchorEntry {
	entries := make([]AnchorEntry, 0, m.Len())
	for _, e := range m.Entries() {
		entries = append(entries, AnchorEntry{Text: e.Text, Anchor: e.Anchor, Level: e.Level})
	}
	return entries
}

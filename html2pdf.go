package report

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/acao/cuyahoga-county-fiscal-flows/internal/fileutil"
)

// PDFConverter abstracts HTML to PDF conversion to allow different
// backends (tests inject a fake via WithPDFConverter).
type PDFConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ PDFConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Page       *PageSettings
	HeaderText string // shown top-center on every page when page numbers are on
}

// paperDimensions maps page size names to width and height in inches
// (portrait).
var paperDimensions = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it
// to PDF. Returns explicit errors instead of panicking when browser
// operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF from page settings.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	settings := DefaultPageSettings()
	header := ""
	if opts != nil {
		if opts.Page != nil {
			settings = opts.Page
		}
		header = opts.HeaderText
	}

	width, height := paperSize(settings)
	margin := settings.Margin
	if margin == 0 {
		margin = DefaultMargin
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}

	if settings.PageNumbers {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = buildHeaderTemplate(header)
		pdfOpts.FooterTemplate = footerTemplate
	}

	return pdfOpts
}

// paperSize resolves the paper dimensions, applying orientation.
func paperSize(settings *PageSettings) (width, height float64) {
	dims, ok := paperDimensions[strings.ToLower(settings.Size)]
	if !ok {
		dims = paperDimensions[PageSizeA4]
	}
	width, height = dims[0], dims[1]
	if strings.ToLower(settings.Orientation) == OrientationLandscape {
		width, height = height, width
	}
	return width, height
}

// footerTemplate renders the page counter bottom-center, mirroring the
// print stylesheet's @bottom-center rule.
const footerTemplate = `<div style="font-size:10px;width:100%;text-align:center;color:#666;">` +
	`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// buildHeaderTemplate renders the document title top-center on every page.
func buildHeaderTemplate(text string) string {
	if text == "" {
		return "<span></span>"
	}
	return `<div style="font-size:10px;width:100%;text-align:center;color:#666;">` +
		html.EscapeString(text) + `</div>`
}

// floatPtr returns a pointer to the given float (proto options take
// pointers to distinguish unset fields).
func floatPtr(f float64) *float64 {
	return &f
}

// rodConverter implements PDFConverter by writing the HTML to a temp file
// and rendering it with a rodRenderer.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with the given timeout.
func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF writes htmlContent to a temporary file and renders it. The temp
// file lives only for the duration of the call.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, path, opts)
}

// Close releases the underlying renderer's browser.
func (c *rodConverter) Close() error {
	return c.renderer.Close()
}

package report

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 1.0
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
	PageNumbers bool    // Chrome-native footer with page counter
}

// DefaultPageSettings returns the settings the published PDF uses.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
		PageNumbers: true,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// DocumentMeta carries report metadata rendered into the page header and
// the PDF title page.
type DocumentMeta struct {
	Title        string
	Subtitle     string
	Organization string
	Date         string
}

// TOCOptions configures the generated table of contents.
type TOCOptions struct {
	Title    string // heading above the TOC block
	MaxDepth int    // 1-6; 0 = all levels
}

// Input contains conversion parameters for one run.
type Input struct {
	Markdown      string        // Markdown content (required)
	Document      DocumentMeta  // Page header / title page metadata
	TOC           TOCOptions    // TOC title and depth
	Page          *PageSettings // PDF page settings (nil = defaults)
	DashboardHref string        // Navigation link target (default "index.html")
	PDFHref       string        // Navigation link target (default "report.pdf")
}

// AnchorEntry is one heading's resolved anchor, in document order.
type AnchorEntry struct {
	Text   string
	Anchor string
	Level  int
}

// Rendered holds the HTML artifact and the anchor map that produced it.
type Rendered struct {
	HTML    string
	Anchors []AnchorEntry
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// defaultTimeout bounds one PDF rendering pass.
const defaultTimeout = 2 * time.Minute

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("report: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithPDFConverter injects a PDF conversion backend (used by tests to
// avoid launching a browser).
func WithPDFConverter(c PDFConverter) Option {
	return func(s *Service) {
		s.pdf = c
	}
}

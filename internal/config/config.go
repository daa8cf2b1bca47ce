// Package config loads and validates the report generation configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/acao/cuyahoga-county-fiscal-flows/internal/footerlink"
	"github.com/acao/cuyahoga-county-fiscal-flows/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidSection = errors.New("invalid footer section")
)

// Field length limits.
const (
	MaxTitleLength    = 200  // Report title / subtitle
	MaxDateLength     = 30   // "2024" or "December 31, 2024"
	MaxLabelLength    = 100  // Footer link label
	MaxURLLength      = 2048 // Browser limit
	MaxMatchTermCount = 8    // Terms per footer section
)

// Config holds all configuration for report publishing.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	TOC      TOCConfig      `yaml:"toc"`
	Page     PageConfig     `yaml:"page"`
	Links    LinksConfig    `yaml:"links"`
}

// DocumentConfig carries report metadata rendered into the page header and
// the PDF title page.
type DocumentConfig struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	Organization string `yaml:"organization"`
	Date         string `yaml:"date"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Title    string `yaml:"title"`    // Heading above the TOC block
	MaxDepth int    `yaml:"maxDepth"` // 1-6; 0 = all levels
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
	PageNumbers bool    `yaml:"pageNumbers"`
}

// LinksConfig enumerates the dashboard footer links and where section
// links should point.
type LinksConfig struct {
	ReportPath string          `yaml:"reportPath"` // href base for section anchors
	Footer     []FooterSection `yaml:"footer"`
}

// FooterSection is one footer link. Either href is set (literal target) or
// match lists the terms that resolve the link against the report headings.
type FooterSection struct {
	Name  string   `yaml:"name"`
	Label string   `yaml:"label"`
	Match []string `yaml:"match"`
	Href  string   `yaml:"href"`
}

// Sections converts the configured footer links to synchronizer sections.
func (l LinksConfig) Sections() []footerlink.Section {
	sections := make([]footerlink.Section, len(l.Footer))
	for i, f := range l.Footer {
		sections[i] = footerlink.Section{
			Name:  f.Name,
			Label: f.Label,
			Match: f.Match,
			Href:  f.Href,
		}
	}
	return sections
}

// DefaultConfig returns the configuration the published site is built
// with. A config file overrides it wholesale.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			Title:    "Suburban Exploitation or Urban Drain?",
			Subtitle: "Fiscal Flows in Cuyahoga County - Full Research Report",
			Date:     "2024",
		},
		TOC: TOCConfig{
			Title:    "Table of Contents",
			MaxDepth: 4,
		},
		Page: PageConfig{
			Size:        "a4",
			Orientation: "portrait",
			Margin:      1.0,
			PageNumbers: true,
		},
		Links: LinksConfig{
			ReportPath: "report.html",
			Footer: []FooterSection{
				{Name: "report", Label: "Download Full Report", Href: "report.html"},
				{Name: "methodology", Label: "View Methodology", Match: []string{"methodology"}},
				{Name: "data-sources", Label: "Data Sources", Match: []string{"appendix b"}},
				{Name: "contact", Label: "Contact Researchers", Href: "mailto:contact@research.example.com"},
			},
		},
	}
}

// Validate checks field lengths and footer section shape.
func (c *Config) Validate() error {
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.subtitle", c.Document.Subtitle, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.organization", c.Document.Organization, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.date", c.Document.Date, MaxDateLength); err != nil {
		return err
	}
	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTitleLength); err != nil {
		return err
	}
	if c.TOC.MaxDepth < 0 || c.TOC.MaxDepth > 6 {
		return fmt.Errorf("toc.maxDepth: must be between 0 and 6, got %d", c.TOC.MaxDepth)
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
			// valid
		default:
			return fmt.Errorf("page.size: invalid value %q (must be letter, a4, or legal)", c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
			// valid
		default:
			return fmt.Errorf("page.orientation: invalid value %q (must be portrait or landscape)", c.Page.Orientation)
		}
	}

	if err := validateFieldLength("links.reportPath", c.Links.ReportPath, MaxURLLength); err != nil {
		return err
	}
	for i, f := range c.Links.Footer {
		field := fmt.Sprintf("links.footer[%d]", i)
		if f.Label == "" {
			return fmt.Errorf("%w: %s.label is required", ErrInvalidSection, field)
		}
		if err := validateFieldLength(field+".label", f.Label, MaxLabelLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".href", f.Href, MaxURLLength); err != nil {
			return err
		}
		if f.Href == "" && len(f.Match) == 0 {
			return fmt.Errorf("%w: %s needs either href or match terms", ErrInvalidSection, field)
		}
		if len(f.Match) > MaxMatchTermCount {
			return fmt.Errorf("%w: %s has %d match terms (max %d)", ErrInvalidSection, field, len(f.Match), MaxMatchTermCount)
		}
	}

	return nil
}

// LoadConfig loads configuration from a YAML file path.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

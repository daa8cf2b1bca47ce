// Command report-pdf converts the fiscal flows report markdown into the
// downloadable paginated PDF, rendered with headless Chrome from the same
// anchored HTML the site publishes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	report "github.com/acao/cuyahoga-county-fiscal-flows"
	"github.com/acao/cuyahoga-county-fiscal-flows/internal/config"
	"github.com/acao/cuyahoga-county-fiscal-flows/internal/fileutil"
)

// Exit codes. Follows Unix conventions: 0=success, 1=general, 2=usage,
// and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// File permission constants.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// Sentinel errors for CLI operations.
var (
	ErrReadSource     = errors.New("failed to read source file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

type cliFlags struct {
	input      string
	output     string
	configPath string
	timeout    string
	verbose    bool
}

func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("report-pdf", flag.ContinueOnError)
	f := &cliFlags{}
	fs.StringVarP(&f.input, "input", "i", "cuyahoga-fiscal-report.md", "source markdown file")
	fs.StringVarP(&f.output, "output", "o", "dist/report.pdf", "output PDF file")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML config file (default: built-in site config)")
	fs.StringVar(&f.timeout, "timeout", "2m", "PDF rendering timeout (e.g. 30s, 2m)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return f, nil
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	flags, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	if err := run(context.Background(), flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func run(ctx context.Context, flags *cliFlags) error {
	timeout, err := time.ParseDuration(flags.timeout)
	if err != nil || timeout <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
	}

	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		cfg, err = config.LoadConfig(flags.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	src, err := os.ReadFile(flags.input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadSource, flags.input, err)
	}

	svc, err := report.New(report.WithTimeout(timeout))
	if err != nil {
		return err
	}
	defer svc.Close()

	if flags.verbose {
		fmt.Fprintln(os.Stderr, "rendering PDF...")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pdfBytes, err := svc.RenderPDF(ctx, report.Input{
		Markdown: string(src),
		Document: report.DocumentMeta{
			Title:        cfg.Document.Title,
			Subtitle:     cfg.Document.Subtitle,
			Organization: cfg.Document.Organization,
			Date:         cfg.Document.Date,
		},
		TOC:  report.TOCOptions{Title: cfg.TOC.Title, MaxDepth: cfg.TOC.MaxDepth},
		Page: pageSettings(cfg),
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, flags.output, err)
		}
	}
	if err := fileutil.WriteFileAtomic(flags.output, pdfBytes, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, flags.output, err)
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", flags.output, len(pdfBytes))
	}
	return nil
}

// pageSettings builds PDF page settings from config, falling back to the
// published defaults for unset fields.
func pageSettings(cfg *config.Config) *report.PageSettings {
	settings := report.DefaultPageSettings()
	if cfg.Page.Size != "" {
		settings.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		settings.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		settings.Margin = cfg.Page.Margin
	}
	settings.PageNumbers = cfg.Page.PageNumbers
	return settings
}

// exitCodeFor maps errors to exit codes via errors.Is.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, report.ErrBrowserConnect) ||
		errors.Is(err, report.ErrPageCreate) ||
		errors.Is(err, report.ErrPageLoad) ||
		errors.Is(err, report.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidSection) ||
		errors.Is(err, report.ErrEmptyMarkdown) ||
		errors.Is(err, report.ErrInvalidPageSize) ||
		errors.Is(err, report.ErrInvalidOrientation) ||
		errors.Is(err, report.ErrInvalidMargin) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}

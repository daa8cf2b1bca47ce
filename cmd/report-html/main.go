// Command report-html converts the fiscal flows report markdown into the
// published HTML page with a generated table of contents and stable
// in-page anchors.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	report "github.com/acao/cuyahoga-county-fiscal-flows"
	"github.com/acao/cuyahoga-county-fiscal-flows/internal/config"
	"github.com/acao/cuyahoga-county-fiscal-flows/internal/fileutil"
)

// Exit codes. Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for CLI operations.
var (
	ErrReadSource  = errors.New("failed to read source file")
	ErrWriteOutput = errors.New("failed to write output file")
)

type cliFlags struct {
	input      string
	output     string
	configPath string
	verbose    bool
}

func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("report-html", flag.ContinueOnError)
	f := &cliFlags{}
	fs.StringVarP(&f.input, "input", "i", "cuyahoga-fiscal-report.md", "source markdown file")
	fs.StringVarP(&f.output, "output", "o", "dist/report.html", "output HTML file")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML config file (default: built-in site config)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return f, nil
}

func main() {
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env,
	// in which case Go runtime defaults apply.
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
	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(flags.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	src, err := os.ReadFile(flags.input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadSource, flags.input, err)
	}

	svc, err := report.New()
	if err != nil {
		return err
	}
	defer svc.Close()

	rendered, err := svc.RenderHTML(ctx, report.Input{
		Markdown: string(src),
		Document: report.DocumentMeta{
			Title:        cfg.Document.Title,
			Subtitle:     cfg.Document.Subtitle,
			Organization: cfg.Document.Organization,
			Date:         cfg.Document.Date,
		},
		TOC: report.TOCOptions{Title: cfg.TOC.Title, MaxDepth: cfg.TOC.MaxDepth},
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, flags.output, err)
		}
	}
	if err := fileutil.WriteFileAtomic(flags.output, []byte(rendered.HTML), filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, flags.output, err)
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "wrote %s (%d anchors)\n", flags.output, len(rendered.Anchors))
	}
	return nil
}

// exitCodeFor maps errors to exit codes via errors.Is.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
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
		errors.Is(err, report.ErrEmptyMarkdown) {
		return ExitUsage
	}

	return ExitGeneral
}

// Command footer-sync rewrites the interactive dashboard's footer links so
// they point at the anchors generated for the current report source. It
// fails, leaving the output unwritten, when a configured section no longer
// matches any heading: a stale link is a correctness regression, not
// something to paper over.
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
	"github.com/acao/cuyahoga-county-fiscal-flows/internal/footerlink"
	"github.com/acao/cuyahoga-county-fiscal-flows/internal/pipeline"
)

// Exit codes. ExitDrift signals content drift between the dashboard's
// configured sections and the report's current headings.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
	ExitDrift   = 5
)

// File permission constants.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// Sentinel errors for CLI operations.
var (
	ErrReadSource    = errors.New("failed to read source file")
	ErrReadDashboard = errors.New("failed to read dashboard file")
	ErrWriteOutput   = errors.New("failed to write output file")
)

type cliFlags struct {
	input      string
	output     string
	source     string
	configPath string
	verbose    bool
}

func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("footer-sync", flag.ContinueOnError)
	f := &cliFlags{}
	fs.StringVarP(&f.input, "input", "i", "index.html", "dashboard HTML file")
	fs.StringVarP(&f.output, "output", "o", "dist/index.html", "output HTML file")
	fs.StringVarP(&f.source, "source", "s", "cuyahoga-fiscal-report.md", "report markdown the anchors come from")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML config file (default: built-in site config)")
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
	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(flags.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	src, err := os.ReadFile(flags.source) // #nosec G304 -- source path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadSource, flags.source, err)
	}

	svc, err := report.New()
	if err != nil {
		return err
	}
	defer svc.Close()

	anchors, err := svc.ExtractAnchors(ctx, string(src))
	if err != nil {
		return err
	}

	rules, err := footerlink.Resolve(cfg.Links.Sections(), cfg.Links.ReportPath, toPipelineEntries(anchors))
	if err != nil {
		return err
	}

	dashboard, err := os.ReadFile(flags.input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadDashboard, flags.input, err)
	}

	updated, err := footerlink.Sync(dashboard, rules)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, flags.output, err)
		}
	}
	if err := fileutil.WriteFileAtomic(flags.output, updated, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, flags.output, err)
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "wrote %s (%d footer links)\n", flags.output, len(rules))
	}
	return nil
}

// toPipelineEntries converts public anchor entries back to the internal
// form the synchronizer consumes.
func toPipelineEntries(anchors []report.AnchorEntry) []pipeline.AnchorEntry {
	entries := make([]pipeline.AnchorEntry, len(anchors))
	for i, a := range anchors {
		entries[i] = pipeline.AnchorEntry{Text: a.Text, Anchor: a.Anchor, Level: a.Level}
	}
	return entries
}

// exitCodeFor maps errors to exit codes via errors.Is.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, footerlink.ErrLinkTargetNotFound) {
		return ExitDrift
	}

	if errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrReadDashboard) ||
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

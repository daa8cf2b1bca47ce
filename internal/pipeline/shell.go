package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrShellRender indicates the page shell template failed to render.
var ErrShellRender = errors.New("page shell rendering failed")

// PageData feeds the screen page shell: site chrome around the rendered
// body, with the sidebar TOC and download links.
type PageData struct {
	Title         string
	Subtitle      string
	Date          string
	DashboardHref string
	PDFHref       string
	CSS           template.CSS
	TOC           template.HTML
	Body          template.HTML
}

// PrintData feeds the print page shell: title page, TOC, body.
type PrintData struct {
	Title        string
	Subtitle     string
	Organization string
	Date         string
	CSS          template.CSS
	TOC          template.HTML
	Body         template.HTML
}

// ShellBuilder wraps a parsed page shell template.
type ShellBuilder struct {
	tmpl *template.Template
}

// NewShellBuilder parses the template content. Returns error if the
// template cannot be parsed.
func NewShellBuilder(name, tmplContent string) (*ShellBuilder, error) {
	tmpl, err := template.New(name).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	return &ShellBuilder{tmpl: tmpl}, nil
}

// Build renders the shell with the given data into a complete HTML
// document.
func (b *ShellBuilder) Build(ctx context.Context, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShellRender, err)
	}
	return buf.String(), nil
}

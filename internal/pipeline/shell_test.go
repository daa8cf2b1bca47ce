package pipeline

import (
	"context"
	"html/template"
	"strings"
	"testing"
)

func TestNewShellBuilder(t *testing.T) {
	t.Parallel()

	t.Run("valid template parses", func(t *testing.T) {
		t.Parallel()

		if _, err := NewShellBuilder("page", "<html>{{.Title}}</html>"); err != nil {
			t.Errorf("NewShellBuilder() error = %v", err)
		}
	})

	t.Run("malformed template fails", func(t *testing.T) {
		t.Parallel()

		if _, err := NewShellBuilder("page", "<html>{{.Title</html>"); err == nil {
			t.Error("NewShellBuilder() with malformed template returned nil error")
		}
	})
}

func TestShellBuilderBuild(t *testing.T) {
	t.Parallel()

	t.Run("renders fields into the shell", func(t *testing.T) {
		t.Parallel()

		b, err := NewShellBuilder("page", `<title>{{.Title}}</title><main>{{.Body}}</main>`)
		if err != nil {
			t.Fatalf("NewShellBuilder() error = %v", err)
		}

		got, err := b.Build(context.Background(), PageData{
			Title: "Fiscal Flows",
			Body:  template.HTML("<h1 id=\"revenue\">Revenue</h1>"),
		})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if !strings.Contains(got, "<title>Fiscal Flows</title>") {
			t.Errorf("title not rendered: %s", got)
		}
		// Body is pre-rendered HTML and must pass through unescaped.
		if !strings.Contains(got, `<h1 id="revenue">Revenue</h1>`) {
			t.Errorf("body escaped or missing: %s", got)
		}
	})

	t.Run("plain strings are escaped", func(t *testing.T) {
		t.Parallel()

		b, err := NewShellBuilder("page", `{{.Title}}`)
		if err != nil {
			t.Fatalf("NewShellBuilder() error = %v", err)
		}

		got, err := b.Build(context.Background(), PageData{Title: "A <b>bold</b> claim"})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if strings.Contains(got, "<b>") {
			t.Errorf("title not escaped: %s", got)
		}
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		b, err := NewShellBuilder("page", `{{.Title}}`)
		if err != nil {
			t.Fatalf("NewShellBuilder() error = %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := b.Build(ctx, PageData{}); err == nil {
			t.Error("Build() with cancelled context returned nil error")
		}
	})
}

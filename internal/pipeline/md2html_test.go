package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestGoldmarkRendererRender(t *testing.T) {
	t.Parallel()

	r := NewGoldmarkRenderer()

	t.Run("headings carry id attributes in the body", func(t *testing.T) {
		t.Parallel()

		doc, err := r.Render(context.Background(), "# Revenue Flows\n\nbody\n\n## Tax Detail\n")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		for _, want := range []string{
			`<h1 id="revenue-flows">Revenue Flows</h1>`,
			`<h2 id="tax-detail">Tax Detail</h2>`,
		} {
			if !strings.Contains(doc.Body, want) {
				t.Errorf("body missing %q\ngot: %s", want, doc.Body)
			}
		}
	})

	t.Run("duplicate headings get suffixed ids", func(t *testing.T) {
		t.Parallel()

		doc, err := r.Render(context.Background(), "# Revenue\n\n## Detail\n\n# Revenue\n")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		if !strings.Contains(doc.Body, `<h1 id="revenue">Revenue</h1>`) {
			t.Errorf("first occurrence missing plain id\ngot: %s", doc.Body)
		}
		if !strings.Contains(doc.Body, `<h1 id="revenue-2">Revenue</h1>`) {
			t.Errorf("second occurrence missing suffixed id\ngot: %s", doc.Body)
		}
	})

	t.Run("headings, TOC and anchors come from the same pass", func(t *testing.T) {
		t.Parallel()

		doc, err := r.Render(context.Background(), "# Revenue\n\nfoo\n\n## Detail\n\nbar\n\n# Revenue\n\nbaz\n")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		if len(doc.Headings) != 3 {
			t.Fatalf("len(Headings) = %d, want 3", len(doc.Headings))
		}
		gotAnchors := []string{doc.Headings[0].Anchor, doc.Headings[1].Anchor, doc.Headings[2].Anchor}
		wantAnchors := []string{"revenue", "detail", "revenue-2"}
		for i := range wantAnchors {
			if gotAnchors[i] != wantAnchors[i] {
				t.Errorf("Headings[%d].Anchor = %q, want %q", i, gotAnchors[i], wantAnchors[i])
			}
		}

		if len(doc.TOC) != 2 {
			t.Fatalf("len(TOC) = %d, want 2 roots", len(doc.TOC))
		}
		if len(doc.TOC[0].Children) != 1 {
			t.Errorf("first root has %d children, want 1", len(doc.TOC[0].Children))
		}
		if doc.Anchors.Len() != 3 {
			t.Errorf("Anchors.Len() = %d, want 3", doc.Anchors.Len())
		}
	})

	t.Run("fenced code is highlighted, not treated as headings", func(t *testing.T) {
		t.Parallel()

		source := "# Real\n\n```python\n# not a heading\nx = 1\n```\n"
		doc, err := r.Render(context.Background(), source)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		if len(doc.Headings) != 1 {
			t.Fatalf("len(Headings) = %d, want 1", len(doc.Headings))
		}
		if strings.Contains(doc.Body, `id="not-a-heading"`) {
			t.Errorf("fence content anchored as heading\ngot: %s", doc.Body)
		}
		// WithClasses(true) emits class-based highlighting, no inline styles.
		if !strings.Contains(doc.Body, `class="chroma"`) {
			t.Errorf("fence not highlighted with chroma classes\ngot: %s", doc.Body)
		}
	})

	t.Run("GFM tables render", func(t *testing.T) {
		t.Parallel()

		source := "| City | Net Flow |\n| --- | --- |\n| Parma | -12.4 |\n"
		doc, err := r.Render(context.Background(), source)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(doc.Body, "<table>") {
			t.Errorf("table not rendered\ngot: %s", doc.Body)
		}
	})

	t.Run("footnotes render", func(t *testing.T) {
		t.Parallel()

		doc, err := r.Render(context.Background(), "claim[^1]\n\n[^1]: source\n")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(doc.Body, "footnote") {
			t.Errorf("footnote not rendered\ngot: %s", doc.Body)
		}
	})

	t.Run("repeated renders are byte-identical", func(t *testing.T) {
		t.Parallel()

		source := "# Revenue\n\n## Detail\n\n# Revenue\n"
		first, err := r.Render(context.Background(), source)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		for i := 0; i < 3; i++ {
			again, err := r.Render(context.Background(), source)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if again.Body != first.Body {
				t.Fatalf("render %d differs from first", i+2)
			}
		}
	})

	t.Run("cancelled context returns before work", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := r.Render(ctx, "# Revenue\n"); err == nil {
			t.Error("Render() with cancelled context returned nil error")
		}
	})
}

package pipeline

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "simple word",
			input:    "Revenue",
			expected: "revenue",
		},
		{
			name:     "spaces become hyphens",
			input:    "Revenue Generation Analysis",
			expected: "revenue-generation-analysis",
		},
		{
			name:     "punctuation collapses into single hyphen",
			input:    "Suburban Exploitation or Urban Drain?",
			expected: "suburban-exploitation-or-urban-drain",
		},
		{
			name:     "leading and trailing punctuation trimmed",
			input:    "...Conclusion!",
			expected: "conclusion",
		},
		{
			name:     "numbered section",
			input:    "7. Methodology and Data Sources",
			expected: "7-methodology-and-data-sources",
		},
		{
			name:     "mixed punctuation run",
			input:    "Cleveland's Strategic Response",
			expected: "cleveland-s-strategic-response",
		},
		{
			name:     "only punctuation yields empty",
			input:    "!!!",
			expected: "",
		},
		{
			name:     "unicode letters survive",
			input:    "Économie régionale",
			expected: "économie-régionale",
		},
		{
			name:     "tabs and repeated spaces",
			input:    "Appendix\t\tB:   Works Cited",
			expected: "appendix-b-works-cited",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Slugify(tt.input)
			if got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAnchorMapAssign(t *testing.T) {
	t.Parallel()

	t.Run("unique texts keep plain slugs", func(t *testing.T) {
		t.Parallel()

		m := NewAnchorMap()
		if got := m.Assign("Revenue", 1); got != "revenue" {
			t.Errorf("first anchor = %q, want %q", got, "revenue")
		}
		if got := m.Assign("Detail", 2); got != "detail" {
			t.Errorf("second anchor = %q, want %q", got, "detail")
		}
	})

	t.Run("duplicate text gets numeric suffix", func(t *testing.T) {
		t.Parallel()

		m := NewAnchorMap()
		first := m.Assign("Revenue", 1)
		second := m.Assign("Revenue", 1)
		third := m.Assign("Revenue", 1)

		if first != "revenue" || second != "revenue-2" || third != "revenue-3" {
			t.Errorf("got %q, %q, %q; want revenue, revenue-2, revenue-3", first, second, third)
		}
	})

	t.Run("collision detection is case-insensitive", func(t *testing.T) {
		t.Parallel()

		m := NewAnchorMap()
		_ = m.Assign("Revenue", 1)
		got := m.Assign("REVENUE", 1)
		if got != "revenue-2" {
			t.Errorf("anchor = %q, want %q", got, "revenue-2")
		}
	})

	t.Run("suffix skips taken anchors", func(t *testing.T) {
		t.Parallel()

		// A heading literally named "Revenue 2" occupies revenue-2 before
		// the duplicate arrives.
		m := NewAnchorMap()
		_ = m.Assign("Revenue", 1)
		taken := m.Assign("Revenue 2", 1)
		dup := m.Assign("Revenue", 1)

		if taken != "revenue-2" {
			t.Fatalf("literal anchor = %q, want revenue-2", taken)
		}
		if dup != "revenue-3" {
			t.Errorf("duplicate anchor = %q, want revenue-3", dup)
		}
	})

	t.Run("empty text falls back to section", func(t *testing.T) {
		t.Parallel()

		m := NewAnchorMap()
		first := m.Assign("", 1)
		second := m.Assign("!!!", 2)

		if first != "section" || second != "section-2" {
			t.Errorf("got %q, %q; want section, section-2", first, second)
		}
	})

	t.Run("entries preserve document order", func(t *testing.T) {
		t.Parallel()

		m := NewAnchorMap()
		_ = m.Assign("Revenue", 1)
		_ = m.Assign("Detail", 2)
		_ = m.Assign("Revenue", 1)

		entries := m.Entries()
		want := []AnchorEntry{
			{Text: "Revenue", Anchor: "revenue", Level: 1},
			{Text: "Detail", Anchor: "detail", Level: 2},
			{Text: "Revenue", Anchor: "revenue-2", Level: 1},
		}
		if len(entries) != len(want) {
			t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
		}
		for i := range want {
			if entries[i] != want[i] {
				t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
			}
		}
	})

	t.Run("all anchors unique across a large document", func(t *testing.T) {
		t.Parallel()

		m := NewAnchorMap()
		seen := make(map[string]bool)
		texts := []string{"Revenue", "revenue", "Revenue!", "Revenue?", "", "!!!", "Revenue"}
		for _, text := range texts {
			anchor := m.Assign(text, 2)
			if seen[anchor] {
				t.Errorf("anchor %q assigned twice", anchor)
			}
			seen[anchor] = true
		}
	})
}

package pipeline

import (
	"strconv"
	"strings"
	"unicode"
)

// FallbackSlug is used when heading text normalizes to nothing
// (e.g., an image-only or punctuation-only heading).
const FallbackSlug = "section"

// Slugify normalizes heading text into a URL-safe slug: lower-case,
// runs of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens trimmed. Returns "" for text with no
// alphanumeric content; callers substitute FallbackSlug.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// AnchorEntry records one heading's resolved anchor, in document order.
type AnchorEntry struct {
	Text   string // original heading text
	Anchor string // unique anchor id
	Level  int    // heading level 1-6
}

// AnchorMap assigns unique anchors to headings within a single conversion
// run. Anchors are compared case-insensitively after whitespace
// normalization; colliding slugs receive the first unused numeric suffix
// (-2, -3, ...). Append-only and not safe for concurrent use: headings are
// assigned strictly in source order, which keeps suffix numbering stable
// across runs.
type AnchorMap struct {
	entries []AnchorEntry
	used    map[string]struct{}
}

// NewAnchorMap creates an empty AnchorMap scoped to one conversion run.
func NewAnchorMap() *AnchorMap {
	return &AnchorMap{used: make(map[string]struct{})}
}

// Assign derives a slug for the heading text, disambiguates collisions with
// a numeric suffix, records the entry, and returns the final anchor.
func (m *AnchorMap) Assign(text string, level int) string {
	slug := Slugify(text)
	if slug == "" {
		slug = FallbackSlug
	}

	anchor := slug
	for n := 2; m.taken(anchor); n++ {
		anchor = slug + "-" + strconv.Itoa(n)
	}

	m.used[normalizeAnchor(anchor)] = struct{}{}
	m.entries = append(m.entries, AnchorEntry{Text: text, Anchor: anchor, Level: level})
	return anchor
}

// Entries returns the assigned anchors in document order.
// The returned slice must not be mutated.
func (m *AnchorMap) Entries() []AnchorEntry {
	return m.entries
}

// Len returns the number of assigned anchors.
func (m *AnchorMap) Len() int {
	return len(m.entries)
}

// taken reports whether the anchor is already in use.
func (m *AnchorMap) taken(anchor string) bool {
	_, ok := m.used[normalizeAnchor(anchor)]
	return ok
}

// normalizeAnchor builds the collision-detection key: lower-cased with
// whitespace collapsed. Slugs never contain whitespace, but the map may be
// probed with raw candidate strings.
func normalizeAnchor(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

package pipeline

import (
	"context"
	"regexp"
)

// Precompiled patterns for source normalization.
var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SourceNormalizer normalizes the raw report source before parsing so that
// anchor positions and rendered output are identical regardless of the line
// endings the document was authored with.
type SourceNormalizer struct{}

// PreprocessMarkdown converts CRLF/CR line endings to LF and compresses
// runs of blank lines down to two.
func (p *SourceNormalizer) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return content
}

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// ErrMarkdownConversion indicates Goldmark failed to render a fragment.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownRenderer converts Markdown fragments found in CV data to HTML.
// Raw HTML embedded in the Markdown is not passed through.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a MarkdownRenderer with GFM extensions and syntax highlighting.
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
	)
	return &MarkdownRenderer{md: md}
}

// Block renders src as block-level HTML (paragraphs, lists, tables).
func (r *MarkdownRenderer) Block(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Inline renders src and removes the paragraph wrapper when the result is a
// single paragraph, so the output can sit inside an existing element.
func (r *MarkdownRenderer) Inline(src string) (string, error) {
	out, err := r.Block(src)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") &&
		strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}

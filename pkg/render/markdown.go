package render

import (
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownToHTML converts a markdown body to HTML. Raw HTML embedded in the
// source is skipped; the result still goes through the sanitizer when the
// caller renders it.
func MarkdownToHTML(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	// Parsers keep state between calls and cannot be reused.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML,
	})
	out := markdown.ToHTML([]byte(source), p, renderer)
	return strings.TrimSpace(string(out))
}

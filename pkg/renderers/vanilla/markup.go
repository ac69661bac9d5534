package vanilla

import (
	"html"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/registry"
	"github.com/goliatone/go-pageblocks/pkg/render"
	gotemplate "github.com/goliatone/go-pageblocks/pkg/render/template/gotemplate"
)

const fallbackClass = "fallback"

// buildBlockMarkup wraps a rendered block body in the shared container that
// carries the block identity and the computed settings style.
func buildBlockMarkup(block blocks.ContentBlock, def registry.Definition, style render.Style, body string) string {
	var builder strings.Builder
	builder.Grow(len(body) + 160)

	kind := gotemplate.ClassName(def.Type)
	if kind == "" {
		kind = fallbackClass
	}

	builder.WriteString(`<section class="pb-block pb-block--`)
	builder.WriteString(kind)
	builder.WriteString(`"`)

	if block.ID != "" {
		builder.WriteString(` data-block-id="`)
		builder.WriteString(html.EscapeString(block.ID))
		builder.WriteString(`"`)
	}
	if block.Type != "" {
		builder.WriteString(` data-block-type="`)
		builder.WriteString(html.EscapeString(block.Type))
		builder.WriteString(`"`)
	}
	if !style.IsZero() {
		builder.WriteString(` style="`)
		builder.WriteString(html.EscapeString(style.CSS()))
		builder.WriteString(`"`)
	}
	builder.WriteString(">\n")

	if trimmed := strings.TrimSpace(body); trimmed != "" {
		builder.WriteString(trimmed)
		builder.WriteByte('\n')
	}

	builder.WriteString("</section>\n")
	return builder.String()
}

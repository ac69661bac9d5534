package render

import (
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
)

// Preparer makes decoded payloads safe to emit: rich text goes through the
// sanitizer, URLs outside the allowed schemes are dropped and spacer heights
// are reduced to plain CSS lengths.
type Preparer struct {
	// Sanitizer cleans HTML bodies. Nil leaves them untouched.
	Sanitizer Sanitizer
	// SpacerHeight replaces spacer heights that are unset or invalid.
	SpacerHeight string
}

// Prepare returns a copy of payload ready for output.
func (p Preparer) Prepare(payload blocks.Payload) blocks.Payload {
	switch v := payload.(type) {
	case blocks.Text:
		if v.HTML == "" && v.Markdown != "" {
			v.HTML = MarkdownToHTML(v.Markdown)
		}
		v.HTML = p.sanitize(v.HTML)
		return v
	case blocks.Section:
		v.HTML = p.sanitize(v.HTML)
		v.ImageURL = SafeURL(v.ImageURL)
		return v
	case blocks.Hero:
		v.Button = safeLink(v.Button)
		return v
	case blocks.CTA:
		v.Button = safeLink(v.Button)
		v.Secondary = safeLink(v.Secondary)
		return v
	case blocks.Image:
		v.URL = SafeURL(v.URL)
		return v
	case blocks.Video:
		v.URL = SafeURL(v.URL)
		return v
	case blocks.Spacer:
		v.Height = p.spacerHeight(v.Height)
		return v
	default:
		return payload
	}
}

func (p Preparer) sanitize(markup string) string {
	if p.Sanitizer == nil || markup == "" {
		return markup
	}
	return strings.TrimSpace(p.Sanitizer.Sanitize(markup))
}

func (p Preparer) spacerHeight(height string) string {
	fallback := p.SpacerHeight
	if fallback == "" {
		fallback = blocks.DefaultSpacerHeight
	}
	if height == "" || height == blocks.DefaultSpacerHeight {
		return fallback
	}
	if length := ValidLength(height); length != "" {
		return length
	}
	return fallback
}

func safeLink(link *blocks.Link) *blocks.Link {
	if link == nil {
		return nil
	}
	href := SafeURL(link.Href)
	if href == "" {
		return nil
	}
	return &blocks.Link{Text: link.Text, Href: href}
}

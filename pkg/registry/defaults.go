package registry

import "github.com/goliatone/go-pageblocks/pkg/blocks"

const templatePrefix = "blocks/"

// Template names of the built-in block renderers.
const (
	TemplateHeading  = templatePrefix + "heading"
	TemplateText     = templatePrefix + "text"
	TemplateHero     = templatePrefix + "hero"
	TemplateImage    = templatePrefix + "image"
	TemplateVideo    = templatePrefix + "video"
	TemplateCTA      = templatePrefix + "cta"
	TemplateList     = templatePrefix + "list"
	TemplateQuote    = templatePrefix + "quote"
	TemplateFAQ      = templatePrefix + "faq"
	TemplateDivider  = templatePrefix + "divider"
	TemplateSpacer   = templatePrefix + "spacer"
	TemplateSection  = templatePrefix + "section"
	TemplateFallback = templatePrefix + "fallback"
)

// NewDefault constructs a registry pre-populated with the built-in block
// types.
func NewDefault() *Registry {
	registry := New()
	for _, def := range DefaultDefinitions() {
		registry.MustRegister(def)
	}
	return registry
}

// FallbackDefinition interprets any tag no definition claims: the payload is
// shown verbatim and edited as raw JSON.
func FallbackDefinition() Definition {
	return Definition{
		Label:    "Custom",
		Template: TemplateFallback,
		Decode:   blocks.DecodeUnknown,
		Raw:      true,
		Fields: []FieldSpec{{
			Label:   "Content (JSON)",
			Kind:    FieldJSON,
			Rows:    15,
			Help:    "Edit the JSON directly for this block type",
			Primary: true,
		}},
	}
}

// DefaultDefinitions returns the built-in block type definitions.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Type:     string(blocks.KindHeading),
			Label:    "Heading",
			Template: TemplateHeading,
			Decode:   blocks.DecodeHeading,
			Fields: []FieldSpec{
				input(blocks.KeyText, "Subheading", "Secondary heading", true),
			},
		},
		{
			Type:     string(blocks.KindText),
			Aliases:  []string{blocks.TypeParagraph},
			Label:    "Text",
			Template: TemplateText,
			Decode:   blocks.DecodeText,
			Fields: []FieldSpec{
				textarea(blocks.KeyHTML, "Content (HTML)", "<p>Your content here...</p>", 10, true),
				textarea(blocks.KeyText, "Plain Text", "", 5, false),
				textarea(blocks.KeyMarkdown, "Markdown", "", 8, false),
			},
		},
		{
			Type:     string(blocks.KindHero),
			Label:    "Hero",
			Template: TemplateHero,
			Decode:   blocks.DecodeHero,
			Fields: []FieldSpec{
				input(blocks.KeyHeadline, "Headline", "Enter headline", true),
				textarea(blocks.KeySubtitle, "Subtitle", "Enter subtitle", 3, true),
				textarea(blocks.KeyDescription, "Description", "", 3, false),
				input(blocks.KeyButtonText, "Button Text", "Get Started", true),
				input(blocks.KeyButtonLink, "Button Link", "/contact", true),
				input(blocks.KeyCTAText, "CTA Text", "Get Started", false),
				input(blocks.KeyCTALink, "CTA Link", "/contact", false),
				input(blocks.KeyBackgroundImage, "Background Image URL", "https://example.com/image.jpg", false),
			},
		},
		{
			Type:     string(blocks.KindImage),
			Label:    "Image",
			Template: TemplateImage,
			Decode:   blocks.DecodeImage,
			Fields: []FieldSpec{
				input(blocks.KeyURL, "Image URL", "https://example.com/image.jpg", true),
				input(blocks.KeyAlt, "Alt Text", "Image description", false),
				input(blocks.KeyCaption, "Caption", "Image caption", false),
			},
		},
		{
			Type:     string(blocks.KindVideo),
			Label:    "Video",
			Template: TemplateVideo,
			Decode:   blocks.DecodeVideo,
			Fields: []FieldSpec{
				input(blocks.KeyURL, "Video URL", "https://youtube.com/watch?v=...", true),
				{
					Key: blocks.KeyProvider, Label: "Provider", Kind: FieldSelect, Default: "youtube",
					Options: []Choice{{Value: "youtube", Label: "YouTube"}, {Value: "vimeo", Label: "Vimeo"}},
				},
			},
		},
		{
			Type:     string(blocks.KindCTA),
			Aliases:  []string{blocks.TypeCallToAction},
			Label:    "Call to Action",
			Template: TemplateCTA,
			Decode:   blocks.DecodeCTA,
			Fields: []FieldSpec{
				input(blocks.KeyHeadline, "Headline", "Ready to get started?", true),
				input(blocks.KeySubtitle, "Subtitle", "Join us today", false),
				textarea(blocks.KeyDescription, "Description", "", 3, false),
				input(blocks.KeyPrimaryButtonText, "Primary Button Text", "", false),
				input(blocks.KeyPrimaryButtonLink, "Primary Button Link", "", false),
				input(blocks.KeyButtonText, "Button Text", "", false),
				input(blocks.KeyButtonLink, "Button Link", "", false),
				input(blocks.KeySecondaryButtonText, "Secondary Button Text", "", false),
				input(blocks.KeySecondaryButtonLink, "Secondary Button Link", "", false),
			},
		},
		{
			Type:     string(blocks.KindList),
			Label:    "List",
			Template: TemplateList,
			Decode:   blocks.DecodeList,
			Fields: []FieldSpec{
				{Key: blocks.KeyItems, Label: "Items", Kind: FieldLines, Rows: 8, Help: "One item per line", Primary: true},
			},
		},
		{
			Type:     string(blocks.KindQuote),
			Label:    "Quote",
			Template: TemplateQuote,
			Decode:   blocks.DecodeQuote,
			Fields: []FieldSpec{
				textarea(blocks.KeyText, "Quote", "What did they say?", 3, true),
				input(blocks.KeyAuthor, "Author", "Name", true),
				textarea(blocks.KeyQuote, "Quote (legacy)", "", 3, false),
			},
		},
		{
			Type:     string(blocks.KindFAQ),
			Label:    "FAQ",
			Template: TemplateFAQ,
			Decode:   blocks.DecodeFAQ,
			Fields: []FieldSpec{
				{
					Key: blocks.KeyItems, Label: "Questions", Kind: FieldJSON, Rows: 12, Primary: true,
					Placeholder: `[{"question": "...", "answer": "..."}]`,
					Help:        "A JSON list of {question, answer} objects",
				},
				input(blocks.KeyQuestion, "Question", "What is your question?", false),
				textarea(blocks.KeyAnswer, "Answer", "Your answer here...", 5, false),
			},
		},
		{
			Type:     string(blocks.KindDivider),
			Label:    "Divider",
			Template: TemplateDivider,
			Decode:   blocks.DecodeDivider,
		},
		{
			Type:     string(blocks.KindSpacer),
			Label:    "Spacer",
			Template: TemplateSpacer,
			Decode:   blocks.DecodeSpacer,
			Fields: []FieldSpec{
				input(blocks.KeyHeight, "Height", blocks.DefaultSpacerHeight, true),
			},
		},
		{
			Type:     string(blocks.KindSection),
			Label:    "Content Section",
			Template: TemplateSection,
			Decode:   blocks.DecodeSection,
			Fields: []FieldSpec{
				input(blocks.KeyTitle, "Title", "Section Title", false),
				textarea(blocks.KeyHTML, "Content (HTML)", "<p>Your content here...</p>", 10, true),
				input(blocks.KeyImageURL, "Image URL", "https://example.com/image.jpg", false),
				{
					Key: blocks.KeyImagePosition, Label: "Image Position", Kind: FieldSelect, Default: blocks.AlignLeft,
					Options: []Choice{{Value: blocks.AlignLeft, Label: "Left"}, {Value: blocks.AlignRight, Label: "Right"}},
				},
			},
		},
	}
}

package blocks

// Kind is a canonical block type tag. Block.Type stays an open string; Kind
// names the variants this module interprets.
type Kind string

const (
	KindHeading Kind = "heading"
	KindText    Kind = "text"
	KindHero    Kind = "hero"
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindCTA     Kind = "cta"
	KindList    Kind = "list"
	KindQuote   Kind = "quote"
	KindFAQ     Kind = "faq"
	KindDivider Kind = "divider"
	KindSpacer  Kind = "spacer"
	KindSection Kind = "content"
	KindUnknown Kind = ""
)

// Type tags accepted as synonyms of a canonical kind.
const (
	TypeParagraph    = "paragraph"
	TypeCallToAction = "call-to-action"
)

// Content keys read by the built-in block kinds.
const (
	KeyText                = "text"
	KeyHTML                = "html"
	KeyMarkdown            = "markdown"
	KeyTitle               = "title"
	KeyHeadline            = "headline"
	KeySubtitle            = "subtitle"
	KeyDescription         = "description"
	KeyButtonText          = "buttonText"
	KeyButtonLink          = "buttonLink"
	KeyCTAText             = "ctaText"
	KeyCTALink             = "ctaLink"
	KeyPrimaryButtonText   = "primaryButtonText"
	KeyPrimaryButtonLink   = "primaryButtonLink"
	KeySecondaryButtonText = "secondaryButtonText"
	KeySecondaryButtonLink = "secondaryButtonLink"
	KeyBackgroundImage     = "backgroundImage"
	KeyURL                 = "url"
	KeyAlt                 = "alt"
	KeyCaption             = "caption"
	KeyProvider            = "provider"
	KeyItems               = "items"
	KeyQuote               = "quote"
	KeyAuthor              = "author"
	KeyQuestion            = "question"
	KeyAnswer              = "answer"
	KeyHeight              = "height"
	KeyImageURL            = "imageUrl"
	KeyImagePosition       = "imagePosition"
)

// DefaultSpacerHeight is used when a spacer block omits its height.
const DefaultSpacerHeight = "2rem"

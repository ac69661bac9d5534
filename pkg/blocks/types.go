package blocks

import "github.com/mohae/deepcopy"

// Settings keys applied uniformly at render time regardless of block type.
const (
	SettingBackgroundColor = "backgroundColor"
	SettingTextColor       = "textColor"
	SettingPadding         = "padding"
	SettingAlignment       = "alignment"
)

// Padding scale accepted by the padding setting.
const (
	PaddingNone   = "none"
	PaddingSmall  = "small"
	PaddingMedium = "medium"
	PaddingLarge  = "large"
)

// Alignment values accepted by the alignment setting.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// ContentBlock is the unit of page composition.
type ContentBlock struct {
	ID       string         `json:"id" yaml:"id"`
	Type     string         `json:"type" yaml:"type"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Content  map[string]any `json:"content" yaml:"content"`
	Settings Settings       `json:"settings,omitempty" yaml:"settings,omitempty"`
	Order    *int           `json:"order,omitempty" yaml:"order,omitempty"`
}

// Position reports the effective sort position; an unset order counts as 0.
func (b ContentBlock) Position() int {
	if b.Order == nil {
		return 0
	}
	return *b.Order
}

// WithOrder returns a copy of the block positioned at order.
func (b ContentBlock) WithOrder(order int) ContentBlock {
	b.Order = &order
	return b
}

// Clone returns a deep copy so callers can mutate the payload maps without
// affecting the source block.
func (b ContentBlock) Clone() ContentBlock {
	cloned, ok := deepcopy.Copy(b).(ContentBlock)
	if !ok {
		return b
	}
	return cloned
}

// Settings holds per-block style overrides. Unknown keys are preserved so
// callers can round-trip settings they do not understand.
type Settings map[string]any

// String returns the setting as a string, or "" when absent or not a string.
func (s Settings) String(key string) string {
	if s == nil {
		return ""
	}
	value, _ := s[key].(string)
	return value
}

// PageData is the page record supplied by the page-storage collaborator.
type PageData struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Path            string    `json:"path" yaml:"path"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	Excerpt         string    `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	FeaturedImage   string    `json:"featured_image,omitempty" yaml:"featured_image,omitempty"`
	Status          string    `json:"status,omitempty" yaml:"status,omitempty"`
	Vertical        string    `json:"vertical,omitempty" yaml:"vertical,omitempty"`
	PageType        string    `json:"page_type,omitempty" yaml:"page_type,omitempty"`
	Author          string    `json:"author,omitempty" yaml:"author,omitempty"`
	MetaTitle       string    `json:"meta_title,omitempty" yaml:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty" yaml:"meta_description,omitempty"`
	CreatedAt       Timestamp `json:"created_at" yaml:"created_at,omitempty"`
	PublishedAt     Timestamp `json:"published_at" yaml:"published_at,omitempty"`
	ContentBlocks   RawBlocks `json:"content_blocks" yaml:"content_blocks"`
}

// Blocks returns the page's normalized, ordered block sequence.
func (p PageData) Blocks(opts ...Option) []ContentBlock {
	return Normalize(p.ContentBlocks, opts...)
}

// Summary returns the description, falling back to the excerpt.
func (p PageData) Summary() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Excerpt
}

// WithBlocks returns a copy of the page whose content_blocks holds the
// structured sequence.
func (p PageData) WithBlocks(list []ContentBlock) PageData {
	p.ContentBlocks = StructuredBlocks(list)
	return p
}

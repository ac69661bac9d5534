package render

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
)

// PaddingScale maps the symbolic padding setting onto CSS lengths.
type PaddingScale map[string]string

// DefaultPaddingScale returns the built-in none/small/medium/large scale.
func DefaultPaddingScale() PaddingScale {
	return PaddingScale{
		blocks.PaddingNone:   "0",
		blocks.PaddingSmall:  "1rem",
		blocks.PaddingMedium: "2rem",
		blocks.PaddingLarge:  "4rem",
	}
}

// Style is the validated presentation derived from a block's settings. Empty
// fields mean "not set" and produce no declaration.
type Style struct {
	BackgroundColor string
	TextColor       string
	Padding         string
	Alignment       string
}

var (
	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorPattern = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([0-9.,%\s/]+\)$`)
	namedColor       = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
	lengthPattern    = regexp.MustCompile(`^(?:0|\d+(?:\.\d+)?(?:px|rem|em|vh|vw|%))$`)
)

// ComputeStyle validates the known settings keys. Values that fail validation
// are dropped rather than passed through, so a setting can never inject
// arbitrary CSS. Unrecognised keys are ignored.
func ComputeStyle(settings blocks.Settings, scale PaddingScale) Style {
	if len(settings) == 0 {
		return Style{}
	}
	if scale == nil {
		scale = DefaultPaddingScale()
	}

	style := Style{
		BackgroundColor: ValidColor(settings.String(blocks.SettingBackgroundColor)),
		TextColor:       ValidColor(settings.String(blocks.SettingTextColor)),
	}

	padding := strings.ToLower(strings.TrimSpace(settings.String(blocks.SettingPadding)))
	if value, ok := scale[padding]; ok {
		style.Padding = value
	} else {
		style.Padding = ValidLength(padding)
	}

	switch align := strings.ToLower(strings.TrimSpace(settings.String(blocks.SettingAlignment))); align {
	case blocks.AlignLeft, blocks.AlignCenter, blocks.AlignRight:
		style.Alignment = align
	}
	return style
}

// IsZero reports whether no declaration would be produced.
func (s Style) IsZero() bool {
	return s == Style{}
}

// CSS renders the style as an inline declaration list.
func (s Style) CSS() string {
	var decls []string
	if s.BackgroundColor != "" {
		decls = append(decls, "background-color: "+s.BackgroundColor)
	}
	if s.TextColor != "" {
		decls = append(decls, "color: "+s.TextColor)
	}
	if s.Padding != "" {
		decls = append(decls, "padding: "+s.Padding)
	}
	if s.Alignment != "" {
		decls = append(decls, "text-align: "+s.Alignment)
	}
	return strings.Join(decls, "; ")
}

// ValidColor returns value when it is a hex, rgb/hsl function or named colour,
// and "" otherwise.
func ValidColor(value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return ""
	case hexColorPattern.MatchString(value),
		funcColorPattern.MatchString(value),
		namedColor.MatchString(value):
		return value
	default:
		return ""
	}
}

// ValidLength returns value when it is a plain CSS length, and "" otherwise.
func ValidLength(value string) string {
	value = strings.TrimSpace(value)
	if lengthPattern.MatchString(value) {
		return value
	}
	return ""
}

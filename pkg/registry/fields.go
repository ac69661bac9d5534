package registry

import "github.com/goliatone/go-pageblocks/pkg/blocks"

// FieldKind selects the editing control for a field.
type FieldKind string

const (
	FieldInput    FieldKind = "input"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	// FieldLines edits a list of strings, one entry per line.
	FieldLines FieldKind = "lines"
	// FieldJSON edits a structured value as JSON text.
	FieldJSON FieldKind = "json"
)

// Choice is one option of a select field.
type Choice struct {
	Value string
	Label string
}

// FieldSpec describes one editable key of a block's content or settings.
type FieldSpec struct {
	Key         string
	Label       string
	Kind        FieldKind
	Placeholder string
	Help        string
	Rows        int
	Options     []Choice
	// Default is shown when the key holds no value.
	Default string
	// Primary fields are always offered. Other fields are only offered when
	// the key is already present in the block's content.
	Primary bool
}

// SettingsFields are the style fields shared by every block type.
func SettingsFields() []FieldSpec {
	return []FieldSpec{
		{Key: blocks.SettingBackgroundColor, Label: "Background Color", Kind: FieldInput, Placeholder: "#ffffff or transparent", Primary: true},
		{Key: blocks.SettingTextColor, Label: "Text Color", Kind: FieldInput, Placeholder: "#000000", Primary: true},
		{
			Key: blocks.SettingPadding, Label: "Padding", Kind: FieldSelect, Default: blocks.PaddingMedium, Primary: true,
			Options: []Choice{
				{Value: blocks.PaddingNone, Label: "None"},
				{Value: blocks.PaddingSmall, Label: "Small"},
				{Value: blocks.PaddingMedium, Label: "Medium"},
				{Value: blocks.PaddingLarge, Label: "Large"},
			},
		},
		{
			Key: blocks.SettingAlignment, Label: "Alignment", Kind: FieldSelect, Default: blocks.AlignLeft, Primary: true,
			Options: []Choice{
				{Value: blocks.AlignLeft, Label: "Left"},
				{Value: blocks.AlignCenter, Label: "Center"},
				{Value: blocks.AlignRight, Label: "Right"},
			},
		},
	}
}

func input(key, label, placeholder string, primary bool) FieldSpec {
	return FieldSpec{Key: key, Label: label, Kind: FieldInput, Placeholder: placeholder, Primary: primary}
}

func textarea(key, label, placeholder string, rows int, primary bool) FieldSpec {
	return FieldSpec{Key: key, Label: label, Kind: FieldTextarea, Placeholder: placeholder, Rows: rows, Primary: primary}
}

package editor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/registry"
)

// Field is a field spec bound to the current draft value.
type Field struct {
	registry.FieldSpec
	// Value is the current value, nil when the key is absent.
	Value any
	// Present reports whether the key exists in the draft.
	Present bool
}

// IsRaw reports whether the field edits the whole content payload.
func (f Field) IsRaw() bool {
	return f.Key == ""
}

// Text renders the current value in the textual form Parse accepts. Absent
// values render as the spec default.
func (f Field) Text() string {
	if !f.Present || f.Value == nil {
		if f.IsRaw() {
			return "{}"
		}
		return f.Default
	}

	switch f.Kind {
	case registry.FieldLines:
		return linesText(f.Value)
	case registry.FieldJSON:
		if content, ok := f.Value.(map[string]any); ok {
			return blocks.PrettyJSON(content)
		}
		payload, err := json.MarshalIndent(f.Value, "", "  ")
		if err != nil {
			return fmt.Sprint(f.Value)
		}
		return string(payload)
	default:
		return scalarText(f.Value)
	}
}

// Parse converts textual input into the value stored in the payload. Lines
// fields become a list of the non-blank trimmed lines; JSON fields must hold
// valid JSON (an object for the raw field); everything else is kept as text.
func (f Field) Parse(text string) (any, error) {
	switch f.Kind {
	case registry.FieldLines:
		items := []any{}
		for _, line := range strings.Split(text, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		return items, nil
	case registry.FieldJSON:
		var value any
		if err := json.Unmarshal([]byte(text), &value); err != nil {
			return nil, fmt.Errorf("editor: field %q: invalid JSON: %w", f.Label, err)
		}
		if f.IsRaw() {
			if _, ok := value.(map[string]any); !ok {
				return nil, fmt.Errorf("editor: field %q: expected a JSON object", f.Label)
			}
		}
		return value, nil
	case registry.FieldSelect:
		for _, choice := range f.Options {
			if strings.EqualFold(choice.Value, strings.TrimSpace(text)) {
				return choice.Value, nil
			}
		}
		return nil, fmt.Errorf("editor: field %q: %q is not an option", f.Label, text)
	default:
		return text, nil
	}
}

// OptionIndex returns the index of the option matching the current value or,
// when absent, the default. It returns 0 when nothing matches.
func (f Field) OptionIndex() int {
	current := f.Text()
	for idx, choice := range f.Options {
		if choice.Value == current {
			return idx
		}
	}
	return 0
}

func bindFields(specs []registry.FieldSpec, values map[string]any, offer func(registry.FieldSpec) bool) []Field {
	out := make([]Field, 0, len(specs))
	for _, spec := range specs {
		value, present := values[spec.Key]
		if !offer(spec) {
			continue
		}
		out = append(out, Field{FieldSpec: spec, Value: value, Present: present})
	}
	return out
}

func linesText(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, "\n")
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			lines = append(lines, scalarText(item))
		}
		return strings.Join(lines, "\n")
	default:
		return scalarText(value)
	}
}

func scalarText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(payload)
	}
}

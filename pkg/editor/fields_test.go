package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pageblocks/pkg/registry"
)

func TestField_ParseAndText(t *testing.T) {
	lines := Field{FieldSpec: registry.FieldSpec{Key: "items", Label: "Items", Kind: registry.FieldLines}}
	value, err := lines.Parse("one\n\n  two  \n")
	if err != nil {
		t.Fatalf("parse lines: %v", err)
	}
	if diff := cmp.Diff([]any{"one", "two"}, value); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	lines.Value, lines.Present = []any{"a", 2.0, true}, true
	if got := lines.Text(); got != "a\n2\ntrue" {
		t.Fatalf("unexpected lines text %q", got)
	}

	faq := Field{FieldSpec: registry.FieldSpec{Key: "items", Label: "Questions", Kind: registry.FieldJSON}}
	if _, err := faq.Parse(`[{"question": "Q"`); err == nil {
		t.Fatalf("expected invalid JSON error")
	}
	value, err = faq.Parse(`[{"question": "Q", "answer": "A"}]`)
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if diff := cmp.Diff([]any{map[string]any{"question": "Q", "answer": "A"}}, value); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	raw := Field{FieldSpec: registry.FieldSpec{Label: "Content (JSON)", Kind: registry.FieldJSON}}
	if _, err := raw.Parse(`[1, 2]`); err == nil {
		t.Fatalf("raw field should require an object")
	}
	raw.Value, raw.Present = map[string]any{"b": 1.0, "a": "x"}, true
	if got := raw.Text(); got != "{\n  \"a\": \"x\",\n  \"b\": 1\n}" {
		t.Fatalf("unexpected raw text %q", got)
	}

	sel := Field{FieldSpec: registry.FieldSpec{
		Key: "provider", Label: "Provider", Kind: registry.FieldSelect, Default: "youtube",
		Options: []registry.Choice{{Value: "youtube", Label: "YouTube"}, {Value: "vimeo", Label: "Vimeo"}},
	}}
	if got, err := sel.Parse("Vimeo"); err != nil || got != "vimeo" {
		t.Fatalf("select parse = %v, %v", got, err)
	}
	if _, err := sel.Parse("dailymotion"); err == nil {
		t.Fatalf("expected unknown option error")
	}
	if sel.OptionIndex() != 0 {
		t.Fatalf("absent select should point at its default")
	}

	plain := Field{FieldSpec: registry.FieldSpec{Key: "height", Kind: registry.FieldInput, Default: "2rem"}}
	if plain.Text() != "2rem" {
		t.Fatalf("absent input should show its default, got %q", plain.Text())
	}
	plain.Value, plain.Present = 40.0, true
	if plain.Text() != "40" {
		t.Fatalf("numeric value should render plainly, got %q", plain.Text())
	}
}

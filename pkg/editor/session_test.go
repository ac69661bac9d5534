package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
)

func TestSession_IsPersistent(t *testing.T) {
	base := NewSession(sampleBlock())
	edited := base.WithContent("text", "Edited").WithSetting("padding", "large").WithTitle("T")

	if got := base.Draft().Content["text"]; got != "Great service" {
		t.Fatalf("base session changed by derived edit: %v", got)
	}
	if got := base.Draft().Settings["padding"]; got != "small" {
		t.Fatalf("base settings changed by derived edit: %v", got)
	}
	if base.Dirty() {
		t.Fatalf("base session should stay clean")
	}
	if !edited.Dirty() {
		t.Fatalf("edited session should be dirty")
	}
	if diff := cmp.Diff(sampleBlock(), edited.Cancel()); diff != "" {
		t.Fatalf("cancel should return the loaded block (-want +got):\n%s", diff)
	}
	if got := edited.Save().Title; got != "T" {
		t.Fatalf("save lost the title edit: %q", got)
	}
}

func TestSession_NilMapsAreCreated(t *testing.T) {
	s := NewSession(blocks.ContentBlock{ID: "d", Type: "divider"})
	s = s.WithContent("k", "v").WithSetting("alignment", "right")

	saved := s.Save()
	if saved.Content["k"] != "v" || saved.Settings["alignment"] != "right" {
		t.Fatalf("edits not applied: %+v", saved)
	}
}

func TestSession_DirtyIgnoresEmptyMaps(t *testing.T) {
	s := NewSession(blocks.ContentBlock{ID: "d", Type: "divider"})
	raw, ok := s.WithRaw(`{}`)
	if !ok {
		t.Fatalf("empty object should be accepted")
	}
	if raw.Dirty() {
		t.Fatalf("nil and empty content should compare equal")
	}
}

func TestSession_WithRawRejectsInvalid(t *testing.T) {
	s := NewSession(sampleBlock())
	next, ok := s.WithRaw("not json")
	if ok {
		t.Fatalf("expected rejection")
	}
	if diff := cmp.Diff(s.Draft(), next.Draft()); diff != "" {
		t.Fatalf("rejected edit changed the draft (-want +got):\n%s", diff)
	}
}

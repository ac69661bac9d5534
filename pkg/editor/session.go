package editor

import (
	"encoding/json"
	"maps"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
)

// Session is one editing session over a block. The zero value is not usable;
// create sessions with NewSession.
type Session struct {
	original blocks.ContentBlock
	draft    blocks.ContentBlock
}

// NewSession snapshots block. The caller's block is deep-copied, so later
// changes to it do not leak into the session and vice versa.
func NewSession(block blocks.ContentBlock) Session {
	return Session{
		original: block.Clone(),
		draft:    block.Clone(),
	}
}

// WithContent returns a session whose draft content has key set to value.
// Other keys are left as they are.
func (s Session) WithContent(key string, value any) Session {
	next := s.fork()
	if next.draft.Content == nil {
		next.draft.Content = make(map[string]any)
	}
	next.draft.Content[key] = value
	return next
}

// WithSetting returns a session whose draft settings have key set to value.
func (s Session) WithSetting(key string, value any) Session {
	next := s.fork()
	if next.draft.Settings == nil {
		next.draft.Settings = make(blocks.Settings)
	}
	next.draft.Settings[key] = value
	return next
}

// WithTitle returns a session with the draft title replaced.
func (s Session) WithTitle(title string) Session {
	next := s.fork()
	next.draft.Title = title
	return next
}

// WithRaw replaces the whole draft content with the JSON object in text. When
// text is not a JSON object the session is returned unchanged and ok is false.
func (s Session) WithRaw(text string) (Session, bool) {
	var content map[string]any
	if err := json.Unmarshal([]byte(text), &content); err != nil || content == nil {
		return s, false
	}
	next := s.fork()
	next.draft.Content = content
	return next, true
}

// Save returns the edited block.
func (s Session) Save() blocks.ContentBlock {
	return s.draft.Clone()
}

// Cancel discards the edits and returns the block as it was loaded.
func (s Session) Cancel() blocks.ContentBlock {
	return s.original.Clone()
}

// Draft returns a copy of the block being edited.
func (s Session) Draft() blocks.ContentBlock {
	return s.draft.Clone()
}

// Original returns a copy of the block as it was loaded.
func (s Session) Original() blocks.ContentBlock {
	return s.original.Clone()
}

// Dirty reports whether the draft differs from the loaded block. Nil and
// empty maps compare equal.
func (s Session) Dirty() bool {
	return !cmp.Equal(s.original, s.draft, cmpopts.EquateEmpty())
}

// fork copies the top-level maps of the draft so the receiver keeps its own
// view. Nested values are shared; edits only ever replace top-level keys.
func (s Session) fork() Session {
	next := s
	next.draft.Content = maps.Clone(s.draft.Content)
	next.draft.Settings = maps.Clone(s.draft.Settings)
	return next
}

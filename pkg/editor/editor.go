package editor

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/registry"
)

// State is the editor lifecycle state.
type State int

const (
	StateClosed State = iota
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	default:
		return "closed"
	}
}

// Option configures an Editor.
type Option func(*Editor)

// WithRegistry selects the block definitions used to derive fields.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Editor) {
		if reg != nil {
			e.registry = reg
		}
	}
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor drives one editing session at a time. It is not safe for
// concurrent use.
type Editor struct {
	registry *registry.Registry
	logger   *slog.Logger
	session  *Session
	// offered holds content keys present when the block was opened or added
	// during the session; optional fields stay visible once offered.
	offered map[string]struct{}
	opened  map[string]struct{}
}

// New returns a closed editor.
func New(opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.registry == nil {
		e.registry = registry.NewDefault()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Open starts a session on a deep copy of block. Opening while a session is
// active discards it. A nil block closes the editor.
func (e *Editor) Open(block *blocks.ContentBlock) {
	if block == nil {
		e.close()
		return
	}
	session := NewSession(*block)
	e.session = &session
	e.opened = keySet(block.Content)
	e.offered = keySet(block.Content)
	e.logger.Debug("editor opened", "block_id", block.ID, "type", block.Type)
}

// State reports whether a session is open.
func (e *Editor) State() State {
	if e.session == nil {
		return StateClosed
	}
	return StateEditing
}

// Session returns the active session.
func (e *Editor) Session() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// Definition returns the registry definition for the open block.
func (e *Editor) Definition() (registry.Definition, bool) {
	if e.session == nil {
		return registry.Definition{}, false
	}
	return e.registry.Resolve(e.session.draft.Type), true
}

// EditContent replaces one content key of the draft.
func (e *Editor) EditContent(key string, value any) error {
	if e.session == nil {
		return ErrNotEditing
	}
	next := e.session.WithContent(key, value)
	e.session = &next
	e.offered[key] = struct{}{}
	return nil
}

// EditSetting replaces one settings key of the draft.
func (e *Editor) EditSetting(key string, value any) error {
	if e.session == nil {
		return ErrNotEditing
	}
	next := e.session.WithSetting(key, value)
	e.session = &next
	return nil
}

// EditTitle replaces the draft title.
func (e *Editor) EditTitle(title string) error {
	if e.session == nil {
		return ErrNotEditing
	}
	next := e.session.WithTitle(title)
	e.session = &next
	return nil
}

// EditRaw replaces the whole draft content when text is a JSON object. On
// invalid input the last valid content is kept and false is returned; this is
// not an error.
func (e *Editor) EditRaw(text string) bool {
	if e.session == nil {
		return false
	}
	next, ok := e.session.WithRaw(text)
	if !ok {
		e.logger.Debug("raw content edit ignored", "block_id", e.session.draft.ID)
		return false
	}
	e.session = &next
	// Keys dropped by the raw edit stop being offered unless the block was
	// opened with them.
	e.offered = keySet(next.draft.Content)
	for key := range e.opened {
		e.offered[key] = struct{}{}
	}
	return true
}

// Fields returns the content fields for the open block. Primary fields are
// always offered; optional fields only when their key is present. Values are
// copies, so changing them does not touch the draft. Blocks
// resolved to a raw definition get a single field holding the whole content.
func (e *Editor) Fields() []Field {
	if e.session == nil {
		return nil
	}
	draft := e.session.Draft()
	def := e.registry.Resolve(draft.Type)

	if def.Raw {
		spec := registry.FieldSpec{Label: "Content (JSON)", Kind: registry.FieldJSON, Primary: true}
		if len(def.Fields) > 0 {
			spec = def.Fields[0]
			spec.Key = ""
		}
		content := draft.Content
		if content == nil {
			content = map[string]any{}
		}
		return []Field{{FieldSpec: spec, Value: content, Present: true}}
	}

	return bindFields(def.Fields, draft.Content, func(spec registry.FieldSpec) bool {
		if spec.Primary {
			return true
		}
		_, ok := e.offered[spec.Key]
		return ok
	})
}

// SettingsFields returns the style fields shared by every block type.
func (e *Editor) SettingsFields() []Field {
	if e.session == nil {
		return nil
	}
	return bindFields(registry.SettingsFields(), e.session.Draft().Settings, func(registry.FieldSpec) bool {
		return true
	})
}

// Save closes the session and returns the edited block.
func (e *Editor) Save() (blocks.ContentBlock, error) {
	if e.session == nil {
		return blocks.ContentBlock{}, ErrNotEditing
	}
	saved := e.session.Save()
	e.logger.Debug("editor saved", "block_id", saved.ID, "dirty", e.session.Dirty())
	e.close()
	return saved, nil
}

// Cancel closes the session and discards the draft. It is a no-op while
// closed.
func (e *Editor) Cancel() {
	if e.session == nil {
		return
	}
	e.logger.Debug("editor cancelled", "block_id", e.session.original.ID)
	e.close()
}

// Draft returns a copy of the block being edited.
func (e *Editor) Draft() (blocks.ContentBlock, bool) {
	if e.session == nil {
		return blocks.ContentBlock{}, false
	}
	return e.session.Draft(), true
}

// Original returns a copy of the block as it was opened.
func (e *Editor) Original() (blocks.ContentBlock, bool) {
	if e.session == nil {
		return blocks.ContentBlock{}, false
	}
	return e.session.Original(), true
}

// Dirty reports whether the open draft differs from the opened block.
func (e *Editor) Dirty() bool {
	return e.session != nil && e.session.Dirty()
}

func (e *Editor) close() {
	e.session = nil
	e.offered = nil
	e.opened = nil
}

func keySet(content map[string]any) map[string]struct{} {
	keys := make(map[string]struct{}, len(content))
	for key := range content {
		keys[key] = struct{}{}
	}
	return keys
}

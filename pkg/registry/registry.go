package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
)

// ErrDuplicate is returned when a type tag or alias is registered twice.
var ErrDuplicate = errors.New("registry: duplicate block type")

// Definition binds a block type tag to everything that interprets it: the
// typed payload decoder, the renderer template, and the editor fields.
type Definition struct {
	Type     string
	Aliases  []string
	Label    string
	Template string
	Decode   func(blocks.ContentBlock) blocks.Payload
	Fields   []FieldSpec
	// Raw marks definitions whose payload is edited as a whole JSON document.
	Raw bool
}

// Registry maps type tags (and their aliases) to definitions. Resolution is
// total: tags without a definition resolve to the fallback.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
	aliases     map[string]string
	fallback    Definition
}

// New creates a registry holding only the fallback definition.
func New() *Registry {
	return &Registry{
		definitions: make(map[string]Definition),
		aliases:     make(map[string]string),
		fallback:    FallbackDefinition(),
	}
}

// Register adds a definition under its Type and Aliases.
func (r *Registry) Register(def Definition) error {
	name := normalize(def.Type)
	if name == "" {
		return fmt.Errorf("registry: block type is required")
	}
	if def.Template == "" {
		return fmt.Errorf("registry: template for %q is required", name)
	}
	if def.Decode == nil {
		return fmt.Errorf("registry: decoder for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(name) {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	aliases := make([]string, 0, len(def.Aliases))
	for _, alias := range def.Aliases {
		alias = normalize(alias)
		if alias == "" || alias == name {
			continue
		}
		if r.taken(alias) || slices.Contains(aliases, alias) {
			return fmt.Errorf("%w: alias %q", ErrDuplicate, alias)
		}
		aliases = append(aliases, alias)
	}

	def.Type = name
	def.Aliases = aliases
	r.definitions[name] = cloneDefinition(def)
	for _, alias := range aliases {
		r.aliases[alias] = name
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// SetFallback replaces the definition used for unrecognized tags.
func (r *Registry) SetFallback(def Definition) error {
	if def.Template == "" || def.Decode == nil {
		return fmt.Errorf("registry: fallback needs a template and a decoder")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = cloneDefinition(def)
	return nil
}

// Lookup returns the definition registered for tag or one of its aliases.
func (r *Registry) Lookup(tag string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := normalize(tag)
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	def, ok := r.definitions[name]
	if !ok {
		return Definition{}, false
	}
	return cloneDefinition(def), true
}

// Resolve returns the definition for tag, or the fallback when the tag is
// not recognized.
func (r *Registry) Resolve(tag string) Definition {
	if def, ok := r.Lookup(tag); ok {
		return def
	}
	return r.Fallback()
}

// Fallback returns the definition used for unrecognized tags.
func (r *Registry) Fallback() Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneDefinition(r.fallback)
}

// Decode resolves the block's definition and returns its typed payload.
func (r *Registry) Decode(block blocks.ContentBlock) blocks.Payload {
	return r.Resolve(block.Type).Decode(block)
}

// Types returns the sorted canonical type tags.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Definitions returns every registered definition sorted by type.
func (r *Registry) Definitions() []Definition {
	names := r.Types()
	out := make([]Definition, 0, len(names))
	for _, name := range names {
		if def, ok := r.Lookup(name); ok {
			out = append(out, def)
		}
	}
	return out
}

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	cloned.fallback = cloneDefinition(r.fallback)
	for name, def := range r.definitions {
		cloned.definitions[name] = cloneDefinition(def)
	}
	for alias, name := range r.aliases {
		cloned.aliases[alias] = name
	}
	return cloned
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.definitions[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

func cloneDefinition(src Definition) Definition {
	clone := src
	clone.Aliases = slices.Clone(src.Aliases)
	clone.Fields = make([]FieldSpec, len(src.Fields))
	for idx, field := range src.Fields {
		field.Options = slices.Clone(field.Options)
		clone.Fields[idx] = field
	}
	return clone
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

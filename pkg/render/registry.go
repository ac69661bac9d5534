package render

import (
	"cmp"
	"fmt"
	"mime"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Registry holds the output formats a page can be rendered to, keyed by the
// renderer name. Names are case-insensitive.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Renderer
	ordered []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its Name.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := rendererKey(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateRenderer, name)
	}
	r.byName[name] = renderer
	r.ordered = append(r.ordered, name)
	return nil
}

func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byName[rendererKey(name)]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
}

// List returns the registered names sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := slices.Clone(r.ordered)
	slices.Sort(names)
	return names
}

// First returns the earliest registered renderer.
func (r *Registry) First() (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.ordered) == 0 {
		return nil, false
	}
	return r.byName[r.ordered[0]], true
}

// Negotiate picks the renderer whose content type best matches an HTTP
// Accept header. Entries are tried by descending q value and then in header
// order; wildcards ("*/*", "text/*") match in registration order. An empty
// header accepts the first renderer. It reports false when nothing
// acceptable is registered.
func (r *Registry) Negotiate(accept string) (Renderer, bool) {
	if strings.TrimSpace(accept) == "" {
		return r.First()
	}
	ranges := parseAccept(accept)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, want := range ranges {
		for _, name := range r.ordered {
			renderer := r.byName[name]
			if mediaMatches(want.mediaType, renderer.ContentType()) {
				return renderer, true
			}
		}
	}
	return nil, false
}

type acceptRange struct {
	mediaType string
	q         float64
}

func parseAccept(header string) []acceptRange {
	var ranges []acceptRange
	for _, part := range strings.Split(header, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: q})
	}
	slices.SortStableFunc(ranges, func(a, b acceptRange) int {
		return cmp.Compare(b.q, a.q)
	})
	return ranges
}

func mediaMatches(want, contentType string) bool {
	have, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if want == "*/*" || want == have {
		return true
	}
	if prefix, ok := strings.CutSuffix(want, "/*"); ok {
		return strings.HasPrefix(have, prefix+"/")
	}
	return false
}

func rendererKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pageblocks/pkg/render/template"
)

// DefaultExtension is appended to template names that carry none.
const DefaultExtension = ".tpl"

// ErrNoTemplates is returned by New when no template source was configured.
var ErrNoTemplates = errors.New("gotemplate: no template source configured")

// Filter transforms a template value. Filters see plain Go values (strings,
// float64, bool, maps and slices) rather than pongo2 wrappers.
type Filter func(input any, param any) (any, error)

// Option configures an Engine.
type Option func(*config)

type config struct {
	dir     string
	sources []fs.FS
	ext     string
	globals map[string]any
	filters map[string]Filter
}

// WithBaseDir loads templates from a directory on disk. The directory is
// consulted before any fs.FS source.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.dir = strings.TrimSpace(dir)
	}
}

// WithFS adds a template source. Sources are searched in the order added, so
// a partial set of block templates can shadow the embedded bundle.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.sources = append(cfg.sources, files)
		}
	}
}

// WithExtension replaces DefaultExtension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.ext = ext
	}
}

// WithGlobals exposes values to every template, e.g. a site name used by a
// custom page shell.
func WithGlobals(values map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(values))
		}
		for key, value := range values {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// WithFilter registers a template filter. pongo2 filters are process wide:
// the last engine to register a name wins.
func WithFilter(name string, fn Filter) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]Filter)
		}
		cfg.filters[name] = fn
	}
}

// Engine renders block and page templates through a pongo2 template set.
// Parsed templates are cached by the set; an Engine is immutable after New
// and safe for concurrent use.
type Engine struct {
	set *pongo2.TemplateSet
	ext string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine over the configured sources.
func New(options ...Option) (*Engine, error) {
	cfg := config{ext: DefaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.dir == "" && len(cfg.sources) == 0 {
		return nil, ErrNoTemplates
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(cfg.sources)+1)
	if cfg.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: templates dir %q: %w", cfg.dir, err)
		}
		loaders = append(loaders, local)
	}
	for _, files := range cfg.sources {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}

	set := pongo2.NewSet("pageblocks", loaders...)
	if len(cfg.globals) > 0 {
		globals, err := toContext(cfg.globals)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: globals: %w", err)
		}
		if set.Globals == nil {
			set.Globals = pongo2.Context{}
		}
		set.Globals.Update(globals)
	}

	registerBuiltinFilters()
	for name, fn := range cfg.filters {
		if err := registerFilter(name, fn); err != nil {
			return nil, err
		}
	}

	return &Engine{set: set, ext: cfg.ext}, nil
}

// RenderTemplate executes the named template with data. Struct values in data
// are addressed by their json field names.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := e.path(name)

	tmpl, err := e.set.FromCache(path)
	if err != nil {
		return "", fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	view, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: view for %q: %w", path, err)
	}
	out, err := tmpl.Execute(view)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", path, err)
	}
	return out, nil
}

func (e *Engine) path(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if strings.HasSuffix(name, e.ext) {
		return name
	}
	return name + e.ext
}

// toContext turns data into a pongo2 context. Anything other than a plain
// map goes through a JSON round trip so typed payloads expose their json
// names to templates.
func toContext(data any) (pongo2.Context, error) {
	var values map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		values = v
	case map[string]any:
		values = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, err
		}
	}

	ctx := make(pongo2.Context, len(values))
	for key, value := range values {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		plain, err := plainValue(value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		ctx[key] = plain
	}
	return ctx, nil
}

func plainValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, float64, []string:
		return v, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var builtinFilters sync.Once

func registerBuiltinFilters() {
	builtinFilters.Do(func() {
		_ = registerFilter("classname", func(in any, _ any) (any, error) {
			if in == nil {
				return "", nil
			}
			return ClassName(fmt.Sprint(in)), nil
		})
	})
}

func registerFilter(name string, fn Filter) error {
	wrapped := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	var err error
	if pongo2.FilterExists(name) {
		err = pongo2.ReplaceFilter(name, wrapped)
	} else {
		err = pongo2.RegisterFilter(name, wrapped)
	}
	if err != nil {
		return fmt.Errorf("gotemplate: filter %q: %w", name, err)
	}
	return nil
}

// ClassName lower-cases s and collapses every run of characters outside
// [a-z0-9] into a single dash, producing a token safe inside a class
// attribute.
func ClassName(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	internalLoader "github.com/goliatone/go-pageblocks/internal/pagesource/loader"
	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/pagesource"
	"github.com/goliatone/go-pageblocks/pkg/registry"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/renderers/jsonview"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom page loader.
func WithLoader(loader pagesource.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLoaderOptions configures the built-in loader. Ignored when WithLoader
// is supplied.
func WithLoaderOptions(opts ...pagesource.LoaderOption) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = append(o.loaderOptions, opts...)
	}
}

// WithRegistry injects a renderer registry. The built-in renderers are not
// registered when a registry is supplied.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithBlockRegistry selects the block definitions used by the built-in
// renderers.
func WithBlockRegistry(blockRegistry *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.blockRegistry = blockRegistry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithHTMLOptions passes options to the built-in HTML renderer.
func WithHTMLOptions(opts ...vanilla.Option) Option {
	return func(o *Orchestrator) {
		o.htmlOptions = append(o.htmlOptions, opts...)
	}
}

// WithJSONOptions passes options to the built-in JSON renderer.
func WithJSONOptions(opts ...jsonview.Option) Option {
	return func(o *Orchestrator) {
		o.jsonOptions = append(o.jsonOptions, opts...)
	}
}

// WithLogger sets the logger shared with the built-in renderers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator loads page documents and renders them with one of the
// registered output formats.
type Orchestrator struct {
	loader          pagesource.Loader
	loaderOptions   []pagesource.LoaderOption
	registry        *render.Registry
	blockRegistry   *registry.Registry
	defaultRenderer string
	htmlOptions     []vanilla.Option
	jsonOptions     []jsonview.Option
	logger          *slog.Logger
	initialiseErr   error
}

// New builds an Orchestrator. Anything not injected falls back to the
// built-in loader, block registry and the html and json renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// ErrNotAcceptable is returned when no renderer satisfies Request.Accept.
var ErrNotAcceptable = errors.New("orchestrator: no acceptable renderer")

// Request describes the page to render and how.
type Request struct {
	// Source names the page document. Ignored when Page is set.
	Source pagesource.Source

	// Page is rendered as is, without loading.
	Page *blocks.PageData

	// Renderer selects a renderer by name. When empty, Accept is negotiated
	// against the registered content types, then the default renderer is
	// used.
	Renderer string

	// Accept is an HTTP Accept header value.
	Accept string

	// BlocksOnly renders the ordered blocks without the page shell.
	BlocksOnly bool
}

// Output is a rendered page together with the renderer that produced it.
type Output struct {
	Body        []byte
	ContentType string
	Renderer    string
}

// Generate renders req and returns only the body.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	out, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Render resolves the page, picks a renderer and renders the page or, with
// BlocksOnly, its ordered blocks.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if o.initialiseErr != nil {
		return Output{}, o.initialiseErr
	}

	renderer, err := o.pick(req)
	if err != nil {
		return Output{}, err
	}
	page, err := o.resolvePage(ctx, req)
	if err != nil {
		return Output{}, err
	}

	var body []byte
	if req.BlocksOnly {
		body, err = renderer.RenderBlocks(ctx, page.Blocks(o.blockOptions(page)...))
	} else {
		body, err = renderer.RenderPage(ctx, page)
	}
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render %s: %w", renderer.Name(), err)
	}
	o.logger.Debug("page rendered", "page_id", page.ID, "renderer", renderer.Name(), "bytes", len(body))
	return Output{Body: body, ContentType: renderer.ContentType(), Renderer: renderer.Name()}, nil
}

// Load reads the page document src names.
func (o *Orchestrator) Load(ctx context.Context, src pagesource.Source) (pagesource.Document, error) {
	if src == nil {
		return pagesource.Document{}, errors.New("orchestrator: source is required")
	}
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return pagesource.Document{}, fmt.Errorf("orchestrator: load %s: %w", src.Location(), err)
	}
	return doc, nil
}

// Renderer looks a renderer up by name. An empty name yields the default
// renderer, or the first registered one when the default is missing.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if name = strings.TrimSpace(name); name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return renderer, nil
	}
	if renderer, err := o.registry.Get(o.defaultRenderer); err == nil {
		return renderer, nil
	}
	if renderer, ok := o.registry.First(); ok {
		return renderer, nil
	}
	return nil, errors.New("orchestrator: no renderers registered")
}

func (o *Orchestrator) pick(req Request) (render.Renderer, error) {
	if strings.TrimSpace(req.Renderer) == "" && strings.TrimSpace(req.Accept) != "" {
		if renderer, ok := o.registry.Negotiate(req.Accept); ok {
			return renderer, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrNotAcceptable, req.Accept)
	}
	return o.Renderer(req.Renderer)
}

func (o *Orchestrator) blockOptions(page blocks.PageData) []blocks.Option {
	return []blocks.Option{
		blocks.WithLogger(o.logger),
		blocks.WithDiagnostics(func(d blocks.Diagnostic) {
			o.logger.Warn("page blocks discarded", "page_id", page.ID, "source", d.Source, "error", d.Err)
		}),
	}
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolvePage(ctx context.Context, req Request) (blocks.PageData, error) {
	if req.Page != nil {
		return *req.Page, nil
	}
	if req.Source == nil {
		return blocks.PageData{}, errors.New("orchestrator: source or page is required")
	}
	doc, err := o.Load(ctx, req.Source)
	if err != nil {
		return blocks.PageData{}, err
	}
	page, err := doc.Page()
	if err != nil {
		return blocks.PageData{}, fmt.Errorf("orchestrator: %w", err)
	}
	return page, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.blockRegistry == nil {
		o.blockRegistry = registry.NewDefault()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pagesource.NewLoaderOptions(o.loaderOptions...))
	}
	if o.registry == nil {
		o.registry, o.initialiseErr = o.builtinRenderers()
	}
	if strings.TrimSpace(o.defaultRenderer) == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// builtinRenderers registers the HTML renderer first so it also answers
// wildcard Accept headers.
func (o *Orchestrator) builtinRenderers() (*render.Registry, error) {
	formats := render.NewRegistry()

	html, err := vanilla.New(append([]vanilla.Option{
		vanilla.WithRegistry(o.blockRegistry),
		vanilla.WithLogger(o.logger),
	}, o.htmlOptions...)...)
	if err != nil {
		return formats, fmt.Errorf("orchestrator: html renderer: %w", err)
	}
	formats.MustRegister(html)

	formats.MustRegister(jsonview.New(append([]jsonview.Option{
		jsonview.WithRegistry(o.blockRegistry),
		jsonview.WithLogger(o.logger),
	}, o.jsonOptions...)...))
	return formats, nil
}

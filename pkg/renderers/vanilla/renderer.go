package vanilla

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/registry"
	"github.com/goliatone/go-pageblocks/pkg/render"
	rendertemplate "github.com/goliatone/go-pageblocks/pkg/render/template"
	gotemplate "github.com/goliatone/go-pageblocks/pkg/render/template/gotemplate"
)

const (
	// Name is the identifier used in render.Registry lookups.
	Name = "html"

	// DefaultEmptyMessage is shown by RenderPage when a page has no blocks.
	DefaultEmptyMessage = "This page has no content yet."

	pageTemplate    = "page"
	publishedLayout = "January 2, 2006"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	registry         *registry.Registry
	sanitizer        render.Sanitizer
	sanitizerSet     bool
	padding          render.PaddingScale
	spacerHeight     string
	logger           *slog.Logger
	stylesheet       bool
	emptyMessage     string
}

// WithTemplatesFS layers an alternate template bundle over the embedded one.
// Templates missing from files fall through to the defaults.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers templates from a directory on disk over the
// embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation. It
// replaces the pongo2 engine and any template sources.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry selects the block definitions used for dispatch.
func WithRegistry(reg *registry.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithSanitizer replaces the rich text sanitizer. Passing nil disables
// sanitization, which is only safe for trusted content.
func WithSanitizer(s render.Sanitizer) Option {
	return func(cfg *config) {
		cfg.sanitizer = s
		cfg.sanitizerSet = true
	}
}

// WithPaddingScale overrides entries of the padding scale.
func WithPaddingScale(scale render.PaddingScale) Option {
	return func(cfg *config) {
		for key, value := range scale {
			if length := render.ValidLength(value); length != "" {
				cfg.padding[strings.ToLower(strings.TrimSpace(key))] = length
			}
		}
	}
}

// WithSpacerHeight sets the height used by spacers that do not declare one.
func WithSpacerHeight(height string) Option {
	return func(cfg *config) {
		if length := render.ValidLength(height); length != "" {
			cfg.spacerHeight = length
		}
	}
}

// WithLogger routes template failure warnings and normalization diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithStylesheet inlines the default stylesheet into RenderPage output.
func WithStylesheet(inline bool) Option {
	return func(cfg *config) {
		cfg.stylesheet = inline
	}
}

// WithEmptyMessage overrides the text shown for pages without blocks.
func WithEmptyMessage(message string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			cfg.emptyMessage = trimmed
		}
	}
}

// Renderer turns content blocks into HTML fragments using one pongo2
// template per block type, wrapped in a shared styled container.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	registry     *registry.Registry
	preparer     render.Preparer
	padding      render.PaddingScale
	logger       *slog.Logger
	stylesheet   string
	emptyMessage string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		padding:      render.DefaultPaddingScale(),
		spacerHeight: blocks.DefaultSpacerHeight,
		emptyMessage: DefaultEmptyMessage,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.registry == nil {
		cfg.registry = registry.NewDefault()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !cfg.sanitizerSet {
		cfg.sanitizer = render.DefaultSanitizer()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engineOpts := []gotemplate.Option{}
		if cfg.templatesDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.templatesDir))
		}
		if cfg.templateFS != nil {
			engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templateFS))
		}
		engineOpts = append(engineOpts, gotemplate.WithFS(TemplatesFS()))

		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{
		templates:    templates,
		registry:     cfg.registry,
		preparer:     render.Preparer{Sanitizer: cfg.sanitizer, SpacerHeight: cfg.spacerHeight},
		padding:      cfg.padding,
		logger:       cfg.logger,
		emptyMessage: cfg.emptyMessage,
	}
	if cfg.stylesheet {
		r.stylesheet = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderBlock renders a single block inside its styled wrapper.
func (r *Renderer) RenderBlock(ctx context.Context, block blocks.ContentBlock) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	markup, err := r.renderBlock(block)
	if err != nil {
		return nil, err
	}
	return []byte(markup), nil
}

// RenderBlocks renders the blocks in the order given. Callers normally pass
// the output of blocks.Normalize.
func (r *Renderer) RenderBlocks(ctx context.Context, list []blocks.ContentBlock) ([]byte, error) {
	rendered, err := r.renderAll(ctx, list)
	if err != nil {
		return nil, err
	}
	return []byte(strings.Join(rendered, "")), nil
}

// RenderPage normalizes the page's blocks and renders them inside the page
// shell (header, metadata, featured image).
func (r *Renderer) RenderPage(ctx context.Context, page blocks.PageData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list := page.Blocks(
		blocks.WithLogger(r.logger),
		blocks.WithDiagnostics(func(d blocks.Diagnostic) {
			r.logger.Warn("page blocks discarded", "page_id", page.ID, "source", d.Source, "error", d.Err)
		}),
	)
	rendered, err := r.renderAll(ctx, list)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"page":          newPageView(page),
		"blocks":        rendered,
		"empty_message": r.emptyMessage,
	}
	if r.stylesheet != "" {
		data["stylesheet"] = r.stylesheet
	}

	out, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) renderAll(ctx context.Context, list []blocks.ContentBlock) ([]string, error) {
	rendered := make([]string, 0, len(list))
	for _, block := range list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		markup, err := r.renderBlock(block)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, markup)
	}
	return rendered, nil
}

func (r *Renderer) renderBlock(block blocks.ContentBlock) (string, error) {
	def := r.registry.Resolve(block.Type)
	body, err := r.renderBody(def, block)
	if err != nil {
		fallback := r.registry.Fallback()
		if def.Template == fallback.Template {
			return "", fmt.Errorf("vanilla renderer: render block %q: %w", block.ID, err)
		}
		r.logger.Warn("block template failed, using fallback",
			"block_id", block.ID,
			"type", block.Type,
			"template", def.Template,
			"error", err,
		)
		def = fallback
		if body, err = r.renderBody(def, block); err != nil {
			return "", fmt.Errorf("vanilla renderer: render fallback for block %q: %w", block.ID, err)
		}
	}

	style := render.ComputeStyle(block.Settings, r.padding)
	return buildBlockMarkup(block, def, style, body), nil
}

func (r *Renderer) renderBody(def registry.Definition, block blocks.ContentBlock) (string, error) {
	payload := r.preparer.Prepare(def.Decode(block))
	data := map[string]any{
		"block": payload,
		"id":    block.ID,
		"type":  block.Type,
	}
	if hero, ok := payload.(blocks.Hero); ok {
		data["hero_style"] = render.BackgroundImageCSS(hero.BackgroundImage)
	}
	return r.templates.RenderTemplate(def.Template, data)
}

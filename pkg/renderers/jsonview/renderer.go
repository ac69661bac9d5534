// Package jsonview renders content blocks as JSON documents for headless
// consumers. Payloads go through the same preparation as the HTML renderer,
// so clients receive sanitized bodies, filtered URLs and the computed style.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/registry"
	"github.com/goliatone/go-pageblocks/pkg/render"
)

// Name is the identifier used in render.Registry lookups.
const Name = "json"

type Option func(*Renderer)

// WithRegistry selects the block definitions used for dispatch.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithSanitizer replaces the rich text sanitizer. Nil disables sanitization.
func WithSanitizer(s render.Sanitizer) Option {
	return func(r *Renderer) {
		r.preparer.Sanitizer = s
	}
}

// WithPaddingScale overrides entries of the padding scale.
func WithPaddingScale(scale render.PaddingScale) Option {
	return func(r *Renderer) {
		for key, value := range scale {
			if length := render.ValidLength(value); length != "" {
				r.padding[key] = length
			}
		}
	}
}

// WithSpacerHeight sets the height used by spacers that do not declare one.
func WithSpacerHeight(height string) Option {
	return func(r *Renderer) {
		if length := render.ValidLength(height); length != "" {
			r.preparer.SpacerHeight = length
		}
	}
}

// WithIndent pretty-prints the output with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithLogger routes normalization diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer emits blocks as JSON views.
type Renderer struct {
	registry *registry.Registry
	preparer render.Preparer
	padding  render.PaddingScale
	indent   string
	logger   *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		preparer: render.Preparer{
			Sanitizer:    render.DefaultSanitizer(),
			SpacerHeight: blocks.DefaultSpacerHeight,
		},
		padding: render.DefaultPaddingScale(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.registry == nil {
		r.registry = registry.NewDefault()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// BlockView is the JSON shape of one rendered block.
type BlockView struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Kind     string          `json:"kind"`
	Title    string          `json:"title,omitempty"`
	Order    int             `json:"order"`
	Style    string          `json:"style,omitempty"`
	Settings blocks.Settings `json:"settings,omitempty"`
	Payload  blocks.Payload  `json:"payload"`
	// Content carries the raw payload of blocks no definition interprets.
	Content map[string]any `json:"content,omitempty"`
}

// PageView is the JSON shape of a rendered page.
type PageView struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Path          string      `json:"path,omitempty"`
	Summary       string      `json:"summary,omitempty"`
	Vertical      string      `json:"vertical,omitempty"`
	PageType      string      `json:"page_type,omitempty"`
	Author        string      `json:"author,omitempty"`
	FeaturedImage string      `json:"featured_image,omitempty"`
	PublishedAt   *time.Time  `json:"published_at,omitempty"`
	Blocks        []BlockView `json:"blocks"`
}

// View builds the JSON view of block without encoding it.
func (r *Renderer) View(block blocks.ContentBlock) BlockView {
	def := r.registry.Resolve(block.Type)
	view := BlockView{
		ID:       block.ID,
		Type:     block.Type,
		Kind:     def.Type,
		Title:    block.Title,
		Order:    block.Position(),
		Style:    render.ComputeStyle(block.Settings, r.padding).CSS(),
		Settings: block.Settings,
		Payload:  r.preparer.Prepare(def.Decode(block)),
	}
	if def.Raw {
		view.Kind = "fallback"
		view.Content = block.Content
	}
	return view
}

// RenderBlock encodes a single block view.
func (r *Renderer) RenderBlock(ctx context.Context, block blocks.ContentBlock) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.encode(r.View(block))
}

// RenderBlocks encodes the block views as a JSON array in the order given.
func (r *Renderer) RenderBlocks(ctx context.Context, list []blocks.ContentBlock) ([]byte, error) {
	views, err := r.views(ctx, list)
	if err != nil {
		return nil, err
	}
	return r.encode(views)
}

// RenderPage normalizes the page's blocks and encodes the page view.
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
	views, err := r.views(ctx, list)
	if err != nil {
		return nil, err
	}

	view := PageView{
		ID:            page.ID,
		Title:         page.Title,
		Path:          page.Path,
		Summary:       page.Summary(),
		Vertical:      page.Vertical,
		PageType:      page.PageType,
		Author:        page.Author,
		FeaturedImage: render.SafeURL(page.FeaturedImage),
		Blocks:        views,
	}
	if !page.PublishedAt.IsZero() {
		published := page.PublishedAt.Time
		view.PublishedAt = &published
	}
	return r.encode(view)
}

func (r *Renderer) views(ctx context.Context, list []blocks.ContentBlock) ([]BlockView, error) {
	views := make([]BlockView, 0, len(list))
	for _, block := range list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		views = append(views, r.View(block))
	}
	return views, nil
}

func (r *Renderer) encode(value any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if r.indent != "" {
		data, err = json.MarshalIndent(value, "", r.indent)
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview renderer: encode: %w", err)
	}
	return data, nil
}

// Package pageblocks is the convenience entry point for rendering and editing
// pages composed of typed content blocks. The building blocks live under pkg/:
// blocks (data model), registry (block types), render and renderers (output),
// editor (copy-on-edit sessions) and pagesource (page documents).
package pageblocks

import (
	"context"
	"io/fs"

	internalLoader "github.com/goliatone/go-pageblocks/internal/pagesource/loader"
	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/editor"
	"github.com/goliatone/go-pageblocks/pkg/orchestrator"
	"github.com/goliatone/go-pageblocks/pkg/pagesource"
	"github.com/goliatone/go-pageblocks/pkg/registry"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
)

// ContentBlock aliases blocks.ContentBlock.
type ContentBlock = blocks.ContentBlock

// PageData aliases blocks.PageData.
type PageData = blocks.PageData

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a page loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...pagesource.LoaderOption) pagesource.Loader {
	return internalLoader.New(pagesource.NewLoaderOptions(options...))
}

// NewEditor returns a closed block editor bound to the default registry.
func NewEditor(options ...editor.Option) *editor.Editor {
	return editor.New(options...)
}

// DefaultRegistry returns a fresh registry holding the built-in block types.
func DefaultRegistry() *registry.Registry {
	return registry.NewDefault()
}

// RenderHTML loads the page at src and renders it with the HTML renderer.
func RenderHTML(ctx context.Context, src pagesource.Source, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:   src,
		Renderer: vanilla.Name,
	})
}

// RenderPage renders an in-memory page with the named renderer ("html" when
// empty).
func RenderPage(ctx context.Context, page PageData, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Page:     &page,
		Renderer: rendererName,
	})
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the default stylesheet so applications can serve it.
//
// Typical mount:
//
//	mux.Handle("/pageblocks/",
//	  http.StripPrefix("/pageblocks/",
//	    http.FileServerFS(pageblocks.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// WithLoader registers a page loader that can be passed to RenderHTML
// alongside other orchestrator options.
func WithLoader(loader pagesource.Loader) orchestrator.Option {
	return orchestrator.WithLoader(loader)
}

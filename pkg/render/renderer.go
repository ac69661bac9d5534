package render

import (
	"context"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
)

// Renderer converts normalized content blocks into a byte representation
// (HTML fragments, JSON views, etc.). Implementations never fail on block
// content; errors are reserved for broken templates and cancelled contexts.
type Renderer interface {
	Name() string
	ContentType() string
	RenderBlock(ctx context.Context, block blocks.ContentBlock) ([]byte, error)
	RenderBlocks(ctx context.Context, list []blocks.ContentBlock) ([]byte, error)
	RenderPage(ctx context.Context, page blocks.PageData) ([]byte, error)
}

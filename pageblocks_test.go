package pageblocks

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pageblocks/pkg/pagesource"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
	"github.com/goliatone/go-pageblocks/pkg/testsupport"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".pb-block") {
		t.Fatalf("expected stylesheet to style block wrappers")
	}
}

func TestEmbeddedTemplatesContainPageShell(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "page.tpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
	if _, err := fs.Stat(EmbeddedTemplates(), "blocks/quote.tpl"); err != nil {
		t.Fatalf("expected quote template: %v", err)
	}
}

func TestRenderPage_JSON(t *testing.T) {
	page := PageData{ID: "p1", Title: "Home"}.WithBlocks([]ContentBlock{
		{ID: "b1", Type: "quote", Content: map[string]any{"text": "Great", "author": "J. Doe"}},
	})
	out, err := RenderPage(testsupport.Context(), page, "json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `"author":"J. Doe"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestNewLoaderAndRenderHTML(t *testing.T) {
	files := fstest.MapFS{"home.yaml": {Data: []byte("id: p1\ntitle: Home\ncontent_blocks: []\n")}}
	ldr := NewLoader(pagesource.WithFileSystem(files))

	out, err := RenderHTML(testsupport.Context(), pagesource.SourceFromFS("home.yaml"), WithLoader(ldr))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), vanilla.DefaultEmptyMessage) {
		t.Fatalf("expected empty state, got %s", out)
	}
}

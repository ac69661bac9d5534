package vanilla

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/render"
	rendertemplate "github.com/goliatone/go-pageblocks/pkg/render/template"
	"github.com/goliatone/go-pageblocks/pkg/testsupport"
)

func TestRenderBlock_QuoteWithoutSettings(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{
		ID:      "b1",
		Type:    "quote",
		Content: map[string]any{"text": "Great service", "author": "J. Doe"},
	})

	wrapper := doc.Find(`section.pb-block--quote[data-block-id="b1"]`)
	if wrapper.Length() != 1 {
		t.Fatalf("expected quote wrapper, got %d", wrapper.Length())
	}
	if _, ok := wrapper.Attr("style"); ok {
		t.Fatalf("wrapper should not carry a style without settings")
	}
	if text := wrapper.Find("blockquote.pb-quote__text").Text(); !strings.Contains(text, "Great service") {
		t.Fatalf("quotation missing, got %q", text)
	}
	if author := wrapper.Find(".pb-quote__author").Text(); !strings.Contains(author, "J. Doe") {
		t.Fatalf("attribution missing, got %q", author)
	}
}

func TestRenderBlock_ListWithNonArrayItems(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{
		ID:      "b2",
		Type:    "list",
		Title:   "Features",
		Content: map[string]any{"items": "not-an-array"},
	})

	if got := doc.Find("h3.pb-list__title").Text(); got != "Features" {
		t.Fatalf("expected heading, got %q", got)
	}
	if n := doc.Find("li").Length(); n != 0 {
		t.Fatalf("expected no list items, got %d", n)
	}
}

func TestRenderBlock_ListScalarItems(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{
		ID:      "l1",
		Type:    "list",
		Content: map[string]any{"items": []any{"one", 2.0, map[string]any{"skip": true}, true}},
	})

	var got []string
	doc.Find("li.pb-list__item").Each(func(_ int, s *goquery.Selection) {
		got = append(got, s.Text())
	})
	if diff := cmp.Diff([]string{"one", "2", "true"}, got); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if doc.Find("h3").Length() != 0 {
		t.Fatalf("untitled list should not render a heading")
	}
}

func TestRenderBlock_UnknownTypeFallsBack(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{
		ID:      "x1",
		Type:    "carousel",
		Content: map[string]any{"slides": 3},
	})

	wrapper := doc.Find("section.pb-block--fallback")
	if wrapper.Length() != 1 {
		t.Fatalf("expected fallback wrapper")
	}
	if got, _ := wrapper.Attr("data-block-type"); got != "carousel" {
		t.Fatalf("expected original type tag, got %q", got)
	}
	if payload := wrapper.Find("pre.pb-fallback__payload").Text(); !strings.Contains(payload, `"slides": 3`) {
		t.Fatalf("expected pretty payload, got %q", payload)
	}
}

func TestRenderBlock_AliasesShareTemplates(t *testing.T) {
	r := newRenderer(t)
	doc := renderBlockDoc(t, r, blocks.ContentBlock{ID: "p", Type: "Paragraph", Content: map[string]any{"text": "<em>hi</em>"}})
	if doc.Find("section.pb-block--text .pb-prose em").Length() != 1 {
		t.Fatalf("paragraph alias should render through the text template")
	}

	doc = renderBlockDoc(t, r, blocks.ContentBlock{ID: "c", Type: "call-to-action", Content: map[string]any{
		"headline":            "Join",
		"buttonText":          "Go",
		"buttonLink":          "/signup",
		"secondaryButtonText": "Later",
		"secondaryButtonLink": "/later",
	}})
	if got := doc.Find(".pb-cta__title").Text(); got != "Join" {
		t.Fatalf("expected headline fallback, got %q", got)
	}
	if href, _ := doc.Find("a.pb-button--secondary").Attr("href"); href != "/later" {
		t.Fatalf("expected secondary button, got %q", href)
	}
}

func TestRenderBlock_MissingFieldsOmitElements(t *testing.T) {
	r := newRenderer(t)

	cases := []struct {
		block    blocks.ContentBlock
		selector string
	}{
		{blocks.ContentBlock{ID: "i", Type: "image"}, "img"},
		{blocks.ContentBlock{ID: "v", Type: "video"}, "iframe"},
		{blocks.ContentBlock{ID: "h", Type: "hero", Content: map[string]any{"buttonText": "No link"}}, "a"},
		{blocks.ContentBlock{ID: "q", Type: "quote"}, "blockquote"},
		{blocks.ContentBlock{ID: "f", Type: "faq", Content: map[string]any{"items": "nope"}}, "dt"},
	}
	for _, tc := range cases {
		doc := renderBlockDoc(t, r, tc.block)
		if n := doc.Find(tc.selector).Length(); n != 0 {
			t.Fatalf("%s block rendered %d %q elements", tc.block.Type, n, tc.selector)
		}
	}
}

func TestRenderBlock_ImageAltFallback(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{
		ID:      "i",
		Type:    "image",
		Content: map[string]any{"url": "/a.png"},
	})
	if alt, _ := doc.Find("img.pb-image__img").Attr("alt"); alt != "Image" {
		t.Fatalf("expected default alt, got %q", alt)
	}
}

func TestRenderBlock_FAQLegacyPair(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{
		ID:      "f",
		Type:    "faq",
		Content: map[string]any{"question": "Why?", "answer": "Because."},
	})
	if got := doc.Find("dt.pb-faq__question").Text(); got != "Why?" {
		t.Fatalf("expected legacy question, got %q", got)
	}
	if got := doc.Find("dd.pb-faq__answer").Text(); got != "Because." {
		t.Fatalf("expected legacy answer, got %q", got)
	}
}

func TestRenderBlock_SettingsStyle(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{
		ID:   "d",
		Type: "divider",
		Settings: blocks.Settings{
			blocks.SettingBackgroundColor: "#fff",
			blocks.SettingPadding:         "large",
			blocks.SettingTextColor:       "red; position: fixed",
		},
	})
	style, _ := doc.Find("section.pb-block--divider").Attr("style")
	if style != "background-color: #fff; padding: 4rem" {
		t.Fatalf("unexpected style %q", style)
	}
	if doc.Find("hr.pb-divider").Length() != 1 {
		t.Fatalf("expected divider rule")
	}
}

func TestRenderBlock_CustomPaddingScale(t *testing.T) {
	r := newRenderer(t, WithPaddingScale(render.PaddingScale{"small": "6px", "large": "bogus"}))
	doc := renderBlockDoc(t, r, blocks.ContentBlock{ID: "d", Type: "divider", Settings: blocks.Settings{"padding": "small"}})
	if style, _ := doc.Find("section").Attr("style"); style != "padding: 6px" {
		t.Fatalf("unexpected style %q", style)
	}
	doc = renderBlockDoc(t, r, blocks.ContentBlock{ID: "d", Type: "divider", Settings: blocks.Settings{"padding": "large"}})
	if style, _ := doc.Find("section").Attr("style"); style != "padding: 4rem" {
		t.Fatalf("invalid override should keep the default, got %q", style)
	}
}

func TestRenderBlock_Spacer(t *testing.T) {
	r := newRenderer(t, WithSpacerHeight("3rem"))

	doc := renderBlockDoc(t, r, blocks.ContentBlock{ID: "s1", Type: "spacer", Content: map[string]any{"height": 40.0}})
	if style, _ := doc.Find(".pb-spacer").Attr("style"); style != "height: 40px" {
		t.Fatalf("numeric height should become px, got %q", style)
	}
	doc = renderBlockDoc(t, r, blocks.ContentBlock{ID: "s2", Type: "spacer"})
	if style, _ := doc.Find(".pb-spacer").Attr("style"); style != "height: 3rem" {
		t.Fatalf("expected configured default, got %q", style)
	}
	doc = renderBlockDoc(t, r, blocks.ContentBlock{ID: "s3", Type: "spacer", Content: map[string]any{"height": "1px; x: y"}})
	if style, _ := doc.Find(".pb-spacer").Attr("style"); style != "height: 3rem" {
		t.Fatalf("invalid height should fall back, got %q", style)
	}
}

func TestRenderBlock_EscapesPlainText(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{
		ID:    "h",
		Type:  "heading",
		Title: "<b>bold</b>",
	})
	title := doc.Find("h2.pb-heading__title")
	if title.Text() != "<b>bold</b>" {
		t.Fatalf("expected escaped title text, got %q", title.Text())
	}
	if title.Find("b").Length() != 0 {
		t.Fatalf("title markup must not be interpreted")
	}
}

func TestRenderBlock_SanitizesRichText(t *testing.T) {
	block := blocks.ContentBlock{
		ID:      "t",
		Type:    "text",
		Content: map[string]any{"html": `<p>Hello <script>alert(1)</script><a href="javascript:x()" onclick="y()">there</a></p>`},
	}

	doc := renderBlockDoc(t, newRenderer(t), block)
	if doc.Find("script").Length() != 0 {
		t.Fatalf("script survived sanitization")
	}
	if _, ok := doc.Find("a").Attr("onclick"); ok {
		t.Fatalf("event handler survived sanitization")
	}
	if !strings.Contains(doc.Find(".pb-prose").Text(), "Hello") {
		t.Fatalf("safe text dropped")
	}

	doc = renderBlockDoc(t, newRenderer(t, WithSanitizer(nil)), block)
	if doc.Find("script").Length() != 1 {
		t.Fatalf("disabled sanitizer should pass markup through")
	}
}

func TestRenderBlock_RejectsUnsafeURLs(t *testing.T) {
	r := newRenderer(t)

	doc := renderBlockDoc(t, r, blocks.ContentBlock{ID: "h", Type: "hero", Content: map[string]any{
		"title":           "Hi",
		"buttonText":      "Click",
		"buttonLink":      "javascript:alert(1)",
		"backgroundImage": "javascript:alert(1)",
	}})
	if doc.Find("a").Length() != 0 {
		t.Fatalf("unsafe button link rendered")
	}
	if _, ok := doc.Find(".pb-hero").Attr("style"); ok {
		t.Fatalf("unsafe background image rendered")
	}

	doc = renderBlockDoc(t, r, blocks.ContentBlock{ID: "i", Type: "image", Content: map[string]any{"url": "data:image/svg+xml;base64,AAAA"}})
	if doc.Find("img").Length() != 0 {
		t.Fatalf("unsafe image url rendered")
	}
}

func TestRenderBlock_HeroBackground(t *testing.T) {
	doc := renderBlockDoc(t, newRenderer(t), blocks.ContentBlock{ID: "h", Type: "hero", Content: map[string]any{
		"headline":        "Launch",
		"ctaText":         "Start",
		"ctaLink":         "https://example.com/start",
		"backgroundImage": "/bg.jpg",
	}})
	if style, _ := doc.Find(".pb-hero").Attr("style"); style != `background-image: url("/bg.jpg")` {
		t.Fatalf("unexpected hero style %q", style)
	}
	if got := doc.Find(".pb-hero__title").Text(); got != "Launch" {
		t.Fatalf("expected headline fallback, got %q", got)
	}
	if href, _ := doc.Find("a.pb-button--primary").Attr("href"); href != "https://example.com/start" {
		t.Fatalf("expected cta fallback link, got %q", href)
	}
}

func TestRenderBlock_TemplateFailureUsesFallback(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	broken := fstest.MapFS{
		"blocks/quote.tpl": {Data: []byte("{{ block.text|no_such_filter }}")},
	}
	r := newRenderer(t, WithTemplatesFS(broken), WithLogger(logger))

	doc := renderBlockDoc(t, r, blocks.ContentBlock{ID: "b1", Type: "quote", Content: map[string]any{"text": "Hi"}})
	wrapper := doc.Find("section.pb-block--fallback")
	if wrapper.Length() != 1 {
		t.Fatalf("expected fallback rendering after template failure")
	}
	if got, _ := wrapper.Attr("data-block-type"); got != "quote" {
		t.Fatalf("fallback should keep the original type, got %q", got)
	}
	if !strings.Contains(logs.String(), "block template failed") {
		t.Fatalf("expected warning log, got %q", logs.String())
	}
}

func TestRenderBlock_BrokenFallbackIsAnError(t *testing.T) {
	broken := fstest.MapFS{
		"blocks/fallback.tpl": {Data: []byte("{% if %}")},
	}
	r := newRenderer(t, WithTemplatesFS(broken))
	if _, err := r.RenderBlock(context.Background(), blocks.ContentBlock{ID: "x", Type: "carousel"}); err == nil {
		t.Fatalf("expected error when the fallback template is broken")
	}
}

func TestRenderBlock_PartialOverride(t *testing.T) {
	override := fstest.MapFS{
		"blocks/divider.tpl": {Data: []byte(`<hr class="custom-rule">`)},
	}
	r := newRenderer(t, WithTemplatesFS(override))

	doc := renderBlockDoc(t, r, blocks.ContentBlock{ID: "d", Type: "divider"})
	if doc.Find("hr.custom-rule").Length() != 1 {
		t.Fatalf("override template not used")
	}
	doc = renderBlockDoc(t, r, blocks.ContentBlock{ID: "q", Type: "quote", Content: map[string]any{"text": "x"}})
	if doc.Find("blockquote").Length() != 1 {
		t.Fatalf("embedded template should serve types without overrides")
	}
}

func TestRenderBlocks_PreservesGivenOrder(t *testing.T) {
	list := blocks.Normalize(`[{"id":"b3","type":"divider","order":2},{"id":"b4","type":"divider","order":1}]`)
	out, err := newRenderer(t).RenderBlocks(testsupport.Context(), list)
	if err != nil {
		t.Fatalf("render blocks: %v", err)
	}
	if diff := cmp.Diff([]string{"b4", "b3"}, renderedIDs(testsupport.MustParseHTML(t, out))); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBlocks_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRenderer(t).RenderBlocks(ctx, []blocks.ContentBlock{{ID: "a", Type: "divider"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderPage_Shell(t *testing.T) {
	published := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	page := blocks.PageData{
		ID:            "p1",
		Title:         "About us",
		Excerpt:       "Who we are",
		Vertical:      "Landing Page",
		PageType:      "company",
		Author:        "Ada",
		FeaturedImage: "/cover.jpg",
		PublishedAt:   blocks.NewTimestamp(published),
		ContentBlocks: blocks.EncodedBlocks(`[
			{"id":"b3","type":"quote","order":2,"content":{"text":"Great"}},
			{"id":"b4","type":"heading","title":"Welcome","order":1}
		]`),
	}

	out, err := newRenderer(t).RenderPage(testsupport.Context(), page)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	doc := testsupport.MustParseHTML(t, out)

	article := doc.Find("article.pb-page")
	if !article.HasClass("pb-page--landing-page") {
		t.Fatalf("expected vertical class, got %v", article.AttrOr("class", ""))
	}
	checks := map[string]string{
		"h1.pb-page__title":       "About us",
		".pb-page__summary":       "Who we are",
		".pb-page__vertical":      "Landing Page",
		".pb-page__type":          "company",
		".pb-page__author":        "Ada",
		"time.pb-page__published": "March 4, 2024",
	}
	for selector, want := range checks {
		if got := strings.TrimSpace(doc.Find(selector).Text()); got != want {
			t.Fatalf("%s: want %q, got %q", selector, want, got)
		}
	}
	if dt, _ := doc.Find("time").Attr("datetime"); dt != "2024-03-04" {
		t.Fatalf("unexpected datetime %q", dt)
	}
	if src, _ := doc.Find(".pb-page__featured img").Attr("src"); src != "/cover.jpg" {
		t.Fatalf("unexpected featured image %q", src)
	}
	if diff := cmp.Diff([]string{"b4", "b3"}, renderedIDs(doc)); diff != "" {
		t.Fatalf("block order mismatch (-want +got):\n%s", diff)
	}
	if doc.Find(".pb-page__empty").Length() != 0 {
		t.Fatalf("empty state shown for a page with blocks")
	}
	if doc.Find("style").Length() != 0 {
		t.Fatalf("stylesheet inlined without WithStylesheet")
	}
}

func TestRenderPage_EmptyAndMalformed(t *testing.T) {
	var logs bytes.Buffer
	r := newRenderer(t, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	pages := map[string]blocks.PageData{
		"absent":    {ID: "p", Title: "Empty"},
		"malformed": {ID: "p", Title: "Broken", ContentBlocks: blocks.EncodedBlocks("[{not json")},
	}
	for name, page := range pages {
		out, err := r.RenderPage(testsupport.Context(), page)
		if err != nil {
			t.Fatalf("%s: render page: %v", name, err)
		}
		doc := testsupport.MustParseHTML(t, out)
		if got := strings.TrimSpace(doc.Find(".pb-page__empty").Text()); got != DefaultEmptyMessage {
			t.Fatalf("%s: expected empty state, got %q", name, got)
		}
		if doc.Find("section.pb-block").Length() != 0 {
			t.Fatalf("%s: unexpected blocks rendered", name)
		}
	}
	if !strings.Contains(logs.String(), "page blocks discarded") {
		t.Fatalf("expected diagnostic for malformed blocks, got %q", logs.String())
	}
}

func TestRenderPage_InlineStylesheet(t *testing.T) {
	r := newRenderer(t, WithStylesheet(true), WithEmptyMessage("Nothing here"))
	out, err := r.RenderPage(testsupport.Context(), blocks.PageData{Title: "T"})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	doc := testsupport.MustParseHTML(t, out)
	if !strings.Contains(doc.Find("style").Text(), ".pb-block") {
		t.Fatalf("expected inlined stylesheet")
	}
	if got := strings.TrimSpace(doc.Find(".pb-page__empty").Text()); got != "Nothing here" {
		t.Fatalf("unexpected empty message %q", got)
	}
}

func TestRenderBlock_CustomTemplateRenderer(t *testing.T) {
	var names []string
	custom := rendertemplate.TemplateFunc(func(name string, data any) (string, error) {
		names = append(names, name)
		view := data.(map[string]any)
		return "<p>" + view["id"].(string) + "</p>", nil
	})
	r := newRenderer(t, WithTemplateRenderer(custom))

	doc := renderBlockDoc(t, r, blocks.ContentBlock{ID: "q1", Type: "quote", Content: map[string]any{"text": "x"}})
	if got := doc.Find(`section.pb-block--quote p`).Text(); got != "q1" {
		t.Fatalf("custom renderer output missing, got %q", got)
	}
	if diff := cmp.Diff([]string{"blocks/quote"}, names); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererMetadata(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != "html" || !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("unexpected metadata %q %q", r.Name(), r.ContentType())
	}
}

func newRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()

	r, err := New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderBlockDoc(t *testing.T, r *Renderer, block blocks.ContentBlock) *goquery.Document {
	t.Helper()

	out, err := r.RenderBlock(testsupport.Context(), block)
	if err != nil {
		t.Fatalf("render block %q: %v", block.ID, err)
	}
	return testsupport.MustParseHTML(t, out)
}

func renderedIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("section.pb-block").Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("data-block-id", ""))
	})
	return ids
}

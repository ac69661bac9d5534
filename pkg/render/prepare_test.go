package render

import (
	"strings"
	"testing"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/google/go-cmp/cmp"
)

func TestPreparer_Prepare(t *testing.T) {
	clean := SanitizerFunc(func(string) string { return " <p>clean</p> " })
	preparer := Preparer{Sanitizer: clean, SpacerHeight: "3rem"}

	tests := []struct {
		name string
		in   blocks.Payload
		want blocks.Payload
	}{
		{
			name: "text sanitized",
			in:   blocks.Text{HTML: "<p onclick=x>dirty</p>"},
			want: blocks.Text{HTML: "<p>clean</p>"},
		},
		{
			name: "empty html untouched",
			in:   blocks.Text{Title: "T"},
			want: blocks.Text{Title: "T"},
		},
		{
			name: "section image url filtered",
			in:   blocks.Section{HTML: "x", ImageURL: "javascript:alert(1)"},
			want: blocks.Section{HTML: "<p>clean</p>"},
		},
		{
			name: "cta unsafe button dropped",
			in: blocks.CTA{
				Button:    &blocks.Link{Text: "Go", Href: "javascript:void(0)"},
				Secondary: &blocks.Link{Text: "More", Href: "/more"},
			},
			want: blocks.CTA{Secondary: &blocks.Link{Text: "More", Href: "/more"}},
		},
		{
			name: "spacer default uses configured height",
			in:   blocks.Spacer{Height: blocks.DefaultSpacerHeight},
			want: blocks.Spacer{Height: "3rem"},
		},
		{
			name: "spacer invalid height",
			in:   blocks.Spacer{Height: "calc(1px)"},
			want: blocks.Spacer{Height: "3rem"},
		},
		{
			name: "spacer valid height",
			in:   blocks.Spacer{Height: "40px"},
			want: blocks.Spacer{Height: "40px"},
		},
		{
			name: "quote untouched",
			in:   blocks.Quote{Text: "<b>hi</b>"},
			want: blocks.Quote{Text: "<b>hi</b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, preparer.Prepare(tt.in)); diff != "" {
				t.Fatalf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreparer_ZeroValue(t *testing.T) {
	got := Preparer{}.Prepare(blocks.Spacer{})
	if diff := cmp.Diff(blocks.Spacer{Height: blocks.DefaultSpacerHeight}, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	text := Preparer{}.Prepare(blocks.Text{HTML: "<script>x</script>"})
	if text.(blocks.Text).HTML != "<script>x</script>" {
		t.Fatalf("expected nil sanitizer to leave html untouched")
	}
}

func TestPreparer_MarkdownFallback(t *testing.T) {
	got := Preparer{}.Prepare(blocks.Text{Markdown: "Hello **world**"}).(blocks.Text)
	if got.HTML != "<p>Hello <strong>world</strong></p>" {
		t.Fatalf("unexpected html %q", got.HTML)
	}

	kept := Preparer{}.Prepare(blocks.Text{HTML: "<p>given</p>", Markdown: "ignored"}).(blocks.Text)
	if kept.HTML != "<p>given</p>" {
		t.Fatalf("expected html to win over markdown, got %q", kept.HTML)
	}
}

func TestMarkdownToHTML_SkipsRawHTML(t *testing.T) {
	got := MarkdownToHTML("<script>alert(1)</script>\n\n# Title")
	if got == "" || strings.Contains(got, "<script") {
		t.Fatalf("unexpected html %q", got)
	}
	if MarkdownToHTML("   ") != "" {
		t.Fatalf("expected blank source to render empty")
	}
}

package vanilla

import (
	"time"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/render"
)

type pageView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Vertical      string `json:"vertical"`
	PageType      string `json:"page_type"`
	Author        string `json:"author"`
	FeaturedImage string `json:"featured_image"`
	Published     string `json:"published"`
	PublishedISO  string `json:"published_iso"`
}

func newPageView(page blocks.PageData) pageView {
	view := pageView{
		ID:            page.ID,
		Title:         page.Title,
		Summary:       page.Summary(),
		Vertical:      page.Vertical,
		PageType:      page.PageType,
		Author:        page.Author,
		FeaturedImage: render.SafeURL(page.FeaturedImage),
	}
	if when := publishedAt(page); !when.IsZero() {
		view.Published = when.Format(publishedLayout)
		view.PublishedISO = when.Format(time.DateOnly)
	}
	return view
}

func publishedAt(page blocks.PageData) time.Time {
	if !page.PublishedAt.IsZero() {
		return page.PublishedAt.Time
	}
	return page.CreatedAt.Time
}

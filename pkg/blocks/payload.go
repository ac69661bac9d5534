package blocks

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Payload is the typed view of a block's content. Each built-in kind has its
// own variant; Unknown is the catch-all for tags nothing interprets.
type Payload interface {
	Kind() Kind
}

// Link is a call-to-action target. It is only decoded when both text and href
// are present.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

type Heading struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Text struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
	// Markdown is the source used when no HTML body is given.
	Markdown string `json:"markdown,omitempty"`
}

type Hero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Description     string `json:"description"`
	Button          *Link  `json:"button,omitempty"`
	BackgroundImage string `json:"background_image"`
}

type Image struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type Video struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	FrameTitle string `json:"frame_title"`
	Provider   string `json:"provider"`
}

type CTA struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Button      *Link  `json:"button,omitempty"`
	Secondary   *Link  `json:"secondary,omitempty"`
}

type List struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQ struct {
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

type Divider struct{}

type Spacer struct {
	Height string `json:"height"`
}

// Section is a titled HTML body with an optional side image.
type Section struct {
	Title         string `json:"title"`
	HTML          string `json:"html"`
	ImageURL      string `json:"image_url"`
	ImagePosition string `json:"image_position"`
}

// Unknown keeps the raw payload of an uninterpreted block for diagnostic
// display.
type Unknown struct {
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Content map[string]any `json:"-"`
	JSON    string         `json:"json"`
}

func (Heading) Kind() Kind { return KindHeading }
func (Text) Kind() Kind    { return KindText }
func (Hero) Kind() Kind    { return KindHero }
func (Image) Kind() Kind   { return KindImage }
func (Video) Kind() Kind   { return KindVideo }
func (CTA) Kind() Kind     { return KindCTA }
func (List) Kind() Kind    { return KindList }
func (Quote) Kind() Kind   { return KindQuote }
func (FAQ) Kind() Kind     { return KindFAQ }
func (Divider) Kind() Kind { return KindDivider }
func (Spacer) Kind() Kind  { return KindSpacer }
func (Section) Kind() Kind { return KindSection }
func (Unknown) Kind() Kind { return KindUnknown }

func DecodeHeading(b ContentBlock) Payload {
	return Heading{Title: b.Title, Text: stringField(b.Content, KeyText)}
}

func DecodeText(b ContentBlock) Payload {
	return Text{
		Title:    b.Title,
		HTML:     firstString(b.Content, KeyHTML, KeyText),
		Markdown: stringField(b.Content, KeyMarkdown),
	}
}

func DecodeHero(b ContentBlock) Payload {
	title := b.Title
	if title == "" {
		title = stringField(b.Content, KeyHeadline)
	}
	button := link(b.Content, KeyButtonText, KeyButtonLink)
	if button == nil {
		button = link(b.Content, KeyCTAText, KeyCTALink)
	}
	return Hero{
		Title:           title,
		Subtitle:        stringField(b.Content, KeySubtitle),
		Description:     stringField(b.Content, KeyDescription),
		Button:          button,
		BackgroundImage: stringField(b.Content, KeyBackgroundImage),
	}
}

func DecodeImage(b ContentBlock) Payload {
	alt := stringField(b.Content, KeyAlt)
	if alt == "" {
		alt = b.Title
	}
	if alt == "" {
		alt = "Image"
	}
	return Image{
		Title:   b.Title,
		URL:     stringField(b.Content, KeyURL),
		Alt:     alt,
		Caption: stringField(b.Content, KeyCaption),
	}
}

func DecodeVideo(b ContentBlock) Payload {
	frameTitle := b.Title
	if frameTitle == "" {
		frameTitle = "Video"
	}
	return Video{
		Title:      b.Title,
		URL:        stringField(b.Content, KeyURL),
		FrameTitle: frameTitle,
		Provider:   stringField(b.Content, KeyProvider),
	}
}

func DecodeCTA(b ContentBlock) Payload {
	title := b.Title
	if title == "" {
		title = stringField(b.Content, KeyHeadline)
	}
	button := link(b.Content, KeyButtonText, KeyButtonLink)
	if button == nil {
		button = link(b.Content, KeyPrimaryButtonText, KeyPrimaryButtonLink)
	}
	return CTA{
		Title:       title,
		Subtitle:    stringField(b.Content, KeySubtitle),
		Description: stringField(b.Content, KeyDescription),
		Button:      button,
		Secondary:   link(b.Content, KeySecondaryButtonText, KeySecondaryButtonLink),
	}
}

func DecodeList(b ContentBlock) Payload {
	var items []string
	switch raw := b.Content[KeyItems].(type) {
	case []any:
		for _, item := range raw {
			if text, ok := scalarString(item); ok {
				items = append(items, text)
			}
		}
	case []string:
		items = append(items, raw...)
	}
	return List{Title: b.Title, Items: items}
}

func DecodeQuote(b ContentBlock) Payload {
	return Quote{
		Text:   firstString(b.Content, KeyText, KeyQuote),
		Author: stringField(b.Content, KeyAuthor),
	}
}

func DecodeFAQ(b ContentBlock) Payload {
	var items []FAQItem
	appendItem := func(entry map[string]any) {
		item := FAQItem{
			Question: stringField(entry, KeyQuestion),
			Answer:   stringField(entry, KeyAnswer),
		}
		if item.Question == "" && item.Answer == "" {
			return
		}
		items = append(items, item)
	}

	switch raw := b.Content[KeyItems].(type) {
	case []any:
		for _, entry := range raw {
			if m, ok := entry.(map[string]any); ok {
				appendItem(m)
			}
		}
	case []map[string]any:
		for _, entry := range raw {
			appendItem(entry)
		}
	case nil:
		appendItem(b.Content)
	}
	return FAQ{Title: b.Title, Items: items}
}

func DecodeDivider(ContentBlock) Payload {
	return Divider{}
}

func DecodeSpacer(b ContentBlock) Payload {
	height := ""
	switch v := b.Content[KeyHeight].(type) {
	case string:
		height = v
	case float64:
		height = strconv.FormatFloat(v, 'f', -1, 64) + "px"
	case int:
		height = strconv.Itoa(v) + "px"
	case json.Number:
		height = v.String() + "px"
	}
	if height == "" {
		height = DefaultSpacerHeight
	}
	return Spacer{Height: height}
}

func DecodeSection(b ContentBlock) Payload {
	title := stringField(b.Content, KeyTitle)
	if title == "" {
		title = b.Title
	}
	position := stringField(b.Content, KeyImagePosition)
	if position != AlignRight {
		position = AlignLeft
	}
	return Section{
		Title:         title,
		HTML:          stringField(b.Content, KeyHTML),
		ImageURL:      stringField(b.Content, KeyImageURL),
		ImagePosition: position,
	}
}

// DecodeUnknown is the catch-all decoder; it never fails.
func DecodeUnknown(b ContentBlock) Payload {
	return Unknown{
		Type:    b.Type,
		Title:   b.Title,
		Content: b.Content,
		JSON:    PrettyJSON(b.Content),
	}
}

// PrettyJSON renders a payload as indented JSON with sorted keys. Values that
// cannot be encoded fall back to their Go formatting.
func PrettyJSON(content map[string]any) string {
	if content == nil {
		return "{}"
	}
	payload, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Sprint(content)
	}
	return string(payload)
}

func stringField(content map[string]any, key string) string {
	if content == nil {
		return ""
	}
	value, _ := content[key].(string)
	return value
}

func firstString(content map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := stringField(content, key); value != "" {
			return value
		}
	}
	return ""
}

func link(content map[string]any, textKey, hrefKey string) *Link {
	text := stringField(content, textKey)
	href := stringField(content, hrefKey)
	if text == "" || href == "" {
		return nil
	}
	return &Link{Text: text, Href: href}
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/editor"
	"github.com/goliatone/go-pageblocks/pkg/registry"
)

type runner struct {
	driver   PromptDriver
	settings SettingsMode
	logger   *slog.Logger
}

// Run walks the open block through a prompt session: the title, each visible
// content field, optionally the style settings, then a save confirmation.
// Unchanged answers leave the draft alone. It returns the saved block, or
// ErrCancelled when the user declines to save and ErrAborted on Ctrl+C; in
// both cases the editor is closed without touching the original block.
func Run(ctx context.Context, ed *editor.Editor, opts ...Option) (blocks.ContentBlock, error) {
	r := &runner{settings: SettingsAsk}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if ed == nil || ed.State() != editor.StateEditing {
		return blocks.ContentBlock{}, editor.ErrNotEditing
	}

	saved, err := r.run(ctx, ed)
	if err != nil {
		ed.Cancel()
		return blocks.ContentBlock{}, err
	}
	return saved, nil
}

func (r *runner) run(ctx context.Context, ed *editor.Editor) (blocks.ContentBlock, error) {
	def, _ := ed.Definition()
	draft, _ := ed.Draft()

	if err := r.driver.Info(ctx, fmt.Sprintf("Editing %s block %s", def.Label, draft.ID)); err != nil {
		return blocks.ContentBlock{}, err
	}

	title, err := r.driver.Input(ctx, InputConfig{Message: "Title", Default: draft.Title})
	if err != nil {
		return blocks.ContentBlock{}, err
	}
	if title != draft.Title {
		if err := ed.EditTitle(title); err != nil {
			return blocks.ContentBlock{}, err
		}
	}

	for _, field := range ed.Fields() {
		if err := r.promptField(ctx, ed, field, ed.EditContent); err != nil {
			return blocks.ContentBlock{}, err
		}
	}

	editSettings := r.settings == SettingsAlways
	if r.settings == SettingsAsk {
		if editSettings, err = r.driver.Confirm(ctx, ConfirmConfig{Message: "Edit style settings?"}); err != nil {
			return blocks.ContentBlock{}, err
		}
	}
	if editSettings {
		for _, field := range ed.SettingsFields() {
			if err := r.promptField(ctx, ed, field, ed.EditSetting); err != nil {
				return blocks.ContentBlock{}, err
			}
		}
	}

	if !ed.Dirty() {
		if err := r.driver.Info(ctx, "No changes."); err != nil {
			return blocks.ContentBlock{}, err
		}
	}
	save, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Save changes?", Default: true})
	if err != nil {
		return blocks.ContentBlock{}, err
	}
	if !save {
		return blocks.ContentBlock{}, ErrCancelled
	}
	return ed.Save()
}

func (r *runner) promptField(ctx context.Context, ed *editor.Editor, field editor.Field, apply func(string, any) error) error {
	current := field.Text()

	var (
		text string
		err  error
	)
	switch field.Kind {
	case registry.FieldSelect:
		labels := make([]string, len(field.Options))
		for idx, choice := range field.Options {
			labels[idx] = choice.Label
		}
		idx, selErr := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: field.OptionIndex(),
			Help:         fieldHelp(field),
		})
		if selErr != nil {
			return selErr
		}
		if idx < 0 || idx >= len(field.Options) {
			return nil
		}
		text = field.Options[idx].Value
	case registry.FieldInput:
		text, err = r.driver.Input(ctx, InputConfig{Message: field.Label, Default: current, Help: fieldHelp(field)})
	default:
		text, err = r.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: current,
			Help:    fieldHelp(field),
			Syntax:  fieldSyntax(field),
		})
	}
	if err != nil {
		return err
	}
	if text == current {
		return nil
	}

	if field.IsRaw() {
		if !ed.EditRaw(text) {
			r.logger.Debug("raw content rejected", "label", field.Label)
			return r.driver.Info(ctx, "Content is not a JSON object; keeping the previous content.")
		}
		return nil
	}

	value, err := field.Parse(text)
	if err != nil {
		r.logger.Debug("field input rejected", "key", field.Key, "error", err)
		return r.driver.Info(ctx, fmt.Sprintf("%s: %v; keeping the previous value.", field.Label, err))
	}
	return apply(field.Key, value)
}

// fieldSyntax names the content type of structured text fields; plain text
// gets none.
func fieldSyntax(field editor.Field) string {
	switch {
	case field.IsRaw(), field.Kind == registry.FieldJSON:
		return "json"
	case field.Key == blocks.KeyHTML:
		return "html"
	case field.Key == blocks.KeyMarkdown:
		return "md"
	}
	return ""
}

func fieldHelp(field editor.Field) string {
	if field.Help != "" {
		return field.Help
	}
	if field.Placeholder != "" {
		return "e.g. " + field.Placeholder
	}
	return ""
}

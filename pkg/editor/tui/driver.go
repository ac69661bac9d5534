package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig describes a single-line prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// ConfirmConfig describes a yes/no question.
type ConfirmConfig struct {
	Message string
	Default bool
}

// SelectConfig describes a choice between labelled options. Select returns
// the chosen index.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
}

// TextAreaConfig describes a multi-line prompt. Syntax ("html", "json",
// "md") hints at the content so drivers can open a matching editor.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
	Syntax  string
}

// PromptDriver is the terminal seam of the block editing flow.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// surveyDriver prompts through survey. Structured content (HTML, JSON,
// markdown) is edited in $EDITOR; plain text uses an inline multi-line
// prompt.
type surveyDriver struct {
	stdio terminal.Stdio
}

// NewSurveyDriver returns a driver bound to the process terminal.
func NewSurveyDriver() PromptDriver {
	return &surveyDriver{stdio: terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &answer)
	return answer, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var answer bool
	err := d.ask(ctx, &survey.Confirm{Message: cfg.Message, Default: cfg.Default}, &answer)
	return answer, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.DefaultIndex
	}
	var index int
	if err := d.ask(ctx, prompt, &index); err != nil {
		return -1, err
	}
	return index, nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var prompt survey.Prompt = &survey.Multiline{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}
	if cfg.Syntax != "" {
		prompt = &survey.Editor{
			Message:       cfg.Message,
			Default:       cfg.Default,
			Help:          cfg.Help,
			FileName:      "*." + cfg.Syntax,
			HideDefault:   true,
			AppendDefault: true,
		}
	}
	var answer string
	err := d.ask(ctx, prompt, &answer)
	return answer, err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out(), msg)
	return err
}

func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, answer any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, answer, survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err))
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) out() io.Writer {
	if d.stdio.Out == nil {
		return io.Discard
	}
	return d.stdio.Out
}

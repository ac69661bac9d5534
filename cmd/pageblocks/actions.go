package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/editor"
	"github.com/goliatone/go-pageblocks/pkg/editor/tui"
	"github.com/goliatone/go-pageblocks/pkg/orchestrator"
	"github.com/goliatone/go-pageblocks/pkg/pagesource"
	"github.com/urfave/cli/v2"
)

// newPromptDriver builds the terminal driver used by the edit command.
var newPromptDriver = tui.NewSurveyDriver

func renderAction(c *cli.Context) error {
	env, err := environmentFrom(c)
	if err != nil {
		return err
	}
	src, err := pagesource.Parse(c.String("page"))
	if err != nil {
		return err
	}

	render := func() error {
		output, err := env.orchestrator().Generate(c.Context, orchestrator.Request{
			Source:     src,
			Renderer:   c.String("renderer"),
			BlocksOnly: c.Bool("blocks-only"),
		})
		if err != nil {
			return err
		}
		if !strings.HasSuffix(string(output), "\n") {
			output = append(output, '\n')
		}
		return env.writeOutput(c.String("out"), output)
	}

	watch := c.Bool("watch")
	if watch && src.Kind() != pagesource.SourceKindFile {
		return fmt.Errorf("--watch needs a page file, got %s", src.Kind())
	}
	if watch && sameFile(src.Location(), c.String("out")) {
		return fmt.Errorf("--out must not be the watched page %s", src.Location())
	}
	if err := render(); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	return watchFile(c.Context, src.Location(), env.logger, render)
}

func normalizeAction(c *cli.Context) error {
	env, err := environmentFrom(c)
	if err != nil {
		return err
	}
	page, _, err := loadPage(c, env)
	if err != nil {
		return err
	}

	list := page.Blocks(
		blocks.WithLogger(env.logger),
		blocks.WithDiagnostics(func(d blocks.Diagnostic) {
			env.logger.Warn("page blocks discarded", "page_id", page.ID, "source", d.Source, "error", d.Err)
		}),
	)
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	return env.writeOutput(c.String("out"), append(data, '\n'))
}

func editAction(c *cli.Context) error {
	env, err := environmentFrom(c)
	if err != nil {
		return err
	}
	page, doc, err := loadPage(c, env)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(c.String("block"))
	list := page.Blocks(blocks.WithLogger(env.logger))
	block, ok := blocks.Find(list, id)
	if !ok {
		return fmt.Errorf("block %q not found in page %q", id, page.ID)
	}

	ed := editor.New(editor.WithRegistry(env.registry), editor.WithLogger(env.logger))
	ed.Open(&block)

	saved, err := tui.Run(c.Context, ed,
		tui.WithPromptDriver(newPromptDriver()),
		tui.WithSettings(tui.SettingsMode(c.String("settings"))),
		tui.WithLogger(env.logger),
	)
	switch {
	case errors.Is(err, tui.ErrCancelled), errors.Is(err, tui.ErrAborted):
		fmt.Fprintln(c.App.ErrWriter, "Edit discarded.")
		return nil
	case err != nil:
		return err
	}

	list, _ = blocks.Replace(list, saved)
	data, err := pagesource.Encode(page.WithBlocks(list), doc.Format())
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		src := doc.Source()
		if src == nil || src.Kind() != pagesource.SourceKindFile {
			return env.writeOutput("", data)
		}
		out = src.Location()
	}
	return env.writeOutput(out, data)
}

func typesAction(c *cli.Context) error {
	env, err := environmentFrom(c)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tLABEL\tALIASES\tFIELDS")
	for _, def := range env.registry.Definitions() {
		keys := make([]string, 0, len(def.Fields))
		for _, field := range def.Fields {
			keys = append(keys, field.Key)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Type, def.Label, strings.Join(def.Aliases, ","), strings.Join(keys, ","))
	}
	return tw.Flush()
}

func loadPage(c *cli.Context, env *environment) (blocks.PageData, pagesource.Document, error) {
	src, err := pagesource.Parse(c.String("page"))
	if err != nil {
		return blocks.PageData{}, pagesource.Document{}, err
	}
	doc, err := env.orchestrator().Load(c.Context, src)
	if err != nil {
		return blocks.PageData{}, pagesource.Document{}, err
	}
	page, err := doc.Page()
	if err != nil {
		return blocks.PageData{}, pagesource.Document{}, err
	}
	return page, doc, nil
}

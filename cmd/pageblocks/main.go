package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pageblocks: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	pageFlag := &cli.StringFlag{
		Name:     "page",
		Aliases:  []string{"p"},
		Usage:    "page document path or http(s) URL (JSON or YAML)",
		Required: true,
	}
	outFlag := &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "output file (stdout if empty)",
	}

	return &cli.App{
		Name:      "pageblocks",
		Usage:     "render and edit pages composed of content blocks",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"PAGEBLOCKS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides the configuration)",
			},
		},
		Before: func(c *cli.Context) error {
			env, err := loadEnvironment(c, stdout, stderr)
			if err != nil {
				return err
			}
			c.App.Metadata = map[string]any{environmentKey: env}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "render a page to HTML (or another registered format)",
				Flags: []cli.Flag{
					pageFlag,
					outFlag,
					&cli.StringFlag{Name: "renderer", Aliases: []string{"r"}, Usage: "renderer name: html or json", Value: "html"},
					&cli.BoolFlag{Name: "blocks-only", Usage: "render the ordered blocks without the page shell"},
					&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "render again whenever the page file changes"},
				},
				Action: renderAction,
			},
			{
				Name:   "normalize",
				Usage:  "print the page's ordered blocks as JSON",
				Flags:  []cli.Flag{pageFlag, outFlag},
				Action: normalizeAction,
			},
			{
				Name:  "edit",
				Usage: "edit one block interactively and write the page back",
				Flags: []cli.Flag{
					pageFlag,
					&cli.StringFlag{Name: "block", Aliases: []string{"b"}, Usage: "id of the block to edit", Required: true},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (defaults to the page file)"},
					&cli.StringFlag{Name: "settings", Usage: "style settings prompts: ask, always or skip", Value: "ask"},
				},
				Action: editAction,
			},
			{
				Name:   "types",
				Usage:  "list the registered block types",
				Action: typesAction,
			},
		},
	}
}

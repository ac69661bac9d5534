package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/goliatone/go-pageblocks/internal/config"
	"github.com/goliatone/go-pageblocks/internal/logging"
	"github.com/goliatone/go-pageblocks/pkg/orchestrator"
	"github.com/goliatone/go-pageblocks/pkg/pagesource"
	"github.com/goliatone/go-pageblocks/pkg/registry"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/renderers/jsonview"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
	"github.com/urfave/cli/v2"
)

const (
	environmentKey = "environment"
	httpTimeout    = 30 * time.Second
)

// environment carries the resolved configuration shared by every command.
type environment struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *registry.Registry
	stdout   io.Writer
}

func loadEnvironment(c *cli.Context, stdout, stderr io.Writer) (*environment, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: stderr,
	})
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:      cfg,
		logger:   logger,
		registry: registry.NewDefault(),
		stdout:   stdout,
	}, nil
}

func environmentFrom(c *cli.Context) (*environment, error) {
	env, ok := c.App.Metadata[environmentKey].(*environment)
	if !ok || env == nil {
		return nil, errors.New("environment not initialised")
	}
	return env, nil
}

// orchestrator builds the render pipeline from the loaded configuration.
func (env *environment) orchestrator() *orchestrator.Orchestrator {
	rc := env.cfg.Render
	scale := render.PaddingScale(rc.Padding)

	htmlOpts := []vanilla.Option{
		vanilla.WithPaddingScale(scale),
		vanilla.WithSpacerHeight(rc.SpacerHeight),
		vanilla.WithStylesheet(rc.Stylesheet),
	}
	jsonOpts := []jsonview.Option{
		jsonview.WithPaddingScale(scale),
		jsonview.WithSpacerHeight(rc.SpacerHeight),
		jsonview.WithIndent("  "),
	}
	if rc.TemplatesDir != "" {
		htmlOpts = append(htmlOpts, vanilla.WithTemplatesDir(rc.TemplatesDir))
	}
	if rc.EmptyMessage != "" {
		htmlOpts = append(htmlOpts, vanilla.WithEmptyMessage(rc.EmptyMessage))
	}
	if !rc.Sanitize {
		htmlOpts = append(htmlOpts, vanilla.WithSanitizer(nil))
		jsonOpts = append(jsonOpts, jsonview.WithSanitizer(nil))
	}

	return orchestrator.New(
		orchestrator.WithLogger(env.logger),
		orchestrator.WithBlockRegistry(env.registry),
		orchestrator.WithLoaderOptions(pagesource.WithHTTPFallback(httpTimeout)),
		orchestrator.WithHTMLOptions(htmlOpts...),
		orchestrator.WithJSONOptions(jsonOpts...),
	)
}

// writeOutput writes data to path, or to stdout when path is empty.
func (env *environment) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := env.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	env.logger.Info("output written", "path", path, "bytes", len(data))
	return nil
}

package notebookview

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jpalmerr/notebookview/config"
	"github.com/jpalmerr/notebookview/internal/render"
	"github.com/jpalmerr/notebookview/notebook"
	"github.com/jpalmerr/notebookview/page"
)

// Converter turns notebook files into standalone HTML pages.
//
// A Converter is immutable after construction and safe to reuse. Output is
// deterministic: converting the same notebook twice yields identical bytes.
type Converter struct {
	renderer     *render.Renderer
	page         config.Config
	highlightCSS string
	logger       *slog.Logger
}

// New creates a [Converter].
//
// Default settings:
//   - Page: [config.Default]
//   - Highlight style: taken from the page config
//
// Returns an error if any option is invalid or the highlight style is unknown.
func New(opts ...Option) (*Converter, error) {
	cfg := &converterConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.page == nil {
		cfg.page = config.Default()
	}
	style := cfg.page.Highlight.Style
	if cfg.style != "" {
		style = cfg.style
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	renderOpts := []render.Option{render.WithLogger(logger)}
	if style != "" {
		renderOpts = append(renderOpts, render.WithStyle(style))
	}
	if cfg.page.Highlight.Language != "" {
		renderOpts = append(renderOpts, render.WithLanguage(cfg.page.Highlight.Language))
	}
	r, err := render.New(renderOpts...)
	if err != nil {
		return nil, err
	}

	css, err := r.Stylesheet()
	if err != nil {
		return nil, err
	}

	pageCfg := *cfg.page
	pageCfg.Sections = append([]config.Section(nil), cfg.page.Sections...)

	return &Converter{
		renderer:     r,
		page:         pageCfg,
		highlightCSS: css,
		logger:       logger,
	}, nil
}

// Convert reads the notebook at path and returns the complete HTML page.
//
// Nothing is returned on failure. Errors wrap [ErrNotFound] if the file does
// not exist, [ErrParse] if it is not a valid notebook, and [ErrIO] if it
// cannot be read.
func (c *Converter) Convert(path string) (string, error) {
	nb, err := notebook.Read(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, notebook.ErrMalformed):
			return "", fmt.Errorf("%w: %s: %w", ErrParse, path, err)
		default:
			return "", fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	body, err := c.renderer.Render(nb)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf, c.content(body)); err != nil {
		return "", err
	}

	c.logger.Debug("notebook converted", "path", path, "cells", len(nb.Cells), "bytes", buf.Len())
	return buf.String(), nil
}

// ConvertFile converts the notebook at path and writes the page to outPath,
// replacing any existing file. If conversion fails nothing is written.
//
// Returns the page on success. Write failures wrap [ErrIO].
func (c *Converter) ConvertFile(path, outPath string) (string, error) {
	html, err := c.Convert(path)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("%w: failed to write output: %w", ErrIO, err)
	}

	c.logger.Info("page written", "notebook", path, "output", outPath, "bytes", len(html))
	return html, nil
}

func (c *Converter) content(body render.Body) page.Content {
	sections := make([]page.Section, len(c.page.Sections))
	for i, s := range c.page.Sections {
		sections[i] = page.Section{Heading: s.Heading, Text: s.Text}
	}
	return page.Content{
		Title:        c.page.Title,
		Heading:      c.page.Heading,
		Subtitle:     c.page.Subtitle,
		Sections:     sections,
		Body:         string(body),
		HighlightCSS: c.highlightCSS,
	}
}

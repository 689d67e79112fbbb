package notebookview

import (
	"errors"
	"log/slog"

	"github.com/jpalmerr/notebookview/config"
)

// converterConfig holds mutable state during Converter construction.
type converterConfig struct {
	page   *config.Config
	style  string
	logger *slog.Logger
}

// Option is a function that configures a [Converter] during construction.
//
// Options return an error if validation fails.
//
// Built-in options: [WithPage], [WithHighlightStyle], [WithLogger].
type Option func(*converterConfig) error

// WithPage sets the page texts and highlight settings, typically loaded with
// [config.Load]. Defaults to [config.Default].
//
// Example:
//
//	cfg, err := config.Load("page.yaml")
//	if err != nil {
//	    return err
//	}
//	conv, err := notebookview.New(notebookview.WithPage(cfg))
func WithPage(cfg *config.Config) Option {
	return func(c *converterConfig) error {
		if cfg == nil {
			return errors.New("page config cannot be nil")
		}
		c.page = cfg
		return nil
	}
}

// WithHighlightStyle overrides the syntax highlighting style of the page
// config, e.g. "monokai". [New] fails if the style is unknown.
func WithHighlightStyle(name string) Option {
	return func(c *converterConfig) error {
		if name == "" {
			return errors.New("highlight style cannot be empty")
		}
		c.style = name
		return nil
	}
}

// WithLogger sets the logger for conversion events.
//
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *converterConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// Package config provides YAML configuration for the page notebookview
// wraps around a rendered notebook.
//
// Every key is optional; anything left out keeps the built-in default, so an
// empty file yields [Default].
//
// Example configuration:
//
//	title: Sales Forecast - Q3 Review
//	heading: "📈 Sales Forecast"
//	subtitle: Quarterly model review for ${TEAM:-the data team}
//
//	sections:
//	  - heading: "📊 Hypothesis"
//	    text: Seasonality explains most of the variance.
//
//	highlight:
//	  style: monokai
//	  language: python
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the text of the document <title>.
	Title string `yaml:"title"`

	// Heading is the large heading shown in the page header.
	Heading string `yaml:"heading"`

	// Subtitle is the line shown under the heading.
	Subtitle string `yaml:"subtitle"`

	// Sections are static descriptive blocks shown above the notebook.
	Sections []Section `yaml:"sections"`

	// Highlight configures code cell syntax highlighting.
	Highlight Highlight `yaml:"highlight"`
}

// Section is a static descriptive block: a highlighted heading followed by
// a paragraph.
type Section struct {
	Heading string `yaml:"heading"`
	Text    string `yaml:"text"`
}

// Highlight configures syntax highlighting.
type Highlight struct {
	// Style is the highlight style name, e.g. "friendly" or "monokai".
	Style string `yaml:"style"`

	// Language is used when the notebook metadata names no known language.
	Language string `yaml:"language"`
}

// Default returns the built-in page configuration.
func Default() *Config {
	return &Config{
		Title:    "Olympic Medal Prediction - Athletes Analysis",
		Heading:  "🏅 Olympic Medal Prediction",
		Subtitle: "Interactive analysis and machine learning model for predicting Olympic medals",
		Sections: []Section{
			{
				Heading: "📊 Hypothesis",
				Text:    "We can predict how many medals a country will win at the Olympics by using historical data.",
			},
			{
				Heading: "📁 The Data",
				Text: "A dataset of how many medals each country won at each Olympics. " +
					"Additional data includes number of athletes, average age, and previous medal counts.",
			},
		},
		Highlight: Highlight{
			Style:    "friendly",
			Language: "python",
		},
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data on top of [Default].
//
// Environment variables are expanded in the title, heading, subtitle and
// section texts.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	fields := []struct {
		name string
		val  *string
	}{
		{"title", &c.Title},
		{"heading", &c.Heading},
		{"subtitle", &c.Subtitle},
	}
	for i := range c.Sections {
		fields = append(fields,
			struct {
				name string
				val  *string
			}{fmt.Sprintf("sections[%d].heading", i), &c.Sections[i].Heading},
			struct {
				name string
				val  *string
			}{fmt.Sprintf("sections[%d].text", i), &c.Sections[i].Text},
		)
	}

	for _, f := range fields {
		expanded, err := expandEnvVars(*f.val)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.val = expanded
	}

	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title is required")
	}

	for i, s := range c.Sections {
		if strings.TrimSpace(s.Heading) == "" {
			return fmt.Errorf("sections[%d]: heading is required", i)
		}
	}

	if c.Highlight.Style == "" {
		return fmt.Errorf("highlight.style cannot be empty")
	}

	return nil
}

// Package config loads optional YAML settings for the bookmarks tool.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/xtruder/chrome-bookmarks/internal/chrome"
	"github.com/xtruder/chrome-bookmarks/internal/render"
)

// Config represents the tool configuration.
type Config struct {
	File     string       `yaml:"file"`
	Variants []string     `yaml:"variants"`
	LogLevel slog.Level   `yaml:"log_level"`
	Color    string       `yaml:"color"`
	Export   ExportConfig `yaml:"export"`
}

// ExportConfig holds settings of the markdown export.
type ExportConfig struct {
	Output string   `yaml:"output"`
	Ignore []string `yaml:"ignore"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.File, validation.Required, validation.By(placeholderAtMostOnce)),
		validation.Field(&c.Variants, validation.Required, validation.Each(validation.Required)),
		validation.Field(&c.Color, validation.In(render.ColorAuto, render.ColorAlways, render.ColorNever)),
	); err != nil {
		return err
	}
	return c.Export.Validate()
}

// Validate validates the export configuration.
func (c *ExportConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Output, validation.Required),
	)
}

func placeholderAtMostOnce(value any) error {
	s, _ := value.(string)
	if strings.Count(s, chrome.Placeholder) > 1 {
		return fmt.Errorf("must contain %s at most once", chrome.Placeholder)
	}
	return nil
}

// Profile returns the locator settings described by the configuration.
func (c *Config) Profile() chrome.Profile {
	return chrome.Profile{Template: c.File, Variants: c.Variants}
}

// NewDefaultConfig returns the configuration for the platform goos.
func NewDefaultConfig(goos string) *Config {
	profile := chrome.DefaultProfile(goos)
	return &Config{
		File:     profile.Template,
		Variants: profile.Variants,
		LogLevel: slog.LevelInfo,
		Color:    render.ColorAuto,
		Export: ExportConfig{
			Output: "bookmarks",
		},
	}
}

// Load overlays the YAML file at filename onto target and validates the
// result. A missing file is not an error when optional is set.
func Load(filename string, target *Config, optional bool) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return target.Validate()
		}
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if err := target.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Package config provides configuration parsing for chalkboard.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the chalkboard rendering configuration.
type Config struct {
	// Render holds panel rendering settings.
	Render RenderConfig `yaml:"render"`

	// Terminal holds capability measurement settings.
	Terminal TerminalConfig `yaml:"terminal"`
}

// RenderConfig holds panel rendering settings.
type RenderConfig struct {
	// Style selects the border style: "ascii", "double", "heavy", or "minimal".
	Style string `yaml:"style"`
	// Width fixes the panel width in cells. Zero fits the terminal.
	Width int `yaml:"width"`
	// Margin is the number of columns left free when width is zero.
	Margin int `yaml:"margin"`
	// Color enables ANSI styling of titles and headings.
	Color bool `yaml:"color"`
	// VerticalPad adds a blank line above and below panel content.
	VerticalPad bool `yaml:"vertical_pad"`
}

// TerminalConfig holds capability measurement settings.
type TerminalConfig struct {
	// AmbiguousWide measures East Asian Ambiguous characters as two
	// cells, matching terminals configured for CJK locales.
	AmbiguousWide bool `yaml:"ambiguous_wide"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Style:  "double",
			Width:  0,
			Margin: 2,
			Color:  true,
		},
		Terminal: TerminalConfig{
			AmbiguousWide: false,
		},
	}
}

// DefaultPath returns the standard configuration file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chalkboard", "config.yaml")
}

// LoadConfig loads configuration from a YAML file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for logical consistency.
func (c *Config) Validate() error {
	validStyles := map[string]bool{"ascii": true, "double": true, "heavy": true, "minimal": true}
	if !validStyles[c.Render.Style] {
		return fmt.Errorf("render.style must be 'ascii', 'double', 'heavy', or 'minimal', got %q", c.Render.Style)
	}

	if c.Render.Width < 0 {
		return fmt.Errorf("render.width must be non-negative, got %d", c.Render.Width)
	}
	if c.Render.Margin < 0 {
		return fmt.Errorf("render.margin must be non-negative, got %d", c.Render.Margin)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

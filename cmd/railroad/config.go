package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abnfkit/railroad/svg"
)

// config mirrors the command-line flags so that a project can keep its
// diagram styling in a checked-in YAML file.
type config struct {
	Out        string `yaml:"out"`
	SVGFiles   bool   `yaml:"svg_files"`
	Grid       int    `yaml:"grid"`
	FontSize   int    `yaml:"font_size"`
	FontFamily string `yaml:"font_family"`
	TrackColor string `yaml:"track_color"`
	BoxFill    string `yaml:"box_fill"`
	TextColor  string `yaml:"text_color"`
}

func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) options() svg.Options {
	return svg.Options{
		GridSize:   c.Grid,
		FontSize:   c.FontSize,
		FontFamily: c.FontFamily,
		TrackColor: c.TrackColor,
		BoxFill:    c.BoxFill,
		TextColor:  c.TextColor,
	}
}

// Package config provides configuration loading and validation for slotmap.
package config

import "gonum.org/v1/plot/vg"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// InputDir is the directory scanned for timetable documents.
	InputDir string `yaml:"input_dir"`

	// Extensions are the file name suffixes treated as documents.
	// Matching is case-sensitive.
	Extensions []string `yaml:"extensions"`

	// Classifier selects the line rule set: permissive or strict.
	Classifier string `yaml:"classifier"`

	Outputs OutputsConfig `yaml:"outputs"`
	Heatmap HeatmapConfig `yaml:"heatmap"`
}

// OutputsConfig names the files written by a run.
type OutputsConfig struct {
	Image       string `yaml:"image"`
	Spreadsheet string `yaml:"spreadsheet"`
}

// HeatmapConfig controls heatmap rendering.
type HeatmapConfig struct {
	Title string `yaml:"title"`

	// Width and Height are lengths with a unit, e.g. "18in" or "30cm".
	Width  string `yaml:"width"`
	Height string `yaml:"height"`

	// parsed lengths (populated during validation)
	width  vg.Length
	height vg.Length
}

// Size returns the parsed canvas size.
func (h *HeatmapConfig) Size() (width, height vg.Length) {
	return h.width, h.height
}

package config

import (
	"os"
	"strings"

	"github.com/ccollicutt/slotmap/pkg/classify"
)

// Default values for configuration.
const (
	DefaultInputDir    = "timetables/"
	DefaultExtension   = ".pdf"
	DefaultImage       = "heatmap_example.png"
	DefaultSpreadsheet = "weekly_schedule_heatmap.xlsx"
	DefaultTitle       = "Student Presence Heatmap"
	DefaultWidth       = "18in"
	DefaultHeight      = "20in"
)

// Environment variable names.
const (
	EnvInputDir   = "SLOTMAP_INPUT_DIR"
	EnvClassifier = "SLOTMAP_CLASSIFIER"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		InputDir:   DefaultInputDir,
		Extensions: []string{DefaultExtension},
		Classifier: classify.Permissive,
		Outputs: OutputsConfig{
			Image:       DefaultImage,
			Spreadsheet: DefaultSpreadsheet,
		},
		Heatmap: HeatmapConfig{
			Title:  DefaultTitle,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if dir := strings.TrimSpace(os.Getenv(EnvInputDir)); dir != "" {
		c.InputDir = dir
	}
	if name := strings.TrimSpace(os.Getenv(EnvClassifier)); name != "" {
		c.Classifier = name
	}
}

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/slotmap/pkg/classify"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns the validated defaults (with
// environment overrides) when path is empty.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and parses the heatmap size.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.InputDir) == "" {
		return errors.New("input_dir: a directory is required")
	}

	if len(cfg.Extensions) == 0 {
		return errors.New("extensions: at least one extension is required")
	}
	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extensions[%d]: %q must start with a dot", i, ext)
		}
	}

	if _, err := classify.Lookup(cfg.Classifier); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}

	if err := validateOutputs(&cfg.Outputs); err != nil {
		return fmt.Errorf("outputs: %w", err)
	}

	if err := validateHeatmap(&cfg.Heatmap); err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}

	return nil
}

func validateOutputs(o *OutputsConfig) error {
	if o.Image == "" {
		return errors.New("image is required")
	}
	if o.Spreadsheet == "" {
		return errors.New("spreadsheet is required")
	}
	if o.Image == o.Spreadsheet {
		return fmt.Errorf("image and spreadsheet both point to %q", o.Image)
	}
	return nil
}

func validateHeatmap(h *HeatmapConfig) error {
	if h.Title == "" {
		h.Title = DefaultTitle
	}
	if h.Width == "" {
		h.Width = DefaultWidth
	}
	if h.Height == "" {
		h.Height = DefaultHeight
	}

	w, err := parseLength(h.Width)
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	hh, err := parseLength(h.Height)
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}

	h.width, h.height = w, hh
	return nil
}

func parseLength(value string) (vg.Length, error) {
	l, err := vg.ParseLength(value)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", value, err)
	}
	if l <= 0 {
		return 0, fmt.Errorf("length %q must be positive", value)
	}
	return l, nil
}

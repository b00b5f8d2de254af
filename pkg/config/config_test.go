package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot/vg"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Setenv(EnvInputDir, "")
	t.Setenv(EnvClassifier, "")

	content := `
input_dir: schedules/
extensions: [".pdf", ".txt"]
classifier: strict
outputs:
  image: out/heat.png
  spreadsheet: out/heat.xlsx
heatmap:
  title: Fall Term
  width: 30cm
  height: 12in
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.InputDir != "schedules/" {
		t.Errorf("InputDir = %q, want %q", cfg.InputDir, "schedules/")
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[1] != ".txt" {
		t.Errorf("Extensions = %v, want [.pdf .txt]", cfg.Extensions)
	}
	if cfg.Classifier != "strict" {
		t.Errorf("Classifier = %q, want strict", cfg.Classifier)
	}
	if cfg.Outputs.Image != "out/heat.png" || cfg.Outputs.Spreadsheet != "out/heat.xlsx" {
		t.Errorf("Outputs = %+v", cfg.Outputs)
	}
	if cfg.Heatmap.Title != "Fall Term" {
		t.Errorf("Title = %q, want %q", cfg.Heatmap.Title, "Fall Term")
	}

	w, h := cfg.Heatmap.Size()
	if w != 30*vg.Centimeter {
		t.Errorf("width = %v, want 30cm", w)
	}
	if h != 12*vg.Inch {
		t.Errorf("height = %v, want 12in", h)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	t.Setenv(EnvInputDir, "")
	t.Setenv(EnvClassifier, "")

	path := writeTempFile(t, "config.yaml", "input_dir: other/\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.InputDir != "other/" {
		t.Errorf("InputDir = %q, want other/", cfg.InputDir)
	}
	if cfg.Classifier != "permissive" {
		t.Errorf("Classifier = %q, want permissive", cfg.Classifier)
	}
	if cfg.Outputs.Image != DefaultImage {
		t.Errorf("Image = %q, want %q", cfg.Outputs.Image, DefaultImage)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".pdf" {
		t.Errorf("Extensions = %v, want [.pdf]", cfg.Extensions)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvInputDir, "/srv/timetables")
	t.Setenv(EnvClassifier, "strict")

	path := writeTempFile(t, "config.yaml", "input_dir: ignored/\nclassifier: permissive\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.InputDir != "/srv/timetables" {
		t.Errorf("InputDir = %q, want env override", cfg.InputDir)
	}
	if cfg.Classifier != "strict" {
		t.Errorf("Classifier = %q, want env override", cfg.Classifier)
	}
}

func TestLoad_EnvironmentInvalidClassifier(t *testing.T) {
	t.Setenv(EnvClassifier, "fuzzy")

	path := writeTempFile(t, "config.yaml", "input_dir: x/\n")
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Fatal("Load() expected error for invalid classifier from environment")
	}
	if !strings.Contains(err.Error(), "classifier") {
		t.Errorf("error %q should mention classifier", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(EnvInputDir, "")
	t.Setenv(EnvClassifier, "")

	cfg, err := LoadOrDefault(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.InputDir != DefaultInputDir {
		t.Errorf("InputDir = %q, want %q", cfg.InputDir, DefaultInputDir)
	}

	w, h := cfg.Heatmap.Size()
	if w != 18*vg.Inch || h != 20*vg.Inch {
		t.Errorf("Size() = %v x %v, want 18in x 20in", w, h)
	}

	path := writeTempFile(t, "config.yaml", "classifier: strict\n")
	cfg, err = LoadOrDefault(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadOrDefault(path) error = %v", err)
	}
	if cfg.Classifier != "strict" {
		t.Errorf("Classifier = %q, want strict", cfg.Classifier)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(*Config) {},
		},
		{
			name:    "empty input dir",
			modify:  func(c *Config) { c.InputDir = "  " },
			wantErr: "input_dir",
		},
		{
			name:    "no extensions",
			modify:  func(c *Config) { c.Extensions = nil },
			wantErr: "extensions",
		},
		{
			name:    "extension without dot",
			modify:  func(c *Config) { c.Extensions = []string{"pdf"} },
			wantErr: "extensions[0]",
		},
		{
			name:    "bare dot",
			modify:  func(c *Config) { c.Extensions = []string{".pdf", "."} },
			wantErr: "extensions[1]",
		},
		{
			name:    "unknown classifier",
			modify:  func(c *Config) { c.Classifier = "fuzzy" },
			wantErr: "classifier",
		},
		{
			name:   "empty classifier means permissive",
			modify: func(c *Config) { c.Classifier = "" },
		},
		{
			name:    "missing image",
			modify:  func(c *Config) { c.Outputs.Image = "" },
			wantErr: "outputs: image",
		},
		{
			name:    "missing spreadsheet",
			modify:  func(c *Config) { c.Outputs.Spreadsheet = "" },
			wantErr: "outputs: spreadsheet",
		},
		{
			name:    "same output file",
			modify:  func(c *Config) { c.Outputs.Spreadsheet = c.Outputs.Image },
			wantErr: "outputs",
		},
		{
			name:    "bad width",
			modify:  func(c *Config) { c.Heatmap.Width = "wide" },
			wantErr: "heatmap: width",
		},
		{
			name:    "negative height",
			modify:  func(c *Config) { c.Heatmap.Height = "-3in" },
			wantErr: "heatmap: height",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_HeatmapDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Heatmap = HeatmapConfig{}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Heatmap.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", cfg.Heatmap.Title, DefaultTitle)
	}
	if w, _ := cfg.Heatmap.Size(); w != 18*vg.Inch {
		t.Errorf("width = %v, want 18in", w)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InputDir != "timetables/" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
	if cfg.Outputs.Image != "heatmap_example.png" {
		t.Errorf("Image = %q", cfg.Outputs.Image)
	}
	if cfg.Outputs.Spreadsheet != "weekly_schedule_heatmap.xlsx" {
		t.Errorf("Spreadsheet = %q", cfg.Outputs.Spreadsheet)
	}
	if cfg.Heatmap.Title != "Student Presence Heatmap" {
		t.Errorf("Title = %q", cfg.Heatmap.Title)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

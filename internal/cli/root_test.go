package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccollicutt/slotmap/internal/pdftest"
	"github.com/ccollicutt/slotmap/pkg/config"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	if root.Use != "slotmap" {
		t.Errorf("Use = %q, want slotmap", root.Use)
	}
	if root.PersistentFlags().Lookup("log-level") == nil {
		t.Error("Missing persistent log-level flag")
	}

	want := map[string]bool{"run": false, "inspect": false, "diagnose": false, "validate": false, "version": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Missing subcommand %q", name)
		}
	}
}

func TestExecuteArgs_ExitCodes(t *testing.T) {
	t.Setenv(config.EnvInputDir, "")
	t.Setenv(config.EnvClassifier, "")

	dir := t.TempDir()
	docs := filepath.Join(dir, "timetables")
	if err := os.MkdirAll(docs, 0755); err != nil {
		t.Fatal(err)
	}
	clean := pdftest.Write(t, docs, "History.pdf", []string{"THURSDAY", "6:00 pm 7:30 pm"})
	messy := filepath.Join(dir, "messy.txt")
	if err := os.WriteFile(messy, []byte("1:00 pm 2:00 pm\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"version"}, 0},
		{"run", []string{"run", "--log-level", "error", "-q", "--input", docs,
			"--image", filepath.Join(dir, "h.png"), "--xlsx", filepath.Join(dir, "h.xlsx")}, 0},
		{"inspect clean", []string{"inspect", clean}, 0},
		{"inspect with issues", []string{"inspect", messy}, 1},
		{"unknown command", []string{"frobnicate"}, 2},
		{"bad log level", []string{"run", "--log-level", "loud", "--input", docs}, 2},
		{"run failure", []string{"run", "--input", filepath.Join(dir, "missing")}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExecuteArgs(tt.args); got != tt.want {
				t.Errorf("ExecuteArgs(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

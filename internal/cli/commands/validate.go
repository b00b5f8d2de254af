package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/slotmap/pkg/config"
	"github.com/ccollicutt/slotmap/pkg/document"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a slotmap configuration file without running.

Checks:
  - YAML syntax
  - Required fields and extension format
  - Classifier name
  - Heatmap size units
  - Input directory contents (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	width, height := cfg.Heatmap.Size()

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Input directory: %s\n", cfg.InputDir)
	fmt.Fprintf(w, "  Extensions:      %s\n", strings.Join(cfg.Extensions, ", "))
	fmt.Fprintf(w, "  Classifier:      %s\n", cfg.Classifier)
	fmt.Fprintf(w, "  Heatmap:         %s (%s x %s, %.0fx%.0fpt)\n",
		cfg.Outputs.Image, cfg.Heatmap.Width, cfg.Heatmap.Height, width.Points(), height.Points())
	fmt.Fprintf(w, "  Spreadsheet:     %s\n", cfg.Outputs.Spreadsheet)

	// Check input documents (warnings only)
	docs, err := document.Discover(cfg.InputDir, cfg.Extensions)
	if err != nil {
		fmt.Fprintf(w, "\nWarning: %v\n", err)
	} else if len(docs) == 0 {
		fmt.Fprintf(w, "\nWarning: No documents found in %s\n", cfg.InputDir)
	} else {
		fmt.Fprintf(w, "\nDocuments found: %d\n", len(docs))
		for _, d := range docs {
			fmt.Fprintf(w, "  - %s\n", d.Path)
		}
	}

	return nil
}

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/slotmap/pkg/classify"
	"github.com/ccollicutt/slotmap/pkg/config"
	"github.com/ccollicutt/slotmap/pkg/corpus"
	"github.com/ccollicutt/slotmap/pkg/document"
	"github.com/ccollicutt/slotmap/pkg/extract"
	"github.com/ccollicutt/slotmap/pkg/output"
)

// RunOptions holds command-line options for the run command.
type RunOptions struct {
	Input       string
	Image       string
	Spreadsheet string
	Classifier  string
	Output      string
	Verbose     bool
	Quiet       bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [config-file]",
		Short: "Build the weekly occupancy heatmap from timetable documents",
		Long: `Read every timetable document in the input directory, collect the
weekday time slots each program occupies, and count them over the weekly
grid (08:30 to 22:30 in 30-minute blocks, Monday to Friday).

Writes:
  - a heatmap image (default heatmap_example.png)
  - a spreadsheet with the grid and the program list
    (default weekly_schedule_heatmap.xlsx)

Without a config file the defaults are used. Flags override the config.

Exit codes:
  0 - Outputs written
  2 - Configuration or runtime error (nothing written)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "Directory of timetable documents (overrides input_dir)")
	cmd.Flags().StringVar(&opts.Image, "image", "", "Heatmap image path (overrides outputs.image)")
	cmd.Flags().StringVar(&opts.Spreadsheet, "xlsx", "", "Spreadsheet path (overrides outputs.spreadsheet)")
	cmd.Flags().StringVar(&opts.Classifier, "classifier", "", "Line rules (permissive|strict)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show the grid and extraction counters")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print only the program count")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	var configPath string
	if len(args) > 0 {
		configPath = args[0]
	}

	cfg, err := config.LoadOrDefault(ctx, configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := applyRunFlags(cfg, opts); err != nil {
		return err
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	classifier, err := classify.Lookup(cfg.Classifier)
	if err != nil {
		return err
	}

	docs, err := document.Discover(cfg.InputDir, cfg.Extensions)
	if err != nil {
		return fmt.Errorf("discovering documents: %w", err)
	}
	if len(docs) == 0 {
		log.Warn().Str("input_dir", cfg.InputDir).Strs("extensions", cfg.Extensions).
			Msg("no documents found")
	}

	start := time.Now()

	ex := extract.New(
		extract.WithClassifier(classifier),
		extract.WithLogger(log),
	)
	c, err := corpus.NewBuilder(ex, corpus.WithLogger(log)).Build(ctx, docs)
	if err != nil {
		return fmt.Errorf("building corpus: %w", err)
	}

	report := output.NewReport(c, output.Metadata{
		ConfigFile: configPath,
		InputDir:   cfg.InputDir,
		Classifier: classifier.Name(),
		AnalyzedAt: start,
	})

	width, height := cfg.Heatmap.Size()
	exports := []struct {
		exporter output.Exporter
		path     string
	}{
		{output.NewHeatmapExporter(output.HeatmapOptions{
			Title:  cfg.Heatmap.Title,
			Width:  width,
			Height: height,
		}), cfg.Outputs.Image},
		{output.NewSpreadsheetExporter(), cfg.Outputs.Spreadsheet},
	}

	for _, e := range exports {
		if err := export(ctx, log, e.exporter, report, e.path); err != nil {
			return err
		}
		report.Metadata.Outputs = append(report.Metadata.Outputs, e.path)
	}

	report.Metadata.Duration = time.Since(start)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

// applyRunFlags overrides config values with the flags that were set and
// validates the result.
func applyRunFlags(cfg *config.Config, opts *RunOptions) error {
	if opts.Input != "" {
		cfg.InputDir = opts.Input
	}
	if opts.Image != "" {
		cfg.Outputs.Image = opts.Image
	}
	if opts.Spreadsheet != "" {
		cfg.Outputs.Spreadsheet = opts.Spreadsheet
	}
	if opts.Classifier != "" {
		cfg.Classifier = opts.Classifier
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func export(ctx context.Context, log zerolog.Logger, e output.Exporter, report *output.Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := e.Export(ctx, report, path); err != nil {
		return fmt.Errorf("writing %s: %w", e.Name(), err)
	}

	log.Info().Str("kind", e.Name()).Str("path", path).Msg("output written")
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/slotmap/pkg/classify"
	"github.com/ccollicutt/slotmap/pkg/config"
	"github.com/ccollicutt/slotmap/pkg/document"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose [config-file]",
		Short: "Diagnose common setup issues",
		Long: `Diagnose common setup issues before a run.

This command checks:
- Config file syntax and structure (defaults when no file is given)
- Input directory existence
- Documents matching the configured extensions
- That every document can be opened and has readable pages

Example:
  slotmap diagnose
  slotmap diagnose -v slotmap.yaml  # verbose output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var configPath string
			if len(args) > 0 {
				configPath = args[0]
			}
			return runDiagnose(cmd.Context(), cmd.OutOrStdout(), configPath, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, configPath string, opts *DiagnoseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	results := []DiagnosticResult{}

	// 1. Check config file existence
	if configPath != "" {
		result := checkConfigExists(configPath)
		results = append(results, result)
		if result.Status == "error" {
			printDiagnostics(w, results, opts)
			return nil
		}
	}

	// 2. Parse config file
	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. Check input directory and documents
	docs, dirResults := checkInputDir(cfg)
	results = append(results, dirResults...)

	// 4. Check each document opens
	results = append(results, checkDocuments(ctx, docs, opts)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Run 'slotmap diagnose' without a file to check the defaults",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.LoadOrDefault(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to parse config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		if strings.Contains(err.Error(), "classifier") {
			result.Suggests = append(result.Suggests,
				fmt.Sprintf("Use classifier: %s or classifier: %s", classify.Permissive, classify.Strict))
		}
		return nil, result
	}

	result.Status = "ok"
	if path == "" {
		result.Message = "Using default configuration"
	} else {
		result.Message = "Config file parsed successfully"
	}
	result.Details = []string{
		fmt.Sprintf("Input directory: %s", cfg.InputDir),
		fmt.Sprintf("Extensions: %s", strings.Join(cfg.Extensions, ", ")),
		fmt.Sprintf("Classifier: %s", cfg.Classifier),
		fmt.Sprintf("Outputs: %s, %s", cfg.Outputs.Image, cfg.Outputs.Spreadsheet),
	}
	return cfg, result
}

func checkInputDir(cfg *config.Config) ([]document.Document, []DiagnosticResult) {
	dirResult := DiagnosticResult{
		Check: fmt.Sprintf("Input Directory: %s", cfg.InputDir),
	}

	info, err := os.Stat(cfg.InputDir)
	switch {
	case os.IsNotExist(err):
		dirResult.Status = "error"
		dirResult.Message = "Directory does not exist"
		dirResult.Suggests = []string{
			"Create the directory and copy the timetable documents into it",
			fmt.Sprintf("Or point input_dir (or %s) at an existing directory", config.EnvInputDir),
		}
		return nil, []DiagnosticResult{dirResult}
	case err != nil:
		dirResult.Status = "error"
		dirResult.Message = fmt.Sprintf("Cannot access directory: %v", err)
		return nil, []DiagnosticResult{dirResult}
	case !info.IsDir():
		dirResult.Status = "error"
		dirResult.Message = "Path is a file, not a directory"
		return nil, []DiagnosticResult{dirResult}
	}

	docs, err := document.Discover(cfg.InputDir, cfg.Extensions)
	if err != nil {
		dirResult.Status = "error"
		dirResult.Message = err.Error()
		return nil, []DiagnosticResult{dirResult}
	}

	if len(docs) == 0 {
		dirResult.Status = "warning"
		dirResult.Message = fmt.Sprintf("No documents with extensions %s", strings.Join(cfg.Extensions, ", "))
		dirResult.Suggests = []string{
			"Extensions are matched case-sensitively (.pdf does not match .PDF)",
			"A run with no documents writes an empty heatmap",
		}
		return nil, []DiagnosticResult{dirResult}
	}

	dirResult.Status = "ok"
	dirResult.Message = fmt.Sprintf("%d document(s) found", len(docs))
	for _, doc := range docs {
		dirResult.Details = append(dirResult.Details, doc.Name)
	}
	return docs, []DiagnosticResult{dirResult}
}

func checkDocuments(ctx context.Context, docs []document.Document, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}
	opener := document.FileOpener{}

	for _, doc := range docs {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Document: %s", doc.Name),
		}

		pager, err := opener.Open(ctx, doc)
		if err != nil {
			result.Status = "error"
			result.Message = err.Error()
			result.Suggests = []string{
				"A document that cannot be opened aborts the whole run",
				"Remove it from the input directory or replace it with a readable copy",
			}
			results = append(results, result)
			continue
		}

		pages := pager.PageCount()
		unreadable := 0
		for p := 1; p <= pages; p++ {
			if _, err := pager.PageText(ctx, p); err != nil {
				unreadable++
				if opts.Verbose {
					result.Details = append(result.Details, fmt.Sprintf("page %d: %v", p, err))
				}
			}
		}
		_ = pager.Close()

		switch {
		case pages == 0:
			result.Status = "warning"
			result.Message = "Document has no pages"
		case unreadable == pages:
			result.Status = "warning"
			result.Message = fmt.Sprintf("None of %d page(s) has readable text", pages)
			result.Suggests = []string{"Scanned documents need OCR before they can be read"}
		case unreadable > 0:
			result.Status = "warning"
			result.Message = fmt.Sprintf("%d of %d page(s) unreadable", unreadable, pages)
		default:
			result.Status = "ok"
			result.Message = fmt.Sprintf("%d page(s) readable", pages)
		}

		results = append(results, result)
	}

	return results
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== slotmap Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nSetup is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nSetup looks good!")
	}
}

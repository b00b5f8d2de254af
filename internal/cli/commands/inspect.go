package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/slotmap/pkg/classify"
	"github.com/ccollicutt/slotmap/pkg/document"
	"github.com/ccollicutt/slotmap/pkg/extract"
	"github.com/ccollicutt/slotmap/pkg/schedule"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Output     string
	Classifier string
	All        bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "Show how each line of a timetable document is read",
		Long: `Read one timetable document and show, line by line, how it was classified
and which occupancy records it produced.

Lines that are not day headers or time ranges are hidden unless --all is set.

Reported issues:
  - time ranges that could not be parsed
  - time ranges before any day header
  - day headers whose first word is not a weekday

Example:
  slotmap inspect timetables/Computer_Science.pdf
  slotmap inspect --classifier strict --all notes.txt

Exit codes:
  0 - No issues
  1 - Issues found
  2 - Document could not be read`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.Classifier, "classifier", classify.Permissive, "Line rules (permissive|strict)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Include irrelevant lines")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("document not found: %s", path)
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	classifier, err := classify.Lookup(opts.Classifier)
	if err != nil {
		return err
	}

	ex := extract.New(
		extract.WithClassifier(classifier),
		extract.WithLogger(log),
		extract.WithTrace(true),
	)

	result, err := ex.Extract(ctx, document.New(path))
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	w := cmd.OutOrStdout()
	switch opts.Output {
	case "json":
		err = outputInspectJSON(w, path, classifier.Name(), result, opts)
	case "text", "":
		err = outputInspectText(w, path, classifier.Name(), result, opts)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
	if err != nil {
		return err
	}

	if result.HasIssues() {
		ExitCode = 1
	}
	return nil
}

// inspectLine is one trace entry in JSON output.
type inspectLine struct {
	Page    int               `json:"page"`
	Line    int               `json:"line"`
	Text    string            `json:"text"`
	Kind    classify.Kind     `json:"kind"`
	Event   extract.EventKind `json:"event"`
	Token   string            `json:"token,omitempty"`
	Records []schedule.Record `json:"records,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func outputInspectJSON(w io.Writer, path, classifier string, result *extract.Result, opts *InspectOptions) error {
	out := struct {
		Document   string            `json:"document"`
		Program    string            `json:"program"`
		Classifier string            `json:"classifier"`
		Stats      extract.Stats     `json:"stats"`
		HasIssues  bool              `json:"has_issues"`
		Lines      []inspectLine     `json:"lines"`
		Records    []schedule.Record `json:"records"`
	}{
		Document:   path,
		Program:    result.Program,
		Classifier: classifier,
		Stats:      result.Stats,
		HasIssues:  result.HasIssues(),
		Lines:      []inspectLine{},
		Records:    result.Records,
	}

	for _, entry := range result.Trace {
		if !opts.All && entry.Outcome.Event == extract.EventIrrelevant {
			continue
		}
		line := inspectLine{
			Page:    entry.Line.Page,
			Line:    entry.Line.LineNum,
			Text:    entry.Line.Text,
			Kind:    entry.Outcome.Class.Kind,
			Event:   entry.Outcome.Event,
			Token:   entry.Outcome.Class.Token,
			Records: entry.Outcome.Records,
		}
		if entry.Outcome.Err != nil {
			line.Error = entry.Outcome.Err.Error()
		}
		out.Lines = append(out.Lines, line)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputInspectText(w io.Writer, path, classifier string, result *extract.Result, opts *InspectOptions) error {
	s := result.Stats

	fmt.Fprintln(w, "=== Document Inspection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Document:   %s\n", path)
	fmt.Fprintf(w, "Program:    %s\n", result.Program)
	fmt.Fprintf(w, "Classifier: %s\n", classifier)
	fmt.Fprintf(w, "Pages:      %d (%d unreadable)\n", s.Pages, s.UnreadablePages)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tEVENT\tDETAIL\tTEXT")
	for _, entry := range result.Trace {
		if !opts.All && entry.Outcome.Event == extract.EventIrrelevant {
			continue
		}
		fmt.Fprintf(tw, "%d:%d\t%s\t%s\t%s\n",
			entry.Line.Page, entry.Line.LineNum,
			entry.Outcome.Event,
			describeOutcome(entry.Outcome),
			entry.Line.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d day headers, %d time ranges, %d records\n",
		s.DayHeaders, s.TimeRanges, s.Records)

	if !result.HasIssues() {
		fmt.Fprintln(w, "No issues detected")
		return nil
	}

	fmt.Fprintf(w, "Issues: %d unparseable, %d before any day header, %d non-canonical day headers\n",
		s.ParseFailures, s.OrphanTimeRanges, s.NonCanonicalDays)
	return nil
}

func describeOutcome(o extract.Outcome) string {
	switch o.Event {
	case extract.EventDayHeader, extract.EventNonCanonicalDay:
		return o.Class.Token
	case extract.EventParseFailure:
		if o.Err != nil {
			return o.Err.Error()
		}
	case extract.EventRecords:
		if len(o.Records) == 0 {
			return "no slots"
		}
		slots := make([]string, len(o.Records))
		for i, r := range o.Records {
			slots[i] = string(r.Slot)
		}
		return fmt.Sprintf("%s %s", o.Records[0].Day, strings.Join(slots, ","))
	}
	return "-"
}

package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintf(w, "%d programs\n", report.Summary.Programs)
		return err
	}

	if _, err := fmt.Fprintf(w, "slotmap: %d programs, %d occupancy records, %d slot-day cells occupied\n",
		report.Summary.Programs,
		report.Summary.Records,
		report.Summary.Occupied); err != nil {
		return err
	}

	if !f.opts.Verbose {
		return nil
	}
	return f.formatDetails(report, w)
}

func (f *TextFormatter) formatDetails(report *Report, w io.Writer) error {
	fmt.Fprintln(w)

	if report.Grid != nil {
		if err := writeGrid(report, w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	s := report.Stats
	fmt.Fprintf(w, "Pages: %d (%d unreadable)\n", s.Pages, s.UnreadablePages)
	fmt.Fprintf(w, "Lines: %d (%d day headers, %d time ranges)\n", s.Lines, s.DayHeaders, s.TimeRanges)
	fmt.Fprintf(w, "Skipped: %d unparseable, %d before any day header\n", s.ParseFailures, s.OrphanTimeRanges)
	fmt.Fprintf(w, "Outside grid: %d records (%d non-canonical day headers)\n",
		report.Summary.Dropped, s.NonCanonicalDays)

	if peak := report.Summary.Peak; peak != nil {
		fmt.Fprintf(w, "Peak: %s %s with %d\n", peak.Day, peak.Slot, peak.Count)
	}

	if len(report.Programs) > 0 {
		fmt.Fprintf(w, "Programs: %s\n", strings.Join(report.Programs, ", "))
	}

	for _, out := range report.Metadata.Outputs {
		fmt.Fprintf(w, "Wrote: %s\n", out)
	}

	if report.Metadata.Duration > 0 {
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func writeGrid(report *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	g := report.Grid
	fmt.Fprint(tw, "Time Block\t")
	for _, day := range g.Days() {
		fmt.Fprintf(tw, "%s\t", day)
	}
	fmt.Fprintln(tw)

	rows := g.Rows()
	for i, slot := range g.Slots() {
		fmt.Fprintf(tw, "%s\t", slot)
		for _, n := range rows[i] {
			fmt.Fprintf(tw, "%d\t", n)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

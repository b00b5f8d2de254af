package output

import (
	"context"
	"encoding/json"
	"io"
)

// quietSummary is the JSON counterpart of the text formatter's one-line
// quiet output.
type quietSummary struct {
	Programs int `json:"programs"`
}

// JSONFormatter writes a report as indented JSON. In quiet mode only the
// program count is written.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns "json".
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format encodes report to w.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if f.opts.Quiet {
		return enc.Encode(quietSummary{Programs: report.Summary.Programs})
	}
	return enc.Encode(report)
}

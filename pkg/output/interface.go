package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders a report to the console in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds the grid table and extraction counters.
	Verbose bool

	// Quiet prints only the program count.
	Quiet bool
}

// Exporter writes a report to a file.
type Exporter interface {
	// Export writes the report to path, replacing any existing file.
	Export(ctx context.Context, report *Report, path string) error

	// Name returns the export kind (heatmap, spreadsheet).
	Name() string
}

// NewFormatter returns the formatter for name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "", "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("invalid output format %q (must be text or json)", name)
	}
}

// Package output renders corpus tabulations: console reports (text, JSON),
// the heatmap image and the spreadsheet export.
package output

import (
	"time"

	"github.com/ccollicutt/slotmap/pkg/corpus"
	"github.com/ccollicutt/slotmap/pkg/extract"
)

// Report is the complete output of a run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Grid is the slot by day occupancy count.
	Grid *corpus.Grid `json:"grid"`

	// Programs lists program identities in document order.
	Programs []string `json:"programs"`

	// Stats sums extraction counters over all documents.
	Stats extract.Stats `json:"stats"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	Programs int `json:"programs"`

	// Records is the number of occupancy records, including those that
	// fall outside the grid.
	Records int `json:"records"`

	// Occupied is the number of slot-day cells with a non-zero count.
	Occupied int `json:"occupied"`

	// Dropped counts records whose day or slot is outside the grid.
	Dropped int `json:"dropped"`

	ParseFailures int `json:"parse_failures"`

	// Peak is the busiest cell; nil when the grid is empty.
	Peak *corpus.Cell `json:"peak,omitempty"`
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the configuration file used, empty for defaults.
	ConfigFile string `json:"config_file,omitempty"`

	InputDir string `json:"input_dir"`

	// Classifier is the rule set name.
	Classifier string `json:"classifier"`

	// Outputs lists the files written by the run.
	Outputs []string `json:"outputs,omitempty"`

	AnalyzedAt time.Time     `json:"analyzed_at"`
	Duration   time.Duration `json:"duration"`
}

// NewReport tabulates c and builds a Report.
func NewReport(c *corpus.Corpus, meta Metadata) *Report {
	grid := c.Tabulate()

	report := &Report{
		Grid:     grid,
		Programs: c.Programs,
		Stats:    c.Stats,
		Metadata: meta,
		Summary: Summary{
			Programs:      len(c.Programs),
			Records:       len(c.Records),
			Occupied:      grid.Occupied(),
			Dropped:       grid.Dropped(),
			ParseFailures: c.Stats.ParseFailures,
		},
	}

	if peak, ok := grid.Peak(); ok {
		report.Summary.Peak = &peak
	}

	return report
}

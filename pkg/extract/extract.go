package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/slotmap/pkg/classify"
	"github.com/ccollicutt/slotmap/pkg/document"
	"github.com/ccollicutt/slotmap/pkg/schedule"
)

// Extractor reads documents and runs the line state machine over them.
type Extractor struct {
	classifier *classify.Classifier
	opener     document.Opener
	logger     zerolog.Logger
	trace      bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClassifier sets the line classifier (default: permissive).
func WithClassifier(c *classify.Classifier) Option {
	return func(e *Extractor) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithOpener sets how documents are opened (default: document.FileOpener).
func WithOpener(o document.Opener) Option {
	return func(e *Extractor) {
		if o != nil {
			e.opener = o
		}
	}
}

// WithLogger sets the logger for per-line diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// WithTrace records the outcome of every line in Result.Trace.
func WithTrace(v bool) Option {
	return func(e *Extractor) {
		e.trace = v
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		classifier: classify.NewPermissive(),
		opener:     document.FileOpener{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats counts what happened while extracting a document.
type Stats struct {
	Pages           int `json:"pages"`
	UnreadablePages int `json:"unreadable_pages"`
	Lines           int `json:"lines"`

	DayHeaders       int `json:"day_headers"`
	NonCanonicalDays int `json:"non_canonical_days"`
	TimeRanges       int `json:"time_ranges"`
	OrphanTimeRanges int `json:"orphan_time_ranges"`
	ParseFailures    int `json:"parse_failures"`
	Records          int `json:"records"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Pages += other.Pages
	s.UnreadablePages += other.UnreadablePages
	s.Lines += other.Lines
	s.DayHeaders += other.DayHeaders
	s.NonCanonicalDays += other.NonCanonicalDays
	s.TimeRanges += other.TimeRanges
	s.OrphanTimeRanges += other.OrphanTimeRanges
	s.ParseFailures += other.ParseFailures
	s.Records += other.Records
}

func (s *Stats) count(o Outcome) {
	s.Lines++
	switch o.Event {
	case EventDayHeader:
		s.DayHeaders++
	case EventNonCanonicalDay:
		s.DayHeaders++
		s.NonCanonicalDays++
	case EventOrphanTimeRange:
		s.TimeRanges++
		s.OrphanTimeRanges++
	case EventParseFailure:
		s.TimeRanges++
		s.ParseFailures++
	case EventRecords:
		s.TimeRanges++
		s.Records += len(o.Records)
	}
}

// TraceEntry pairs a line with its outcome.
type TraceEntry struct {
	Line    document.Line
	Outcome Outcome
}

// Result is the extraction output for one document.
type Result struct {
	// Program identifies the document; it is set even when no records
	// were found.
	Program string

	// Records are in page then line order.
	Records []schedule.Record

	Stats Stats

	// Trace is only filled when tracing is enabled.
	Trace []TraceEntry
}

// HasIssues reports whether any line was dropped or carried a day token
// that will not tabulate.
func (r *Result) HasIssues() bool {
	return r.Stats.ParseFailures > 0 || r.Stats.OrphanTimeRanges > 0 || r.Stats.NonCanonicalDays > 0
}

// Extract opens doc, walks its lines in order and returns its records.
// Only a failure to open the document is returned as an error; bad pages
// and unparseable lines are skipped and counted.
func (e *Extractor) Extract(ctx context.Context, doc document.Document) (*Result, error) {
	pager, err := e.opener.Open(ctx, doc)
	if err != nil {
		return nil, err
	}

	log := e.logger.With().Str("program", doc.Name).Logger()

	reader := document.NewReader(pager, document.WithPageErrorHandler(func(page int, err error) {
		log.Debug().Err(err).Int("page", page).Msg("page has no readable text")
	}))
	defer func() {
		if err := reader.Close(); err != nil {
			e.logger.Warn().Err(err).Str("document", doc.Path).Msg("closing document")
		}
	}()

	log.Debug().Str("path", doc.Path).Int("pages", pager.PageCount()).Msg("extracting document")

	result := &Result{
		Program: doc.Name,
		Stats:   Stats{Pages: pager.PageCount()},
	}

	var state State
	for {
		line, err := reader.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", doc.Path, err)
		}

		var out Outcome
		state, out = state.Step(line.Text, e.classifier)

		result.Stats.count(out)
		result.Records = append(result.Records, out.Records...)
		if e.trace {
			result.Trace = append(result.Trace, TraceEntry{Line: *line, Outcome: out})
		}

		switch out.Event {
		case EventParseFailure:
			log.Debug().Err(out.Err).Int("page", line.Page).Int("line", line.LineNum).
				Str("text", line.Text).Msg("skipping unparseable time range")
		case EventOrphanTimeRange:
			log.Debug().Int("page", line.Page).Int("line", line.LineNum).
				Str("text", line.Text).Msg("skipping time range before any day header")
		case EventNonCanonicalDay:
			log.Debug().Int("page", line.Page).Int("line", line.LineNum).
				Str("day", string(state.Day)).Msg("day header with non-canonical token")
		}
	}

	result.Stats.UnreadablePages = reader.UnreadablePages()
	if result.Stats.UnreadablePages > 0 {
		log.Debug().Int("pages", result.Stats.UnreadablePages).Msg("pages without readable text")
	}

	log.Debug().Int("records", len(result.Records)).Msg("extracted document")
	return result, nil
}

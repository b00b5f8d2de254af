// Package extract turns the lines of one timetable document into
// occupancy records.
package extract

import (
	"github.com/ccollicutt/slotmap/pkg/classify"
	"github.com/ccollicutt/slotmap/pkg/schedule"
)

// EventKind names what a line did to the extraction.
type EventKind string

const (
	// EventIrrelevant: the line was ignored.
	EventIrrelevant EventKind = "irrelevant"

	// EventDayHeader: the current day was set to a canonical weekday.
	EventDayHeader EventKind = "day_header"

	// EventNonCanonicalDay: the current day was set to a token that is not a
	// canonical weekday. Records under it never reach a grid cell.
	EventNonCanonicalDay EventKind = "non_canonical_day"

	// EventOrphanTimeRange: a time range appeared before any day header.
	EventOrphanTimeRange EventKind = "orphan_time_range"

	// EventParseFailure: a time range line could not be parsed.
	EventParseFailure EventKind = "parse_failure"

	// EventRecords: a time range was expanded into records (possibly none,
	// when the end is not after the start).
	EventRecords EventKind = "records"
)

// State is the extraction cursor for one document. The zero value has no
// current day.
type State struct {
	Day    schedule.Day
	HasDay bool
}

// Outcome describes the effect of one line.
type Outcome struct {
	Event   EventKind
	Class   classify.Result
	Records []schedule.Record

	// Err is set for EventParseFailure.
	Err error
}

// Step classifies line and returns the next state with the records the
// line produced. The receiver is not modified.
func (s State) Step(line string, c *classify.Classifier) (State, Outcome) {
	res := c.Classify(line)
	out := Outcome{Class: res}

	switch res.Kind {
	case classify.KindDayHeader:
		day := schedule.Day(res.Token)
		out.Event = EventDayHeader
		if !day.Canonical() {
			out.Event = EventNonCanonicalDay
		}
		return State{Day: day, HasDay: true}, out

	case classify.KindTimeRange:
		if !s.HasDay {
			out.Event = EventOrphanTimeRange
			return s, out
		}

		start, end, err := classify.ParseTimeRange(res.Text)
		if err != nil {
			out.Event = EventParseFailure
			out.Err = err
			return s, out
		}

		out.Event = EventRecords
		for slot := range schedule.Expand(start, end) {
			out.Records = append(out.Records, schedule.Record{Day: s.Day, Slot: slot})
		}
		return s, out

	default:
		out.Event = EventIrrelevant
		return s, out
	}
}

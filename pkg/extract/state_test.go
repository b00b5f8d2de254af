package extract

import (
	"errors"
	"slices"
	"testing"

	"github.com/ccollicutt/slotmap/pkg/classify"
	"github.com/ccollicutt/slotmap/pkg/schedule"
)

func TestState_Step(t *testing.T) {
	c := classify.NewPermissive()
	monday := State{Day: schedule.Monday, HasDay: true}

	tests := []struct {
		name      string
		state     State
		line      string
		wantState State
		wantEvent EventKind
		wantRecs  []schedule.Record
	}{
		{
			name:      "day header sets day",
			line:      "TUESDAY CLASSES",
			wantState: State{Day: schedule.Tuesday, HasDay: true},
			wantEvent: EventDayHeader,
		},
		{
			name:      "day header replaces day",
			state:     monday,
			line:      "FRIDAY",
			wantState: State{Day: schedule.Friday, HasDay: true},
			wantEvent: EventDayHeader,
		},
		{
			name:      "non-canonical token stored verbatim",
			state:     monday,
			line:      "Week-3 THURSDAY",
			wantState: State{Day: "Week-3", HasDay: true},
			wantEvent: EventNonCanonicalDay,
		},
		{
			name:      "time range emits records",
			state:     monday,
			line:      "09:00 am 10:00 am",
			wantState: monday,
			wantEvent: EventRecords,
			wantRecs:  []schedule.Record{{Day: schedule.Monday, Slot: "09:00"}, {Day: schedule.Monday, Slot: "09:30"}},
		},
		{
			name:      "time range before any day",
			line:      "09:00 am 10:00 am",
			wantEvent: EventOrphanTimeRange,
		},
		{
			name:      "unparseable time range",
			state:     monday,
			line:      "Program overview",
			wantState: monday,
			wantEvent: EventParseFailure,
		},
		{
			name:      "too few tokens",
			state:     monday,
			line:      "9:00 am",
			wantState: monday,
			wantEvent: EventParseFailure,
		},
		{
			name:      "reversed range emits nothing",
			state:     monday,
			line:      "2:00 pm 1:00 pm",
			wantState: monday,
			wantEvent: EventRecords,
		},
		{
			name:      "irrelevant line",
			state:     monday,
			line:      "Room 12",
			wantState: monday,
			wantEvent: EventIrrelevant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.state
			got, out := tt.state.Step(tt.line, c)

			if got != tt.wantState {
				t.Errorf("state = %+v, want %+v", got, tt.wantState)
			}
			if tt.state != before {
				t.Error("Step modified its receiver")
			}
			if out.Event != tt.wantEvent {
				t.Errorf("event = %s, want %s", out.Event, tt.wantEvent)
			}
			if !slices.Equal(out.Records, tt.wantRecs) {
				t.Errorf("records = %v, want %v", out.Records, tt.wantRecs)
			}
			if (out.Event == EventParseFailure) != (out.Err != nil) {
				t.Errorf("Err = %v for event %s", out.Err, out.Event)
			}
			if out.Err != nil && !errors.Is(out.Err, classify.ErrLineParse) {
				t.Errorf("Err = %v, want ErrLineParse", out.Err)
			}
		})
	}
}

func TestState_Fold(t *testing.T) {
	lines := []string{
		"8:00 am 9:00 am",
		"MONDAY",
		"9:00 am 10:00 am",
		"Room 4",
		"WEDNESDAY",
		"2:00 pm 3:15 pm",
	}

	var state State
	var records []schedule.Record
	for _, line := range lines {
		var out Outcome
		state, out = state.Step(line, classify.NewPermissive())
		records = append(records, out.Records...)
	}

	want := []schedule.Record{
		{Day: schedule.Monday, Slot: "09:00"},
		{Day: schedule.Monday, Slot: "09:30"},
		{Day: schedule.Wednesday, Slot: "14:00"},
		{Day: schedule.Wednesday, Slot: "14:30"},
		{Day: schedule.Wednesday, Slot: "15:00"},
	}
	if !slices.Equal(records, want) {
		t.Errorf("records = %v, want %v", records, want)
	}
}

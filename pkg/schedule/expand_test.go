package schedule

import (
	"slices"
	"testing"
	"time"
)

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("15:04", s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return ts
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       []Slot
	}{
		{"one hour", "09:00", "10:00", []Slot{"09:00", "09:30"}},
		{"unaligned start", "09:05", "10:05", []Slot{"09:05", "09:35"}},
		{"remainder rounds up", "09:00", "10:10", []Slot{"09:00", "09:30", "10:00"}},
		{"shorter than a slot", "13:00", "13:10", []Slot{"13:00"}},
		{"equal", "09:00", "09:00", nil},
		{"reversed", "10:00", "09:00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Expand(clock(t, tt.start), clock(t, tt.end)))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Expand(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestExpand_CountMatchesSlotCount(t *testing.T) {
	start := clock(t, "08:00")
	for minutes := -30; minutes <= 300; minutes += 7 {
		end := start.Add(time.Duration(minutes) * time.Minute)

		got := slices.Collect(Expand(start, end))
		if len(got) != SlotCount(start, end) {
			t.Fatalf("end +%dm: Expand yielded %d slots, SlotCount = %d", minutes, len(got), SlotCount(start, end))
		}

		for i, s := range got {
			want := start.Add(time.Duration(i) * SlotInterval).Format(SlotLayout)
			if string(s) != want {
				t.Errorf("end +%dm: slot %d = %s, want %s", minutes, i, s, want)
			}
		}
	}
}

func TestExpand_StopsEarly(t *testing.T) {
	var got []Slot
	for s := range Expand(clock(t, "08:00"), clock(t, "12:00")) {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}
	if len(got) != 2 {
		t.Errorf("got %d slots after break, want 2", len(got))
	}
}

func TestSlots(t *testing.T) {
	got := Slots()
	if len(got) != 29 {
		t.Fatalf("len(Slots()) = %d, want 29", len(got))
	}
	if got[0] != FirstSlot || got[len(got)-1] != LastSlot {
		t.Errorf("Slots() spans %s..%s, want %s..%s", got[0], got[len(got)-1], FirstSlot, LastSlot)
	}
	if got[1] != "09:00" {
		t.Errorf("Slots()[1] = %s, want 09:00", got[1])
	}

	// Callers get a copy.
	got[0] = "00:00"
	if Slots()[0] != FirstSlot {
		t.Error("Slots() exposes its backing array")
	}
}

func TestRecord_InGrid(t *testing.T) {
	tests := []struct {
		rec  Record
		want bool
	}{
		{Record{Monday, "08:30"}, true},
		{Record{Friday, "22:30"}, true},
		{Record{Monday, "08:00"}, false},
		{Record{Monday, "23:00"}, false},
		{Record{Monday, "09:05"}, false},
		{Record{"SATURDAY", "09:00"}, false},
		{Record{"monday", "09:00"}, false},
	}

	for _, tt := range tests {
		if got := tt.rec.InGrid(); got != tt.want {
			t.Errorf("%+v.InGrid() = %v, want %v", tt.rec, got, tt.want)
		}
	}
}

func TestDay_Canonical(t *testing.T) {
	for _, d := range Days() {
		if !d.Canonical() {
			t.Errorf("%s.Canonical() = false", d)
		}
	}
	for _, d := range []Day{"", "Monday", "WEEK", "SATURDAY"} {
		if d.Canonical() {
			t.Errorf("%q.Canonical() = true", d)
		}
	}
}

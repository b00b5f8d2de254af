// Package schedule defines the weekly slot grid and occupancy records.
package schedule

import "time"

// Day is a day label as it appears in a timetable. The extractor stores
// whatever token a day header carried, so a Day is not necessarily one of
// the canonical weekdays.
type Day string

const (
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
)

// Days returns the canonical weekdays in column order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// Canonical reports whether d is one of the five canonical weekdays.
func (d Day) Canonical() bool {
	return DayIndex(d) >= 0
}

// DayIndex returns the column of d in the grid, or -1.
func DayIndex(d Day) int {
	for i, day := range Days() {
		if day == d {
			return i
		}
	}
	return -1
}

// Slot is a 24-hour "HH:MM" label.
type Slot string

// SlotLayout is the time layout used to format slots.
const SlotLayout = "15:04"

// Grid bounds and width.
const (
	FirstSlot    Slot          = "08:30"
	LastSlot     Slot          = "22:30"
	SlotInterval time.Duration = 30 * time.Minute
)

var slots = buildSlots()

func buildSlots() []Slot {
	first, _ := time.Parse(SlotLayout, string(FirstSlot))
	last, _ := time.Parse(SlotLayout, string(LastSlot))

	var out []Slot
	for t := first; !t.After(last); t = t.Add(SlotInterval) {
		out = append(out, Slot(t.Format(SlotLayout)))
	}
	return out
}

// Slots returns the canonical slot domain in row order (08:30 through 22:30).
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// SlotIndex returns the row of s in the grid, or -1.
func SlotIndex(s Slot) int {
	for i, slot := range slots {
		if slot == s {
			return i
		}
	}
	return -1
}

// Record says a program has a class on Day during Slot. Records are
// counted, never deduplicated.
type Record struct {
	Day  Day  `json:"day"`
	Slot Slot `json:"slot"`
}

// InGrid reports whether the record falls inside the canonical grid.
func (r Record) InGrid() bool {
	return DayIndex(r.Day) >= 0 && SlotIndex(r.Slot) >= 0
}

package schedule

import (
	"iter"
	"time"
)

// Expand yields the slot labels covered by [start, end): start itself,
// then every SlotInterval after it while the cursor is before end. Slots
// are not snapped to the canonical grid, so 09:05-10:05 yields 09:05 and
// 09:35. Nothing is yielded when start is not before end.
func Expand(start, end time.Time) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		for cur := start; cur.Before(end); cur = cur.Add(SlotInterval) {
			if !yield(Slot(cur.Format(SlotLayout))) {
				return
			}
		}
	}
}

// SlotCount returns how many slots Expand yields for the interval.
func SlotCount(start, end time.Time) int {
	if !start.Before(end) {
		return 0
	}
	d := end.Sub(start)
	n := int(d / SlotInterval)
	if d%SlotInterval != 0 {
		n++
	}
	return n
}

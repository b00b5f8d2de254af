package corpus

import (
	"encoding/json"

	"gonum.org/v1/gonum/mat"

	"github.com/ccollicutt/slotmap/pkg/schedule"
)

// Grid holds occupancy counts for every canonical (slot, day) cell. Rows
// follow schedule.Slots, columns follow schedule.Days.
type Grid struct {
	slots   []schedule.Slot
	days    []schedule.Day
	counts  *mat.Dense
	dropped int
}

// Cell is one grid position and its count.
type Cell struct {
	Slot  schedule.Slot `json:"slot"`
	Day   schedule.Day  `json:"day"`
	Count int           `json:"count"`
}

// Tabulate counts records per (slot, day). Records outside the canonical
// grid are not placed in any cell; they are counted by Dropped.
func Tabulate(records []schedule.Record) *Grid {
	g := &Grid{
		slots:  schedule.Slots(),
		days:   schedule.Days(),
		counts: mat.NewDense(len(schedule.Slots()), len(schedule.Days()), nil),
	}

	for _, rec := range records {
		i, j := schedule.SlotIndex(rec.Slot), schedule.DayIndex(rec.Day)
		if i < 0 || j < 0 {
			g.dropped++
			continue
		}
		g.counts.Set(i, j, g.counts.At(i, j)+1)
	}

	return g
}

// Slots returns the row labels.
func (g *Grid) Slots() []schedule.Slot {
	return g.slots
}

// Days returns the column labels.
func (g *Grid) Days() []schedule.Day {
	return g.days
}

// Count returns the count at (slot, day), or 0 outside the grid.
func (g *Grid) Count(slot schedule.Slot, day schedule.Day) int {
	i, j := schedule.SlotIndex(slot), schedule.DayIndex(day)
	if i < 0 || j < 0 {
		return 0
	}
	return int(g.counts.At(i, j))
}

// Rows returns the counts as a slot-major integer matrix.
func (g *Grid) Rows() [][]int {
	r, c := g.counts.Dims()
	rows := make([][]int, r)
	for i := range rows {
		rows[i] = make([]int, c)
		for j := range rows[i] {
			rows[i][j] = int(g.counts.At(i, j))
		}
	}
	return rows
}

// DayTotals returns the column sums.
func (g *Grid) DayTotals() []int {
	_, c := g.counts.Dims()
	totals := make([]int, c)
	for j := range totals {
		totals[j] = int(mat.Sum(g.counts.ColView(j)))
	}
	return totals
}

// SlotTotals returns the row sums.
func (g *Grid) SlotTotals() []int {
	r, _ := g.counts.Dims()
	totals := make([]int, r)
	for i := range totals {
		totals[i] = int(mat.Sum(g.counts.RowView(i)))
	}
	return totals
}

// Total returns the number of records placed in the grid.
func (g *Grid) Total() int {
	return int(mat.Sum(g.counts))
}

// Dropped returns the number of records that matched no cell.
func (g *Grid) Dropped() int {
	return g.dropped
}

// Occupied returns the number of cells with a non-zero count.
func (g *Grid) Occupied() int {
	r, c := g.counts.Dims()
	n := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if g.counts.At(i, j) > 0 {
				n++
			}
		}
	}
	return n
}

// Max returns the largest cell count.
func (g *Grid) Max() int {
	return int(mat.Max(g.counts))
}

// Peak returns the first cell, in row order, holding the largest count.
// ok is false when the grid is empty.
func (g *Grid) Peak() (cell Cell, ok bool) {
	peak := g.Max()
	if peak == 0 {
		return Cell{}, false
	}

	r, c := g.counts.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if int(g.counts.At(i, j)) == peak {
				return Cell{Slot: g.slots[i], Day: g.days[j], Count: peak}, true
			}
		}
	}
	return Cell{}, false
}

// MarshalJSON encodes the grid with its labels.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Slots   []schedule.Slot `json:"slots"`
		Days    []schedule.Day  `json:"days"`
		Counts  [][]int         `json:"counts"`
		Dropped int             `json:"dropped"`
	}{
		Slots:   g.slots,
		Days:    g.days,
		Counts:  g.Rows(),
		Dropped: g.dropped,
	})
}

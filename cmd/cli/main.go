// slotmap - Weekly Class Occupancy Heatmaps
//
// slotmap reads program timetables and counts, for every 30-minute block of
// the teaching week, how many programs have a class in it.
package main

import (
	"os"

	"github.com/ccollicutt/slotmap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

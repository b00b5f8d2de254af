// Package classify decides what a single line of timetable text means.
//
// A line is a day header, a time range or irrelevant. The decision is made
// by named rules so that the permissive substring heuristics can be swapped
// for stricter ones without touching the extraction state machine.
package classify

import (
	"strings"

	"github.com/ccollicutt/slotmap/pkg/schedule"
)

// Rule decides whether a line belongs to one line kind.
type Rule interface {
	// Name identifies the rule in traces and configuration.
	Name() string

	// Match reports whether the line triggers the rule.
	Match(line string) bool
}

// DaySubstringRule matches lines that contain any canonical weekday as a
// case-sensitive substring, e.g. "TUESDAY CLASSES" or "WEEK-MONDAY".
type DaySubstringRule struct{}

// Name returns the rule name.
func (DaySubstringRule) Name() string { return "day-substring" }

// Match reports whether line contains a canonical weekday.
func (DaySubstringRule) Match(line string) bool {
	for _, d := range schedule.Days() {
		if strings.Contains(line, string(d)) {
			return true
		}
	}
	return false
}

// MeridiemSubstringRule matches lines containing "am" or "pm" anywhere,
// including inside words ("program", "Campus"). It over-matches on purpose:
// the extractor drops lines that then fail to parse.
type MeridiemSubstringRule struct{}

// Name returns the rule name.
func (MeridiemSubstringRule) Name() string { return "meridiem-substring" }

// Match reports whether line contains "am" or "pm".
func (MeridiemSubstringRule) Match(line string) bool {
	return strings.Contains(line, "am") || strings.Contains(line, "pm")
}

// MeridiemTokenRule matches lines whose second and fourth whitespace tokens
// are meridiem markers, which is the layout ParseTimeRange expects.
type MeridiemTokenRule struct{}

// Name returns the rule name.
func (MeridiemTokenRule) Name() string { return "meridiem-token" }

// Match reports whether line looks like "H:MM am H:MM pm ...".
func (MeridiemTokenRule) Match(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return false
	}
	return isMeridiem(fields[1]) && isMeridiem(fields[3])
}

func isMeridiem(s string) bool {
	return strings.EqualFold(s, "am") || strings.EqualFold(s, "pm")
}

package classify

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ClockLayout is the layout of a normalized clock token pair, e.g. "9:05 AM".
const ClockLayout = "3:04 PM"

// ErrLineParse is matched by every time range parse failure.
var ErrLineParse = errors.New("unparseable time range")

// ErrTooFewTokens is returned for time range lines with fewer than four
// whitespace-delimited tokens.
var ErrTooFewTokens = fmt.Errorf("%w: need at least 4 tokens", ErrLineParse)

// ParseError reports a clock value that could not be parsed.
type ParseError struct {
	// Value is the "H:MM meridiem" string that failed.
	Value string

	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing clock %q: %v", e.Value, e.Err)
}

// Unwrap exposes both ErrLineParse and the underlying time error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrLineParse, e.Err}
}

// ParseTimeRange reads the start and end clock times from a time range
// line. The first two tokens form the start ("9:00 am"), the next two form
// the end. Anything after the fourth token is ignored.
func ParseTimeRange(text string) (start, end time.Time, err error) {
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w (got %d)", ErrTooFewTokens, len(fields))
	}

	start, err = ParseClock(fields[0] + " " + fields[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err = ParseClock(fields[2] + " " + fields[3])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

// ParseClock parses "hour:minute meridiem" with a 12-hour hour and a
// case-insensitive meridiem. Hours and minutes take one or two digits, so
// "9:5 am" is 09:05. The returned time is on the zero date.
func ParseClock(value string) (time.Time, error) {
	hm, meridiem, ok := strings.Cut(value, " ")
	if !ok {
		return time.Time{}, &ParseError{Value: value, Err: errors.New("missing meridiem")}
	}
	if h, m, ok := strings.Cut(hm, ":"); ok && len(m) == 1 {
		hm = h + ":0" + m
	}

	ts, err := time.Parse(ClockLayout, hm+" "+strings.ToUpper(meridiem))
	if err != nil {
		return time.Time{}, &ParseError{Value: value, Err: err}
	}
	return ts, nil
}

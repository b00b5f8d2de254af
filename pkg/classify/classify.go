package classify

import (
	"fmt"
	"strings"
)

// Kind is the classification of a line.
type Kind string

const (
	KindIrrelevant Kind = "irrelevant"
	KindDayHeader  Kind = "day_header"
	KindTimeRange  Kind = "time_range"
)

// Rule set names accepted by Lookup.
const (
	Permissive = "permissive"
	Strict     = "strict"
)

// Result is the outcome of classifying one line.
type Result struct {
	Kind Kind

	// Token is the first whitespace-delimited word of a day header line.
	// It is not necessarily the weekday that triggered the match.
	Token string

	// Text is the line a time range was found on.
	Text string
}

// Classifier applies a day rule, then a time rule. The day rule wins when
// both match.
type Classifier struct {
	name     string
	dayRule  Rule
	timeRule Rule
}

// New creates a classifier from explicit rules.
func New(name string, dayRule, timeRule Rule) *Classifier {
	return &Classifier{name: name, dayRule: dayRule, timeRule: timeRule}
}

// NewPermissive returns the default classifier: weekday substring for day
// headers and "am"/"pm" substring for time ranges.
func NewPermissive() *Classifier {
	return New(Permissive, DaySubstringRule{}, MeridiemSubstringRule{})
}

// NewStrict returns a classifier that only treats lines with meridiem
// tokens in the start and end positions as time ranges.
func NewStrict() *Classifier {
	return New(Strict, DaySubstringRule{}, MeridiemTokenRule{})
}

// Lookup returns the classifier registered under name. An empty name
// selects the permissive classifier.
func Lookup(name string) (*Classifier, error) {
	switch name {
	case "", Permissive:
		return NewPermissive(), nil
	case Strict:
		return NewStrict(), nil
	default:
		return nil, fmt.Errorf("unknown classifier %q (must be %s or %s)", name, Permissive, Strict)
	}
}

// Name returns the rule set name.
func (c *Classifier) Name() string {
	return c.name
}

// Rules returns the day and time rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	return []Rule{c.dayRule, c.timeRule}
}

// Classify decides what line is.
func (c *Classifier) Classify(line string) Result {
	if c.dayRule.Match(line) {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return Result{Kind: KindDayHeader, Token: fields[0]}
		}
	}

	if c.timeRule.Match(line) {
		return Result{Kind: KindTimeRange, Text: line}
	}

	return Result{Kind: KindIrrelevant}
}

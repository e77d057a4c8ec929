package humantime

import (
	"fmt"
	"strings"
	"time"
)

// Errors fall into three classes. A *FormatError means the input matched
// no supported phrasing at all. Processing errors (*ClockError,
// *CalendarError, *StepError, *AnchorError) mean the input parsed but
// cannot be resolved to a real calendar value; independent processing
// errors from the date and time halves of one expression are joined with
// errors.Join rather than short-circuited. An *InternalError is a contract
// violation between the grammar and the AST builder and indicates a defect
// in this package, never bad input.

// FormatError reports input that matches no supported phrasing. The
// grammar does not localize the failure point.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot interpret %q as a time expression", e.Input)
}

// ClockError reports an out-of-range time of day.
type ClockError struct {
	Hour   int
	Minute int
	Second int
}

func (e *ClockError) Error() string {
	var bad []string
	if e.Hour > 23 {
		bad = append(bad, fmt.Sprintf("hour %d", e.Hour))
	}
	if e.Minute > 59 {
		bad = append(bad, fmt.Sprintf("minute %d", e.Minute))
	}
	if e.Second > 59 {
		bad = append(bad, fmt.Sprintf("second %d", e.Second))
	}
	if len(bad) == 0 {
		return "invalid time of day"
	}
	return "invalid time of day: " + strings.Join(bad, ", ") + " out of range"
}

// CalendarError reports a day/month/year combination that does not exist,
// such as 2023-11-31.
type CalendarError struct {
	Year  int
	Month int
	Day   int
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("no such calendar date: %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

// StepError reports a month or year step that lands on a day the target
// month does not have. Steps never clamp: subtracting one month from March
// 31 fails rather than producing February 28.
type StepError struct {
	Count int
	Unit  Unit
	From  time.Time
}

func (e *StepError) Error() string {
	plural := ""
	if e.Count != 1 {
		plural = "s"
	}
	return fmt.Sprintf("cannot step %d %s%s from %s: target month has no day %d",
		e.Count, e.Unit, plural, e.From.Format("2006-01-02"), e.From.Day())
}

// AnchorError wraps a failure resolving the nested expression of an
// "ago ... at ..." reference.
type AnchorError struct {
	Err error
}

func (e *AnchorError) Error() string {
	return "resolving anchor expression: " + e.Err.Error()
}

func (e *AnchorError) Unwrap() error { return e.Err }

// InternalError reports that the grammar matched a shape the AST builder
// does not recognize. It is never expected in correct operation.
type InternalError struct {
	Detail string
}

func (e *InternalError) Error() string {
	return "internal inconsistency: " + e.Detail
}

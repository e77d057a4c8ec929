package humantime

import (
	"errors"
	"testing"
	"time"
)

// FuzzParse feeds arbitrary input through both stages. Parse must never
// panic, and every error it returns must belong to the documented set.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"now", "today", "tomorrow", "overmorrow", "yesterday",
		"monday", "sunday",
		"this friday", "next friday", "last friday",
		"next week", "last week", "this week",
		"next week monday", "last week tuesday",
		"2022-11-07", "2022-11-07 13:25:30", "2024-02-29",
		"15 august", "15 august 2023", "15 august 18:30",
		"12:30", "15:55:25", "0:20", "25:61:99",
		"in 3 days", "in 7 months", "in 5 minutes and 30 seconds",
		"10 seconds ago", "a year ago", "an hour ago",
		"2 hours, 32 minutes and 7 seconds ago",
		"12 hours ago at 04:00", "7 days ago at 7 days ago",
		"13:25, next tuesday", "last friday at 19:45",
		"", " ", "  ", ",", ":", "-",
		"in", "ago", "at", "next", "a", "an",
		"in 3", "3 days", "next hour", "mondays",
		"2022-11", "99999999999999999999-01-01",
		"MONDAY", "ToDaY 18:30",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	ref := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

	f.Fuzz(func(t *testing.T, input string) {
		res, err := Parse(input, ref)
		if err == nil {
			_ = res.String()
			return
		}
		var (
			formatErr   *FormatError
			clockErr    *ClockError
			calErr      *CalendarError
			stepErr     *StepError
			anchorErr   *AnchorError
			internalErr *InternalError
		)
		switch {
		case errors.As(err, &formatErr),
			errors.As(err, &clockErr),
			errors.As(err, &calErr),
			errors.As(err, &stepErr),
			errors.As(err, &anchorErr):
		case errors.As(err, &internalErr):
			t.Errorf("Parse(%q) hit internal error: %v", input, err)
		default:
			t.Errorf("Parse(%q) returned undocumented error type: %v", input, err)
		}
	})
}

// Package humantime converts human-phrased time expressions into concrete
// points in time, dates, or times of day.
//
// Expressions like "last friday at 19:45", "in 3 days" or "2 hours, 32
// minutes and 7 seconds ago" are matched against a closed grammar, lowered
// into a typed syntax tree, and resolved against a caller-supplied
// reference instant. The reference instant is never read internally, so
// resolution is deterministic and testable.
//
// Two API layers are provided:
//
//   - Parse runs the whole pipeline: text in, resolved Result out.
//   - ParseExpr and Resolve split the pipeline, letting callers parse an
//     expression once and resolve it against different reference instants.
//
// The package holds no mutable state and is safe for concurrent use.
package humantime

import (
	"strings"
	"time"
)

// maxInputBytes bounds the accepted input length. The grammar is linear in
// the input, but "ago ... at ..." nests recursively, so the cap also bounds
// recursion depth.
const maxInputBytes = 1024

// Kind classifies what a resolved expression describes.
type Kind int

const (
	KindDateTime Kind = iota // a full point in time ("in 3 days", "today 18:30")
	KindDate                 // a calendar date only ("next friday")
	KindTime                 // a time of day only ("19:45")
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDateTime:
		return "datetime"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Result is a resolved time expression. Kind tells how much of At is
// meaningful: for KindDate, At is midnight of the resolved day; for
// KindTime, At carries the resolved clock on the reference instant's day.
// Midnight is not implied by a date-only result; callers that need an
// instant must combine it with a time of day themselves.
type Result struct {
	Kind Kind
	At   time.Time
}

// String formats the result according to its kind.
func (r Result) String() string {
	switch r.Kind {
	case KindDate:
		return r.At.Format("2006-01-02")
	case KindTime:
		return r.At.Format("15:04:05")
	}
	return r.At.Format("2006-01-02 15:04:05")
}

// Parse interprets a human-phrased time expression relative to now.
//
// On failure the error is one of the types in this package: *FormatError
// when the text matches no supported phrasing, processing errors
// (*ClockError, *CalendarError, *StepError, *AnchorError, possibly several
// joined) when the text parsed but cannot be resolved to a real calendar
// value, or *InternalError for a defect in this package.
func Parse(text string, now time.Time) (Result, error) {
	expr, err := ParseExpr(text)
	if err != nil {
		return Result{}, err
	}
	return Resolve(expr, now)
}

// ParseExpr matches text against the grammar and builds its syntax tree
// without resolving it. Case and surrounding whitespace are ignored; the
// grammar must consume the entire input.
func ParseExpr(text string) (Expr, error) {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" || len(norm) > maxInputBytes {
		return nil, &FormatError{Input: text}
	}
	s := &scanner{in: norm}
	root, ok := matchExpression(s)
	if !ok {
		return nil, &FormatError{Input: text}
	}
	return buildExpr(root)
}

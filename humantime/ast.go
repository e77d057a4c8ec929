package humantime

import (
	"fmt"
	"strconv"
	"time"
)

// The syntax tree is a closed set of variants: each family is an interface
// with an unexported marker method and one struct per variant. Nodes are
// immutable once built and carry no reference to the input text or the
// reference instant, so resolving one is a pure function of (node, now).

// Expr is the root of a parsed expression. Exactly one variant exists per
// parse; the grammar guarantees mutual exclusion.
type Expr interface {
	isExpr()
}

// DateTimeExpr is a date and a time of day combined, in either input order.
type DateTimeExpr struct {
	Date  Date
	Clock Clock
}

// DateExpr is a bare date expression.
type DateExpr struct {
	Date Date
}

// ClockExpr is a bare time-of-day expression.
type ClockExpr struct {
	Clock Clock
}

// InExpr applies a duration forward from the reference instant.
type InExpr struct {
	Duration Duration
}

// AgoExpr applies a duration backward. With a nil Anchor the duration is
// applied to the reference instant; otherwise Anchor is resolved first and
// the duration is applied to its result ("12 hours ago at 7 days ago").
type AgoExpr struct {
	Duration Duration
	Anchor   Expr
}

// NowExpr resolves to the reference instant unchanged.
type NowExpr struct{}

func (DateTimeExpr) isExpr() {}
func (DateExpr) isExpr()     {}
func (ClockExpr) isExpr()    {}
func (InExpr) isExpr()       {}
func (AgoExpr) isExpr()      {}
func (NowExpr) isExpr()      {}

// Date is a calendar date expression.
type Date interface {
	isDate()
}

type (
	// Today is the reference instant's day.
	Today struct{}
	// Tomorrow is one day after the reference instant.
	Tomorrow struct{}
	// Overmorrow is two days after the reference instant.
	Overmorrow struct{}
	// Yesterday is one day before the reference instant.
	Yesterday struct{}

	// IsoDate is a literal YYYY-MM-DD date. Fields are unvalidated until
	// resolution.
	IsoDate struct {
		Year  int
		Month int
		Day   int
	}

	// DayMonthYear is a "15 february 2017" date.
	DayMonthYear struct {
		Day   int
		Month time.Month
		Year  int
	}

	// DayMonth is a "15 february" date; the year comes from the
	// reference instant.
	DayMonth struct {
		Day   int
		Month time.Month
	}

	// WeekWeekday is a "next week monday" date: the Monday-anchored week
	// offset by Spec, then the weekday within that week.
	WeekWeekday struct {
		Spec Spec
		Day  Weekday
	}

	// RelativeWeekday is a "next monday" date: a weekday search from the
	// reference instant.
	RelativeWeekday struct {
		Spec Spec
		Day  Weekday
	}

	// RelativeUnit is a "next week" / "last month" date.
	RelativeUnit struct {
		Spec Spec
		Unit Unit
	}

	// UpcomingWeekday is a bare weekday name; it resolves like
	// RelativeWeekday with SpecNext.
	UpcomingWeekday struct {
		Day Weekday
	}
)

func (Today) isDate()           {}
func (Tomorrow) isDate()        {}
func (Overmorrow) isDate()      {}
func (Yesterday) isDate()       {}
func (IsoDate) isDate()         {}
func (DayMonthYear) isDate()    {}
func (DayMonth) isDate()        {}
func (WeekWeekday) isDate()     {}
func (RelativeWeekday) isDate() {}
func (RelativeUnit) isDate()    {}
func (UpcomingWeekday) isDate() {}

// Clock is a time of day. An expression without seconds builds a Clock
// with Second zero. Field ranges are checked at resolution, not here.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// Duration is an ordered, non-empty sequence of quantifiers. The order is
// the input order; application walks it in a fixed direction-dependent
// order for reproducibility.
type Duration []Quantifier

// Quantifier is a count of a calendar unit, e.g. "3 days".
type Quantifier struct {
	Count int
	Unit  Unit
}

// Spec is the this/next/last relative specifier.
type Spec int

const (
	SpecThis Spec = iota
	SpecNext
	SpecLast
)

func (sp Spec) String() string {
	switch sp {
	case SpecThis:
		return "this"
	case SpecNext:
		return "next"
	case SpecLast:
		return "last"
	}
	return "spec?"
}

// Unit is a calendar unit.
type Unit int

const (
	UnitYear Unit = iota
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
)

var unitNames = [...]string{"year", "month", "week", "day", "hour", "minute", "second"}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "unit?"
}

// Weekday is a day of the week, Monday-based. It stays independent of
// time.Weekday until the resolver converts it.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayLongNames = [...]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func (w Weekday) String() string {
	if int(w) < len(weekdayLongNames) {
		return weekdayLongNames[w]
	}
	return "weekday?"
}

// std converts to the calendar library's Sunday-based weekday.
func (w Weekday) std() time.Weekday {
	if w == Sunday {
		return time.Sunday
	}
	return time.Weekday(w + 1)
}

var unitsByName = map[string]Unit{
	"year":   UnitYear,
	"month":  UnitMonth,
	"week":   UnitWeek,
	"day":    UnitDay,
	"hour":   UnitHour,
	"minute": UnitMinute,
	"second": UnitSecond,
}

var weekdaysByName = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// buildExpr lowers a matched parse tree into the typed syntax tree. The
// builder is exhaustive over the grammar: a node shape without a case here
// is a contract violation between the two stages and surfaces as an
// *InternalError, never as a user-facing format error.
func buildExpr(n *node) (Expr, error) {
	if n.rule != ruleExpression || len(n.kids) != 1 {
		return nil, internalf("expression node with %d children", len(n.kids))
	}
	top := n.kids[0]
	switch top.rule {
	case ruleDateTime:
		return buildDateTime(top)
	case ruleDate:
		d, err := buildDate(top)
		if err != nil {
			return nil, err
		}
		return DateExpr{Date: d}, nil
	case ruleTime:
		c, err := buildClock(top)
		if err != nil {
			return nil, err
		}
		return ClockExpr{Clock: c}, nil
	case ruleIn:
		if len(top.kids) != 1 {
			return nil, internalf("in node with %d children", len(top.kids))
		}
		d, err := buildDuration(top.kids[0])
		if err != nil {
			return nil, err
		}
		return InExpr{Duration: d}, nil
	case ruleAgo:
		return buildAgo(top)
	case ruleNow:
		return NowExpr{}, nil
	}
	return nil, internalf("unexpected top-level rule %s", top.rule)
}

func buildDateTime(n *node) (Expr, error) {
	if len(n.kids) != 2 {
		return nil, internalf("datetime node with %d children", len(n.kids))
	}
	var dateNode, timeNode *node
	switch {
	case n.kids[0].rule == ruleDate && n.kids[1].rule == ruleTime:
		dateNode, timeNode = n.kids[0], n.kids[1]
	case n.kids[0].rule == ruleTime && n.kids[1].rule == ruleDate:
		dateNode, timeNode = n.kids[1], n.kids[0]
	default:
		return nil, internalf("datetime children %s, %s", n.kids[0].rule, n.kids[1].rule)
	}
	d, err := buildDate(dateNode)
	if err != nil {
		return nil, err
	}
	c, err := buildClock(timeNode)
	if err != nil {
		return nil, err
	}
	return DateTimeExpr{Date: d, Clock: c}, nil
}

func buildDate(n *node) (Date, error) {
	if len(n.kids) == 0 {
		return nil, internalf("empty date node")
	}
	first := n.kids[0]
	switch first.rule {
	case ruleToday:
		return Today{}, nil
	case ruleTomorrow:
		return Tomorrow{}, nil
	case ruleOvermorrow:
		return Overmorrow{}, nil
	case ruleYesterday:
		return Yesterday{}, nil

	case ruleIsoDate:
		if len(first.kids) != 3 {
			return nil, internalf("iso date with %d fields", len(first.kids))
		}
		y, err := buildNum(first.kids[0])
		if err != nil {
			return nil, err
		}
		mo, err := buildNum(first.kids[1])
		if err != nil {
			return nil, err
		}
		d, err := buildNum(first.kids[2])
		if err != nil {
			return nil, err
		}
		return IsoDate{Year: y, Month: mo, Day: d}, nil

	case ruleNum:
		day, err := buildNum(first)
		if err != nil {
			return nil, err
		}
		if len(n.kids) < 2 || n.kids[1].rule != ruleMonthName {
			return nil, internalf("day-month date without month name")
		}
		month, ok := monthsByName[n.kids[1].text]
		if !ok {
			return nil, internalf("unknown month name %q", n.kids[1].text)
		}
		if len(n.kids) == 3 {
			year, err := buildNum(n.kids[2])
			if err != nil {
				return nil, err
			}
			return DayMonthYear{Day: day, Month: month, Year: year}, nil
		}
		return DayMonth{Day: day, Month: month}, nil

	case ruleRelative:
		spec, err := buildSpec(first)
		if err != nil {
			return nil, err
		}
		if len(n.kids) == 3 && n.kids[1].rule == ruleWeek && n.kids[2].rule == ruleWeekday {
			wd, err := buildWeekday(n.kids[2])
			if err != nil {
				return nil, err
			}
			return WeekWeekday{Spec: spec, Day: wd}, nil
		}
		if len(n.kids) == 2 && n.kids[1].rule == ruleTimeUnit {
			u, ok := unitsByName[n.kids[1].text]
			if !ok {
				return nil, internalf("unknown time unit %q", n.kids[1].text)
			}
			return RelativeUnit{Spec: spec, Unit: u}, nil
		}
		if len(n.kids) == 2 && n.kids[1].rule == ruleWeekday {
			wd, err := buildWeekday(n.kids[1])
			if err != nil {
				return nil, err
			}
			return RelativeWeekday{Spec: spec, Day: wd}, nil
		}
		return nil, internalf("relative date with %d children", len(n.kids))

	case ruleWeekday:
		wd, err := buildWeekday(first)
		if err != nil {
			return nil, err
		}
		return UpcomingWeekday{Day: wd}, nil
	}
	return nil, internalf("unexpected date child rule %s", first.rule)
}

func buildClock(n *node) (Clock, error) {
	if len(n.kids) != 2 && len(n.kids) != 3 {
		return Clock{}, internalf("time node with %d fields", len(n.kids))
	}
	var c Clock
	var err error
	if c.Hour, err = buildNum(n.kids[0]); err != nil {
		return Clock{}, err
	}
	if c.Minute, err = buildNum(n.kids[1]); err != nil {
		return Clock{}, err
	}
	if len(n.kids) == 3 {
		if c.Second, err = buildNum(n.kids[2]); err != nil {
			return Clock{}, err
		}
	}
	return c, nil
}

func buildAgo(n *node) (Expr, error) {
	if len(n.kids) != 1 && len(n.kids) != 2 {
		return nil, internalf("ago node with %d children", len(n.kids))
	}
	d, err := buildDuration(n.kids[0])
	if err != nil {
		return nil, err
	}
	ago := AgoExpr{Duration: d}
	if len(n.kids) == 2 {
		inner, err := buildExpr(n.kids[1])
		if err != nil {
			return nil, err
		}
		ago.Anchor = inner
	}
	return ago, nil
}

func buildDuration(n *node) (Duration, error) {
	if n.rule != ruleDuration || len(n.kids) == 0 {
		return nil, internalf("empty duration node")
	}
	dur := make(Duration, 0, len(n.kids))
	for _, kid := range n.kids {
		switch kid.rule {
		case ruleQuantifier:
			if len(kid.kids) != 2 {
				return nil, internalf("quantifier with %d children", len(kid.kids))
			}
			count, err := buildNum(kid.kids[0])
			if err != nil {
				return nil, err
			}
			u, ok := unitsByName[kid.kids[1].text]
			if !ok {
				return nil, internalf("unknown time unit %q", kid.kids[1].text)
			}
			dur = append(dur, Quantifier{Count: count, Unit: u})
		case ruleSingleUnit:
			if len(kid.kids) != 1 {
				return nil, internalf("single-unit quantifier with %d children", len(kid.kids))
			}
			u, ok := unitsByName[kid.kids[0].text]
			if !ok {
				return nil, internalf("unknown time unit %q", kid.kids[0].text)
			}
			dur = append(dur, Quantifier{Count: 1, Unit: u})
		default:
			return nil, internalf("unexpected duration child rule %s", kid.rule)
		}
	}
	return dur, nil
}

func buildSpec(n *node) (Spec, error) {
	switch n.text {
	case "this":
		return SpecThis, nil
	case "next":
		return SpecNext, nil
	case "last":
		return SpecLast, nil
	}
	return 0, internalf("unknown relative specifier %q", n.text)
}

func buildWeekday(n *node) (Weekday, error) {
	wd, ok := weekdaysByName[n.text]
	if !ok {
		return 0, internalf("unknown weekday %q", n.text)
	}
	return wd, nil
}

// buildNum parses a digit run already constrained by the grammar. A
// failure here means the grammar admitted text the builder cannot read,
// which is a library defect, not bad input.
func buildNum(n *node) (int, error) {
	if n.rule != ruleNum {
		return 0, internalf("expected number, got %s", n.rule)
	}
	v, err := strconv.ParseUint(n.text, 10, 32)
	if err != nil {
		return 0, internalf("number %q out of range", n.text)
	}
	return int(v), nil
}

func internalf(format string, args ...any) *InternalError {
	return &InternalError{Detail: fmt.Sprintf(format, args...)}
}

package humantime

import (
	"errors"
	"time"
)

// Resolve evaluates a parsed expression against the reference instant now.
// Resolution is a single top-down walk with no backtracking: it either
// fully succeeds or fails with one or more collected errors. Resolving the
// same expression against the same instant twice yields identical results.
func Resolve(e Expr, now time.Time) (Result, error) {
	switch e := e.(type) {
	case NowExpr:
		return Result{Kind: KindDateTime, At: now}, nil

	case ClockExpr:
		at, err := resolveClock(e.Clock, now)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindTime, At: at}, nil

	case DateExpr:
		day, err := resolveDate(e.Date, now)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindDate, At: day}, nil

	case DateTimeExpr:
		// Resolve both halves before failing so the caller sees every
		// problem with the input in one pass.
		day, dateErr := resolveDate(e.Date, now)
		at, clockErr := resolveClock(e.Clock, now)
		if dateErr != nil || clockErr != nil {
			return Result{}, errors.Join(dateErr, clockErr)
		}
		y, m, d := day.Date()
		hh, mm, ss := at.Clock()
		return Result{
			Kind: KindDateTime,
			At:   time.Date(y, m, d, hh, mm, ss, 0, now.Location()),
		}, nil

	case InExpr:
		at, err := applyDuration(now, e.Duration, 1)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindDateTime, At: at}, nil

	case AgoExpr:
		anchor := now
		if e.Anchor != nil {
			inner, err := Resolve(e.Anchor, now)
			if err != nil {
				return Result{}, &AnchorError{Err: err}
			}
			anchor = anchorInstant(inner, now)
		}
		at, err := applyDuration(anchor, e.Duration, -1)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindDateTime, At: at}, nil
	}
	return Result{}, internalf("unexpected expression type %T", e)
}

// anchorInstant turns a nested resolution into the instant a trailing
// duration is applied to: a date-only result takes the reference instant's
// clock, a time-only result already sits on the reference instant's day,
// and a full result is used as-is.
func anchorInstant(inner Result, now time.Time) time.Time {
	if inner.Kind == KindDate {
		y, m, d := inner.At.Date()
		hh, mm, ss := now.Clock()
		return time.Date(y, m, d, hh, mm, ss, now.Nanosecond(), now.Location())
	}
	return inner.At
}

// resolveClock validates a time of day and places it on the reference
// instant's day.
func resolveClock(c Clock, now time.Time) (time.Time, error) {
	if c.Hour > 23 || c.Minute > 59 || c.Second > 59 {
		return time.Time{}, &ClockError{Hour: c.Hour, Minute: c.Minute, Second: c.Second}
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, c.Second, 0, now.Location()), nil
}

func resolveDate(d Date, now time.Time) (time.Time, error) {
	today := midnight(now)

	switch d := d.(type) {
	case Today:
		return today, nil
	case Tomorrow:
		return today.AddDate(0, 0, 1), nil
	case Overmorrow:
		return today.AddDate(0, 0, 2), nil
	case Yesterday:
		return today.AddDate(0, 0, -1), nil

	case IsoDate:
		return makeDate(d.Year, time.Month(d.Month), d.Day, now.Location())
	case DayMonthYear:
		return makeDate(d.Year, d.Month, d.Day, now.Location())
	case DayMonth:
		return makeDate(now.Year(), d.Month, d.Day, now.Location())

	case WeekWeekday:
		// Monday-anchored: locate the week by offset, then the weekday
		// by plain addition within it. No searching.
		monday := today.AddDate(0, 0, -weekIndex(now.Weekday()))
		switch d.Spec {
		case SpecNext:
			monday = monday.AddDate(0, 0, 7)
		case SpecLast:
			monday = monday.AddDate(0, 0, -7)
		}
		return monday.AddDate(0, 0, int(d.Day)), nil

	case RelativeWeekday:
		switch d.Spec {
		case SpecThis:
			if now.Weekday() == d.Day.std() {
				return today, nil
			}
			return weekdayAfter(today, d.Day), nil
		case SpecNext:
			return weekdayAfter(today, d.Day), nil
		case SpecLast:
			return weekdayBefore(today, d.Day), nil
		}

	case RelativeUnit:
		return resolveRelativeUnit(d, today)

	case UpcomingWeekday:
		return weekdayAfter(today, d.Day), nil
	}
	return time.Time{}, internalf("unexpected date type %T", d)
}

func resolveRelativeUnit(d RelativeUnit, today time.Time) (time.Time, error) {
	if d.Spec == SpecThis {
		return today, nil
	}
	sign := 1
	if d.Spec == SpecLast {
		sign = -1
	}
	switch d.Unit {
	case UnitYear:
		return stepMonths(today, sign*12, Quantifier{Count: 1, Unit: UnitYear})
	case UnitMonth:
		return stepMonths(today, sign, Quantifier{Count: 1, Unit: UnitMonth})
	case UnitWeek:
		return today.AddDate(0, 0, sign*7), nil
	case UnitDay:
		return today.AddDate(0, 0, sign), nil
	}
	// Hour/minute/second never reach the date rule; the grammar rejects them.
	return time.Time{}, internalf("relative date with unit %s", d.Unit)
}

// applyDuration applies each quantifier to t in the given direction
// (1 forward, -1 backward). Forward application walks the quantifiers in
// input order; backward application undoes a forward application, so it
// walks them in reverse. That keeps "<duration> ago" followed by
// "in <duration>" a round trip wherever month arithmetic allows.
//
// A failed step aborts the whole application; already-applied quantifiers
// are discarded.
func applyDuration(t time.Time, dur Duration, dir int) (time.Time, error) {
	for i := range dur {
		q := dur[i]
		if dir < 0 {
			q = dur[len(dur)-1-i]
		}
		var err error
		if t, err = applyQuantifier(t, q, dir); err != nil {
			return time.Time{}, err
		}
	}
	return t, nil
}

func applyQuantifier(t time.Time, q Quantifier, dir int) (time.Time, error) {
	n := dir * q.Count
	switch q.Unit {
	case UnitYear:
		return stepMonths(t, n*12, q)
	case UnitMonth:
		return stepMonths(t, n, q)
	case UnitWeek:
		return t.AddDate(0, 0, n*7), nil
	case UnitDay:
		return t.AddDate(0, 0, n), nil
	case UnitHour:
		return t.Add(time.Duration(n) * time.Hour), nil
	case UnitMinute:
		return t.Add(time.Duration(n) * time.Minute), nil
	case UnitSecond:
		return t.Add(time.Duration(n) * time.Second), nil
	}
	return time.Time{}, internalf("unexpected unit %s", q.Unit)
}

// stepMonths moves t by a number of calendar months, preserving the day of
// month. It fails when the target month has no such day; q names the
// originating quantifier in the error.
func stepMonths(t time.Time, months int, q Quantifier) (time.Time, error) {
	y, m, d := t.Date()
	total := y*12 + int(m) - 1 + months
	ty, tm := total/12, total%12
	if tm < 0 {
		tm += 12
		ty--
	}
	hh, mm, ss := t.Clock()
	stepped := time.Date(ty, time.Month(tm+1), d, hh, mm, ss, t.Nanosecond(), t.Location())
	sy, sm, sd := stepped.Date()
	if sy != ty || sm != time.Month(tm+1) || sd != d {
		return time.Time{}, &StepError{Count: q.Count, Unit: q.Unit, From: t}
	}
	return stepped, nil
}

// makeDate constructs a calendar date, failing on combinations the
// calendar does not contain. time.Date normalizes out-of-range fields, so
// validity is checked by round-tripping the components.
func makeDate(year int, month time.Month, day int, loc *time.Location) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	ty, tm, td := t.Date()
	if ty != year || tm != month || td != day {
		return time.Time{}, &CalendarError{Year: year, Month: int(month), Day: day}
	}
	return t, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekIndex is the Monday-based index of a weekday (Monday 0 .. Sunday 6).
func weekIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// weekdayAfter finds the next occurrence of target strictly after t,
// wrapping through the week: always 1 to 7 days ahead, never t itself.
func weekdayAfter(t time.Time, target Weekday) time.Time {
	delta := (weekIndex(target.std()) - weekIndex(t.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return t.AddDate(0, 0, delta)
}

// weekdayBefore finds the most recent occurrence of target strictly before
// t: always 1 to 7 days back.
func weekdayBefore(t time.Time, target Weekday) time.Time {
	delta := (weekIndex(t.Weekday()) - weekIndex(target.std()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return t.AddDate(0, 0, -delta)
}

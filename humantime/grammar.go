package humantime

import "strings"

// The grammar stage is a pure recognizer. It matches the input against the
// closed set of supported phrasings and produces a tree of rule nodes; it
// performs no semantic validation (numeric ranges and calendar validity are
// the resolver's job). The AST builder dispatches on the child rule
// sequence of each node, so every shape admitted here must have a builder
// case.

// rule identifies a grammar production.
type rule int

const (
	ruleExpression rule = iota // top-level alternation
	ruleDateTime
	ruleDate
	ruleTime
	ruleIn
	ruleAgo
	ruleNow
	ruleToday
	ruleTomorrow
	ruleOvermorrow
	ruleYesterday
	ruleIsoDate
	ruleNum
	ruleMonthName
	ruleWeek
	ruleWeekday
	ruleRelative // this / next / last
	ruleDuration
	ruleQuantifier
	ruleSingleUnit
	ruleTimeUnit
)

var ruleNames = [...]string{
	ruleExpression: "Expression",
	ruleDateTime:   "DateTime",
	ruleDate:       "Date",
	ruleTime:       "Time",
	ruleIn:         "In",
	ruleAgo:        "Ago",
	ruleNow:        "Now",
	ruleToday:      "Today",
	ruleTomorrow:   "Tomorrow",
	ruleOvermorrow: "Overmorrow",
	ruleYesterday:  "Yesterday",
	ruleIsoDate:    "IsoDate",
	ruleNum:        "Num",
	ruleMonthName:  "MonthName",
	ruleWeek:       "Week",
	ruleWeekday:    "Weekday",
	ruleRelative:   "Relative",
	ruleDuration:   "Duration",
	ruleQuantifier: "Quantifier",
	ruleSingleUnit: "SingleUnit",
	ruleTimeUnit:   "TimeUnit",
}

func (r rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "rule?"
}

// node is one matched production. Leaf nodes carry the matched text.
type node struct {
	rule rule
	text string
	kids []*node
}

func num(text string) *node { return &node{rule: ruleNum, text: text} }

// scanner walks the normalized (lowercased, trimmed) input. Alternatives
// save the position with mark and restore it with reset on failure, giving
// ordered-choice semantics.
type scanner struct {
	in  string
	pos int
}

func (s *scanner) mark() int     { return s.pos }
func (s *scanner) reset(m int)   { s.pos = m }
func (s *scanner) eof() bool     { return s.pos >= len(s.in) }
func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.in[s.pos]
}

// space consumes one or more blanks.
func (s *scanner) space() bool {
	start := s.pos
	for !s.eof() && (s.in[s.pos] == ' ' || s.in[s.pos] == '\t') {
		s.pos++
	}
	return s.pos > start
}

// lit consumes str exactly.
func (s *scanner) lit(str string) bool {
	if strings.HasPrefix(s.in[s.pos:], str) {
		s.pos += len(str)
		return true
	}
	return false
}

// boundary reports whether the scanner sits on a word boundary: end of
// input or a byte that cannot continue a word or number.
func (s *scanner) boundary() bool {
	if s.eof() {
		return true
	}
	c := s.in[s.pos]
	return !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9')
}

// keyword consumes str only when it is a whole word.
func (s *scanner) keyword(str string) bool {
	m := s.mark()
	if s.lit(str) && s.boundary() {
		return true
	}
	s.reset(m)
	return false
}

// maxDigits bounds a numeric field. Anything longer cannot be a year,
// count, or clock field, and the bound keeps every admitted number inside
// the builder's integer range.
const maxDigits = 9

// digits consumes an unsigned decimal digit run.
func (s *scanner) digits() (string, bool) {
	start := s.pos
	for !s.eof() && s.in[s.pos] >= '0' && s.in[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start || s.pos-start > maxDigits {
		s.pos = start
		return "", false
	}
	return s.in[start:s.pos], true
}

// sep consumes the separator between the date and time halves of a combined
// expression: a comma, the word "at", or plain whitespace.
func (s *scanner) sep() bool {
	m := s.mark()
	if s.lit(",") {
		s.space()
		return true
	}
	if s.space() {
		if s.lit(",") {
			s.space()
			return true
		}
		after := s.mark()
		if s.keyword("at") && s.space() {
			return true
		}
		s.reset(after)
		return true
	}
	s.reset(m)
	return false
}

// qsep consumes the separator between duration quantifiers: ", ", " and "
// or ", and ".
func (s *scanner) qsep() bool {
	m := s.mark()
	if s.lit(",") {
		s.space()
		after := s.mark()
		if s.keyword("and") {
			if s.space() {
				return true
			}
			s.reset(after)
		}
		return true
	}
	if s.space() {
		if s.keyword("and") && s.space() {
			return true
		}
	}
	s.reset(m)
	return false
}

// matchExpression matches the top-level rule: an ordered alternation over
// the supported expression shapes, consuming the rest of the input. No
// partial matches are accepted.
func matchExpression(s *scanner) (*node, bool) {
	s.space()
	alts := []func(*scanner) (*node, bool){
		matchDateTime,
		matchDate,
		matchTime,
		matchIn,
		matchAgo,
		matchNow,
	}
	for _, alt := range alts {
		m := s.mark()
		if n, ok := alt(s); ok {
			s.space()
			if s.eof() {
				return &node{rule: ruleExpression, kids: []*node{n}}, true
			}
		}
		s.reset(m)
	}
	return nil, false
}

// matchDateTime matches a date and a time of day in either order.
func matchDateTime(s *scanner) (*node, bool) {
	m := s.mark()
	if d, ok := matchDate(s); ok && s.sep() {
		if t, ok := matchTime(s); ok {
			return &node{rule: ruleDateTime, kids: []*node{d, t}}, true
		}
	}
	s.reset(m)
	if t, ok := matchTime(s); ok && s.sep() {
		if d, ok := matchDate(s); ok {
			return &node{rule: ruleDateTime, kids: []*node{t, d}}, true
		}
	}
	s.reset(m)
	return nil, false
}

var dayKeywords = []struct {
	word string
	r    rule
}{
	{"today", ruleToday},
	{"tomorrow", ruleTomorrow},
	{"overmorrow", ruleOvermorrow},
	{"yesterday", ruleYesterday},
}

func matchDate(s *scanner) (*node, bool) {
	date := func(kids ...*node) (*node, bool) {
		return &node{rule: ruleDate, kids: kids}, true
	}

	for _, kw := range dayKeywords {
		if s.keyword(kw.word) {
			return date(&node{rule: kw.r, text: kw.word})
		}
	}

	m := s.mark()

	// ISO date: NUM "-" NUM "-" NUM
	if y, ok := s.digits(); ok {
		if s.lit("-") {
			if mo, ok := s.digits(); ok && s.lit("-") {
				if d, ok := s.digits(); ok && s.boundary() {
					iso := &node{rule: ruleIsoDate, kids: []*node{num(y), num(mo), num(d)}}
					return date(iso)
				}
			}
		}
		s.reset(m)
	}

	// Day-of-month with a month name, optionally followed by a year.
	if d, ok := s.digits(); ok && s.space() {
		if mn, ok := matchMonthName(s); ok {
			after := s.mark()
			if s.space() {
				if y, ok := s.digits(); ok && s.boundary() && s.peek() != ':' {
					return date(num(d), mn, num(y))
				}
			}
			s.reset(after)
			return date(num(d), mn)
		}
	}
	s.reset(m)

	// this / next / last ...
	if rel, ok := matchRelative(s); ok && s.space() {
		afterRel := s.mark()
		if s.keyword("week") && s.space() {
			if wd, ok := matchWeekday(s); ok {
				return date(rel, &node{rule: ruleWeek, text: "week"}, wd)
			}
		}
		s.reset(afterRel)
		if u, ok := matchTimeUnit(s, dateUnits); ok {
			return date(rel, u)
		}
		if wd, ok := matchWeekday(s); ok {
			return date(rel, wd)
		}
	}
	s.reset(m)

	// Bare weekday.
	if wd, ok := matchWeekday(s); ok {
		return date(wd)
	}
	s.reset(m)
	return nil, false
}

// matchTime matches HH:MM and HH:MM:SS. Field ranges are not checked here.
func matchTime(s *scanner) (*node, bool) {
	m := s.mark()
	if h, ok := s.digits(); ok && s.lit(":") {
		if mi, ok := s.digits(); ok {
			kids := []*node{num(h), num(mi)}
			after := s.mark()
			if s.lit(":") {
				if sec, ok := s.digits(); ok {
					kids = append(kids, num(sec))
				} else {
					s.reset(after)
				}
			}
			if s.boundary() {
				return &node{rule: ruleTime, kids: kids}, true
			}
		}
	}
	s.reset(m)
	return nil, false
}

func matchIn(s *scanner) (*node, bool) {
	m := s.mark()
	if s.keyword("in") && s.space() {
		if d, ok := matchDuration(s); ok {
			return &node{rule: ruleIn, kids: []*node{d}}, true
		}
	}
	s.reset(m)
	return nil, false
}

// matchAgo matches "<duration> ago", optionally anchored by a nested
// expression after "at". The nested expression extends to the end of the
// input, so recursion is bounded by input length.
func matchAgo(s *scanner) (*node, bool) {
	m := s.mark()
	if d, ok := matchDuration(s); ok && s.space() && s.keyword("ago") {
		after := s.mark()
		if s.space() && s.keyword("at") && s.space() {
			if inner, ok := matchExpression(s); ok {
				return &node{rule: ruleAgo, kids: []*node{d, inner}}, true
			}
		}
		s.reset(after)
		return &node{rule: ruleAgo, kids: []*node{d}}, true
	}
	s.reset(m)
	return nil, false
}

func matchNow(s *scanner) (*node, bool) {
	if s.keyword("now") {
		return &node{rule: ruleNow, text: "now"}, true
	}
	return nil, false
}

// matchDuration matches a comma/"and"-separated quantifier list, or a
// single unit preceded by "a"/"an" (a count of one).
func matchDuration(s *scanner) (*node, bool) {
	m := s.mark()
	if q, ok := matchQuantifier(s); ok {
		kids := []*node{q}
		for {
			before := s.mark()
			if !s.qsep() {
				break
			}
			next, ok := matchQuantifier(s)
			if !ok {
				s.reset(before)
				break
			}
			kids = append(kids, next)
		}
		return &node{rule: ruleDuration, kids: kids}, true
	}
	s.reset(m)

	if s.keyword("an") || s.keyword("a") {
		if s.space() {
			if u, ok := matchTimeUnit(s, allUnits); ok {
				single := &node{rule: ruleSingleUnit, kids: []*node{u}}
				return &node{rule: ruleDuration, kids: []*node{single}}, true
			}
		}
		s.reset(m)
	}
	return nil, false
}

func matchQuantifier(s *scanner) (*node, bool) {
	m := s.mark()
	if n, ok := s.digits(); ok && s.space() {
		if u, ok := matchTimeUnit(s, allUnits); ok {
			return &node{rule: ruleQuantifier, kids: []*node{num(n), u}}, true
		}
	}
	s.reset(m)
	return nil, false
}

var (
	// Hour/minute/second are valid duration units but not valid "this/
	// next/last" units, so the date rule matches against the short list.
	dateUnits = []string{"year", "month", "week", "day"}
	allUnits  = []string{"year", "month", "week", "day", "hour", "minute", "second"}
)

// matchTimeUnit matches a unit name with an optional plural "s". The node
// text is the singular form.
func matchTimeUnit(s *scanner, units []string) (*node, bool) {
	for _, u := range units {
		m := s.mark()
		if s.lit(u) {
			s.lit("s")
			if s.boundary() {
				return &node{rule: ruleTimeUnit, text: u}, true
			}
			s.reset(m)
		}
	}
	return nil, false
}

func matchRelative(s *scanner) (*node, bool) {
	for _, w := range []string{"this", "next", "last"} {
		if s.keyword(w) {
			return &node{rule: ruleRelative, text: w}, true
		}
	}
	return nil, false
}

var weekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func matchWeekday(s *scanner) (*node, bool) {
	for _, w := range weekdayNames {
		if s.keyword(w) {
			return &node{rule: ruleWeekday, text: w}, true
		}
	}
	return nil, false
}

// monthNames lists full names first so "march" wins over "mar" and the
// node carries the longest match.
var monthNames = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
}

func matchMonthName(s *scanner) (*node, bool) {
	for _, mo := range monthNames {
		if s.keyword(mo) {
			return &node{rule: ruleMonthName, text: mo}, true
		}
	}
	return nil, false
}

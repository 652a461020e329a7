package timeutil

import "strconv"

// rule is one entry of an ordered, first-match-wins table. render receives
// the delta and a thunk that produces the calendar fallback.
type rule struct {
	name   string
	kind   Kind
	match  func(delta int64) bool
	render func(delta int64, absolute func() string) string
}

func text(s string) func(int64, func() string) string {
	return func(int64, func() string) string { return s }
}

func count(unit int64, suffix string, convert func(a, b int64) int64) func(int64, func() string) string {
	return func(delta int64, _ func() string) string {
		return strconv.FormatInt(convert(delta, unit), 10) + suffix
	}
}

func absolute(_ int64, abs func() string) string { return abs() }

// ceilDiv and floorDiv divide rounding toward +inf and -inf.
func ceilDiv(a, b int64) int64 { return -floorDiv(-a, b) }

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// elapsed is the positive number of units in a negative delta.
func elapsed(delta, unit int64) int64 { return -ceilDiv(delta, unit) }

// pastRules apply when delta < 0. Note there is no "weeks ago" bucket.
var pastRules = []rule{
	{"past-absolute", KindAbsolute, func(d int64) bool { return -d > week }, absolute},
	{"days-ago", KindPast, func(d int64) bool { return -d > 2*day }, count(day, " days ago", elapsed)},
	{"yesterday", KindPast, func(d int64) bool { return -d > day }, text("yesterday")},
	{"hours-ago", KindPast, func(d int64) bool { return -d > hour }, count(hour, " hours ago", elapsed)},
	{"minutes-ago", KindPast, func(d int64) bool { return -d > 2*minute }, count(minute, " minutes ago", elapsed)},
	{"a-minute-ago", KindPast, func(d int64) bool { return -d > minute }, text("a minutes ago")},
	{"seconds-ago", KindPast, func(d int64) bool { return -d > 30 }, func(d int64, _ func() string) string {
		return strconv.FormatInt(-d, 10) + " seconds ago"
	}},
	{"just-now-past", KindNow, func(int64) bool { return true }, text("just now")},
}

// futureRules apply when delta >= 0.
var futureRules = []rule{
	{"just-now", KindNow, func(d int64) bool { return d < 30 }, text("just now")},
	{"seconds", KindFuture, func(d int64) bool { return d < minute }, func(d int64, _ func() string) string {
		return strconv.FormatInt(d, 10) + " seconds"
	}},
	{"a-minute", KindFuture, func(d int64) bool { return d < 2*minute }, text("a minute")},
	{"minutes", KindFuture, func(d int64) bool { return d < hour }, count(minute, " minutes", floorDiv)},
	{"an-hour", KindFuture, func(d int64) bool { return floorDiv(d, hour) == 1 }, text("an hour")},
	{"hours", KindFuture, func(d int64) bool { return d < day }, count(hour, " hours", floorDiv)},
	{"tomorrow", KindFuture, func(d int64) bool { return d < 2*day }, text("tomorrow")},
	{"days", KindFuture, func(d int64) bool { return d < week }, count(day, " days", floorDiv)},
	{"a-week", KindFuture, func(d int64) bool { return floorDiv(d, week) == 1 }, text("a week")},
	{"future-absolute", KindAbsolute, func(int64) bool { return true }, absolute},
}

// RuleFor reports the name of the rule that a delta (in seconds) selects.
// The names are stable and meant for logs and diagnostics.
func RuleFor(delta int64) string {
	table := futureRules
	if delta < 0 {
		table = pastRules
	}
	for _, r := range table {
		if r.match(delta) {
			return r.name
		}
	}
	return ""
}

package timeutil

import (
	"fmt"
	"math"
	"time"

	"github.com/ahmetb/reldate/internal/datefmt"
)

// Time constants in seconds. month and year are not used for bucket
// selection; anything past a week falls back to a calendar date.
const (
	minute int64 = 60
	hour         = 60 * minute
	day          = 24 * hour
	week         = 7 * day
	month        = 30 * day
	year         = 365 * day
)

// Default fallback patterns, picked by display width when the caller
// supplies none.
const (
	NarrowPattern = "dd MMM. yyyy" // 29 Jan. 2015
	WidePattern   = "dd MMMM yyyy" // 29 January 2015
)

// Invalid is the label returned for input that cannot be read as a time.
const Invalid = "Invalid date"

// Kind classifies a Label by the rule that produced it.
type Kind int

const (
	KindNow Kind = iota
	KindPast
	KindFuture
	KindAbsolute
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNow:
		return "now"
	case KindPast:
		return "past"
	case KindFuture:
		return "future"
	case KindAbsolute:
		return "absolute"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Label is a formatted relative time along with the delta (target - now, in
// whole seconds) it was computed from.
type Label struct {
	Text  string
	Kind  Kind
	Delta int64
}

// Options are the per-call formatting hints.
type Options struct {
	// FallbackPattern is the calendar pattern used once the delta leaves
	// the relative window. Empty means pick one based on Width.
	FallbackPattern string
	// Width is the display width hint used to pick a default pattern.
	Width Width
	// SnapToEndOfDay pins the target's time of day to 23:59:59 before
	// computing deltas.
	SnapToEndOfDay bool
}

// DateFunc renders t using a calendar pattern.
type DateFunc func(t time.Time, pattern string) string

// Formatter turns instants into relative labels. The zero value is not
// usable, construct one with New. A Formatter is safe for concurrent use.
type Formatter struct {
	formatDate    DateFunc
	narrowPattern string
	widePattern   string
}

// FormatterOption customizes a Formatter.
type FormatterOption func(*Formatter)

// WithDateFunc replaces the calendar formatting routine used for fallback
// labels.
func WithDateFunc(fn DateFunc) FormatterOption {
	return func(f *Formatter) { f.formatDate = fn }
}

// WithDefaultPatterns sets the fallback patterns used when a call does not
// supply one. Empty values keep the built-in defaults.
func WithDefaultPatterns(narrow, wide string) FormatterOption {
	return func(f *Formatter) {
		if narrow != "" {
			f.narrowPattern = narrow
		}
		if wide != "" {
			f.widePattern = wide
		}
	}
}

// New returns a Formatter that renders fallback dates with datefmt.
func New(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		formatDate:    datefmt.Format,
		narrowPattern: NarrowPattern,
		widePattern:   WidePattern,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

var defaultFormatter = New()

// Format returns the relative label for target as seen from now, using the
// default Formatter.
//
//	Format(now.Add(-3*time.Hour), now, Options{}) // "3 hours ago"
//	Format(now.Add(36*time.Hour), now, Options{}) // "tomorrow"
func Format(target, now time.Time, opts Options) string {
	return defaultFormatter.Describe(target, now, opts).Text
}

// Describe is like Format but returns the full Label.
func Describe(target, now time.Time, opts Options) Label {
	return defaultFormatter.Describe(target, now, opts)
}

// Format returns the relative label for target as seen from now.
func (f *Formatter) Format(target, now time.Time, opts Options) string {
	return f.Describe(target, now, opts).Text
}

// Describe computes the delta between target and now and runs it through the
// past or future rule table. Calendar arithmetic (midnight truncation, end of
// day) happens in now's location.
func (f *Formatter) Describe(target, now time.Time, opts Options) Label {
	target = target.In(now.Location())
	if opts.SnapToEndOfDay {
		target = endOfDay(target)
	}
	delta := deltaSeconds(target, now)

	if delta > day && delta < week {
		// Between one and seven days ahead the time of day is noise, compare
		// calendar dates instead.
		target = startOfDay(target)
		if opts.SnapToEndOfDay {
			target = endOfDay(target)
		}
		delta = deltaSeconds(target, now)
	}

	pattern := opts.FallbackPattern
	if pattern == "" {
		pattern = f.defaultPattern(opts.Width)
	}

	table := futureRules
	if delta < 0 {
		table = pastRules
	}
	for _, r := range table {
		if r.match(delta) {
			return Label{
				Text:  r.render(delta, func() string { return f.formatDate(target, pattern) }),
				Kind:  r.kind,
				Delta: delta,
			}
		}
	}
	// The last rule of each table always matches.
	panic(fmt.Sprintf("timeutil: no rule matched delta %d", delta))
}

func (f *Formatter) defaultPattern(w Width) string {
	if w == WidthNarrow {
		return f.narrowPattern
	}
	return f.widePattern
}

// deltaSeconds returns round((target - now) in seconds), rounding halves up.
// It works on Unix seconds so instants centuries apart, beyond the range of
// time.Duration, still give the exact delta.
func deltaSeconds(target, now time.Time) int64 {
	secs := target.Unix() - now.Unix()
	frac := float64(target.Nanosecond()-now.Nanosecond()) / float64(time.Second)
	return secs + int64(math.Floor(frac+0.5))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

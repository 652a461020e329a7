package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTime is wrapped by the errors Parse returns.
var ErrInvalidTime = errors.New("invalid time")

// epochMillisThreshold separates epoch seconds from epoch milliseconds:
// 1e11 seconds is in the year 5138, 1e11 milliseconds is March 1973.
const epochMillisThreshold = 100_000_000_000

// localLayouts carry no zone offset and are read in the reference location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parse reads s as an instant. It accepts integer epoch offsets (seconds, or
// milliseconds for magnitudes of 1e11 and above), RFC 3339 timestamps with
// optional fractional seconds, and zone-less date/time forms which are
// interpreted in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromEpoch(n), nil
	}
	return ParseCalendar(s, loc)
}

// ParseCalendar is like Parse but does not accept epoch offsets.
func ParseCalendar(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidTime)
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

func fromEpoch(n int64) time.Time {
	if n >= epochMillisThreshold || n <= -epochMillisThreshold {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}

// FormatText parses text in now's location and formats it with the default
// Formatter. Unparseable text yields Invalid.
func FormatText(text string, now time.Time, opts Options) string {
	return defaultFormatter.DescribeText(text, now, opts).Text
}

// DescribeText is like FormatText but returns the full Label.
func DescribeText(text string, now time.Time, opts Options) Label {
	return defaultFormatter.DescribeText(text, now, opts)
}

// DescribeText parses text in now's location and describes it. Unparseable
// text yields a Label with Kind KindInvalid and Text Invalid.
func (f *Formatter) DescribeText(text string, now time.Time, opts Options) Label {
	t, err := Parse(text, now.Location())
	if err != nil {
		return Label{Text: Invalid, Kind: KindInvalid}
	}
	return f.Describe(t, now, opts)
}

package datefmt

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2015, 1, 29, 14, 5, 9, 123_000_000, time.FixedZone("", -7*3600))

	cases := []struct {
		pattern  string
		expected string
	}{
		{"dd MMMM yyyy", "29 January 2015"},
		{"dd MMM. yyyy", "29 Jan. 2015"},
		{"yyyy-MM-dd", "2015-01-29"},
		{"d/M/yy", "29/1/15"},
		{"y", "2015"},
		{"EEEE", "Thursday"},
		{"EEE, d LLLL", "Thu, 29 January"},
		{"HH:mm:ss.sss", "14:05:09.123"},
		{"H:m:s", "14:5:9"},
		{"hh:mm a", "02:05 PM"},
		{"h a", "2 PM"},
		{"Z", "-0700"},
		{"'week' ww", "week 05"},
		{"w", "5"},
		{"yyyy-MM-ddTHH:mm", "2015-01-29T14:05"},
		{"dd 'of' MMMM", "29 of January"},
		{"h 'o''clock'", "2 o'clock"},
		{"''dd''", "'29'"},
		{"'unterminated", "unterminated"},
		{"yyy", "152015"},
		{"medium", "Jan 29, 2015 2:05:09 PM"},
		{"short", "1/29/15 2:05 PM"},
		{"fullDate", "Thursday, January 29, 2015"},
		{"longDate", "January 29, 2015"},
		{"mediumDate", "Jan 29, 2015"},
		{"shortDate", "1/29/15"},
		{"mediumTime", "2:05:09 PM"},
		{"shortTime", "2:05 PM"},
		{"", "Jan 29, 2015"},
	}
	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(ts, tc.pattern))
		})
	}
}

func TestFormat_Midnight12Hour(t *testing.T) {
	ts := time.Date(2015, 1, 29, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, "12:30 AM", Format(ts, "hh:mm a"))
}

func TestFormat_TwoDigitYearBeforeYear1000(t *testing.T) {
	ts := time.Date(907, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "04/03/07", Format(ts, "dd/MM/yy"))
}

func TestFormat_MillisecondsPadded(t *testing.T) {
	ts := time.Date(2015, 1, 29, 14, 5, 9, 7_000_000, time.UTC)
	assert.Equal(t, "09.007", Format(ts, "ss.sss"))
}

func TestFormat_LiteralGoLayoutTokens(t *testing.T) {
	// Characters meaningful to time.Format must come out as-is.
	ts := time.Date(2015, 1, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2006 Jan _2 29", Format(ts, "'2006 Jan _2' d"))
}

func TestCompile(t *testing.T) {
	l := Compile("shortDate")
	assert.Equal(t, "shortDate", l.String())
	assert.Equal(t, DefaultPattern, Compile("").String())

	days := []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
	}
	var got []string
	for _, d := range days {
		got = append(got, l.Format(d))
	}
	if diff := cmp.Diff([]string{"3/1/24", "12/25/24"}, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

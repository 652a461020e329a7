// Package datefmt renders instants with calendar patterns in the token
// syntax of Angular's date filter, e.g. "dd MMMM yyyy" -> "29 January 2015".
//
// Supported tokens:
//
//	yyyy yy y        year (4 digit, 2 digit, unpadded)
//	MMMM MMM MM M    month (January, Jan, 01, 1)
//	LLLL             stand-alone month (January)
//	dd d             day of month (05, 5)
//	EEEE EEE         weekday (Monday, Mon)
//	HH H hh h        hour (00-23, 0-23, 01-12, 1-12)
//	mm m ss s sss    minute, second, millisecond
//	a                AM/PM marker
//	Z                zone offset (-0700)
//	ww w             ISO week of year (03, 3)
//
// Text inside single quotes is literal and '' is a literal quote. Any other
// character is copied through unchanged. Formatting never fails.
//
// Fields are rendered by github.com/vjeantet/jodaTime. This package owns the
// Angular parts: named formats, letter-run splitting and "sss" milliseconds.
package datefmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/vjeantet/jodaTime"
)

// Named formats accepted in place of a pattern.
var named = map[string]string{
	"medium":     "MMM d, y h:mm:ss a",
	"short":      "M/d/yy h:mm a",
	"fullDate":   "EEEE, MMMM d, y",
	"longDate":   "MMMM d, y",
	"mediumDate": "MMM d, y",
	"shortDate":  "M/d/yy",
	"mediumTime": "h:mm:ss a",
	"shortTime":  "h:mm a",
}

// DefaultPattern is used for an empty pattern.
const DefaultPattern = "mediumDate"

// token renders one piece of a compiled pattern.
type token func(b *strings.Builder, t time.Time)

// Layout is a compiled pattern. It is immutable and safe for concurrent use.
type Layout struct {
	pattern string
	tokens  []token
}

// String returns the pattern the layout was compiled from.
func (l Layout) String() string { return l.pattern }

// Format renders t.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, tok := range l.tokens {
		tok(&b, t)
	}
	return b.String()
}

// Format renders t with pattern. Named formats such as "mediumDate" are
// expanded first.
func Format(t time.Time, pattern string) string {
	return Compile(pattern).Format(t)
}

// Compile tokenizes pattern.
func Compile(pattern string) Layout {
	if pattern == "" {
		pattern = DefaultPattern
	}
	src := pattern
	if p, ok := named[pattern]; ok {
		src = p
	}
	return Layout{pattern: pattern, tokens: tokenize(src)}
}

func tokenize(src string) []token {
	var out []token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, literal(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(src); {
		c := src[i]
		if c == '\'' {
			// '' outside a quoted run is a literal quote.
			if i+1 < len(src) && src[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			i++
			for i < len(src) {
				if src[i] == '\'' {
					if i+1 < len(src) && src[i+1] == '\'' {
						lit.WriteByte('\'')
						i += 2
						continue
					}
					i++
					break
				}
				lit.WriteByte(src[i])
				i++
			}
			continue
		}

		n := run(src, i)
		if tok, ok := field(c, n); ok {
			flush()
			out = append(out, tok)
			i += n
			continue
		}
		// Longest run has no meaning, try shorter ones before falling back
		// to a literal byte.
		matched := false
		for k := n - 1; k > 0; k-- {
			if tok, ok := field(c, k); ok {
				flush()
				out = append(out, tok)
				i += k
				matched = true
				break
			}
		}
		if !matched {
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return out
}

// run returns the length of the run of identical bytes starting at i.
func run(s string, i int) int {
	n := 1
	for i+n < len(s) && s[i+n] == s[i] {
		n++
	}
	return n
}

func literal(s string) token {
	return func(b *strings.Builder, _ time.Time) { b.WriteString(s) }
}

// joda renders a single Joda-Time field such as "MMMM" or "EEE".
func joda(layout string) token {
	return func(b *strings.Builder, t time.Time) { b.WriteString(jodaTime.Format(layout, t)) }
}

// jodaFields maps Angular letter runs to the equivalent Joda-Time field.
// Each run is rendered on its own so adjacent runs ("yyy" is "yy" then "y")
// keep their Angular meaning instead of merging into one Joda run.
var jodaFields = map[string]string{
	"yyyy": "yyyy",
	"y":    "y",
	"MMMM": "MMMM",
	"LLLL": "MMMM",
	"MMM":  "MMM",
	"MM":   "MM",
	"M":    "M",
	"dd":   "dd",
	"d":    "d",
	"EEEE": "EEEE",
	"EEE":  "EEE",
	"HH":   "HH",
	"H":    "H",
	"hh":   "hh",
	"h":    "h",
	"mm":   "mm",
	"m":    "m",
	"sss":  "SSS",
	"ss":   "ss",
	"s":    "s",
	"a":    "a",
	"Z":    "Z",
	"ww":   "ww",
	"w":    "w",
}

// field returns the renderer for n repetitions of the pattern letter c.
func field(c byte, n int) (token, bool) {
	if c == 'y' && n == 2 {
		// Joda slices the year string, which breaks below year 1000.
		return func(b *strings.Builder, t time.Time) { fmt.Fprintf(b, "%02d", t.Year()%100) }, true
	}
	layout, ok := jodaFields[strings.Repeat(string(c), n)]
	if !ok {
		return nil, false
	}
	return joda(layout), true
}

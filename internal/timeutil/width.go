package timeutil

import "fmt"

// Width is the display width hint that selects the default fallback
// pattern.
type Width int

const (
	WidthWide Width = iota
	WidthNarrow
)

// Breakpoints below which a display counts as narrow.
const (
	NarrowPixels  = 992
	NarrowColumns = 100
)

func (w Width) String() string {
	if w == WidthNarrow {
		return "narrow"
	}
	return "wide"
}

// ParseWidth parses "narrow" or "wide".
func ParseWidth(s string) (Width, error) {
	switch s {
	case "narrow":
		return WidthNarrow, nil
	case "wide":
		return WidthWide, nil
	default:
		return WidthWide, fmt.Errorf("invalid width %q (must be narrow or wide)", s)
	}
}

// WidthForPixels classifies a viewport width in CSS pixels.
func WidthForPixels(px int) Width {
	if px < NarrowPixels {
		return WidthNarrow
	}
	return WidthWide
}

// WidthForColumns classifies a terminal width. Unknown widths (<= 0) are
// treated as wide.
func WidthForColumns(cols int) Width {
	if cols > 0 && cols < NarrowColumns {
		return WidthNarrow
	}
	return WidthWide
}

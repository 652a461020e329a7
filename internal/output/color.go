package output

import (
	"os"
	"strings"

	"github.com/ahmetb/reldate/internal/timeutil"
)

// ANSI escape sequence constants.
const Reset = "\x1b[0m"

// KindColors is the default color for each label kind.
var KindColors = map[timeutil.Kind]string{
	timeutil.KindNow:      "\x1b[92m", // Bright Green
	timeutil.KindPast:     "\x1b[93m", // Bright Yellow
	timeutil.KindFuture:   "\x1b[96m", // Bright Cyan
	timeutil.KindAbsolute: "\x1b[94m", // Bright Blue
	timeutil.KindInvalid:  "\x1b[91m", // Bright Red
}

// ColorManager remembers the kind of every label it has seen so comments
// can be colored after the YAML has been rendered to text.
type ColorManager struct {
	palette map[timeutil.Kind]string
	kinds   map[string]timeutil.Kind
}

// NewColorManager creates a ColorManager with the default KindColors.
func NewColorManager() *ColorManager {
	return &ColorManager{
		palette: KindColors,
		kinds:   make(map[string]timeutil.Kind),
	}
}

// Register records the kind of a label. Labels are deterministic for a given
// delta, so a label text never maps to two kinds.
func (cm *ColorManager) Register(label timeutil.Label) {
	cm.kinds[label.Text] = label.Kind
}

// Known reports whether label has been registered.
func (cm *ColorManager) Known(label string) bool {
	_, ok := cm.kinds[label]
	return ok
}

// ColorFor returns the ANSI escape code for a registered label, or "" if the
// label is unknown.
func (cm *ColorManager) ColorFor(label string) string {
	kind, ok := cm.kinds[label]
	if !ok {
		return ""
	}
	return cm.palette[kind]
}

// Wrap wraps text in the label's color followed by reset. Unknown labels are
// returned unchanged.
func (cm *ColorManager) Wrap(text, label string) string {
	c := cm.ColorFor(label)
	if c == "" {
		return text
	}
	return c + text + Reset
}

// extractLabel strips the leading "#" and surrounding spaces from a comment.
func extractLabel(comment string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "#"))
}

// ResolveColor determines whether color output should be enabled based on
// the user's flag value and terminal state.
//
//   - "always": returns true (overrides everything including NO_COLOR)
//   - "never": returns false
//   - "auto": returns false if NO_COLOR env var is set and non-empty,
//     otherwise returns the isTTY parameter
func ResolveColor(flag string, isTTY bool) bool {
	switch flag {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if noColor := os.Getenv("NO_COLOR"); noColor != "" {
			return false
		}
		return isTTY
	}
}

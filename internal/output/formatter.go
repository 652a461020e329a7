package output

import (
	"strings"
)

// FormatOutput aligns inline comments and, when colorEnabled is set,
// colorizes them. Only comments whose label is registered in colorMgr are
// touched; a nil colorMgr aligns every inline comment and disables color.
func FormatOutput(text string, colorEnabled bool, colorMgr *ColorManager) string {
	aligned := AlignComments(text, colorMgr)
	if colorEnabled && colorMgr != nil {
		return Colorize(aligned, colorMgr)
	}
	return aligned
}

// Colorize wraps the comment portion of each line ("# label", inline or on
// its own line) in the color of its label kind. YAML content and comments
// with unregistered labels pass through unchanged.
func Colorize(text string, cm *ColorManager) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = colorizeLine(line, cm)
	}
	return strings.Join(lines, "\n")
}

func colorizeLine(line string, cm *ColorManager) string {
	if content, comment, ok := splitInlineComment(line); ok {
		return content + " " + cm.Wrap(comment, extractLabel(comment))
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "# ") {
		start := len(line) - len(trimmed)
		return line[:start] + cm.Wrap(trimmed, extractLabel(trimmed))
	}
	return line
}

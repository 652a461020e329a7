package output

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinGap is the minimum number of spaces between YAML content and an inline comment.
const MinGap = 2

var reANSI = regexp.MustCompile("[\u001B\u009B][[\\]()#;?]*.?[0-9;]*[a-zA-Z]|\u001B[@-Z\\-_]|\u009B[0-9;]*[a-zA-Z]")

// displayWidth is the number of runes in s once ANSI escapes are removed.
func displayWidth(s string) int {
	return utf8.RuneCountInString(reANSI.ReplaceAllString(s, ""))
}

// splitInlineComment splits a line at the first " # " that is outside a
// quoted scalar into the content before it and the comment from "#" onward.
//
// Head comment lines (optional whitespace, then "#"), lines without a
// delimiter and lines with an unterminated quote report hasComment == false.
func splitInlineComment(line string) (content string, comment string, hasComment bool) {
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
		return line, "", false
	}
	idx := commentIndex(line)
	if idx < 0 {
		return line, "", false
	}
	return line[:idx], line[idx+1:], true
}

// commentIndex returns the index of the space before the first " # " outside
// single or double quotes, or -1.
func commentIndex(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote == '"':
			if c == '\\' {
				i++
			} else if c == '"' {
				quote = 0
			}
		case quote == '\'':
			if c != '\'' {
				break
			}
			if i+1 < len(line) && line[i+1] == '\'' {
				i++
			} else {
				quote = 0
			}
		case c == '"' || c == '\'':
			if opensQuote(line, i) {
				quote = c
			}
		case c == ' ' && strings.HasPrefix(line[i:], " # "):
			return i
		}
	}
	return -1
}

// opensQuote reports whether the quote at i starts a quoted scalar rather
// than sitting inside a plain one, as in "don't".
func opensQuote(line string, i int) bool {
	if i == 0 {
		return true
	}
	switch line[i-1] {
	case ' ', '\t', '[', '{', ',':
		return true
	}
	return false
}

// AlignComments lines up inline comments into a column.
//
// Consecutive lines with an inline comment form a block, and a line without
// one ends it. Within a block every comment starts at the widest content plus
// MinGap. Head comment lines pass through unchanged and end the block. When
// labels is non-nil only comments holding a label it has registered count,
// so text that merely looks like a comment is never moved.
func AlignComments(text string, labels *ColorManager) string {
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))

	inline := func(line string) (string, string, bool) {
		content, comment, ok := splitInlineComment(line)
		if !ok || (labels != nil && !labels.Known(extractLabel(comment))) {
			return line, "", false
		}
		return content, comment, true
	}

	for i := 0; i < len(lines); {
		if _, _, ok := inline(lines[i]); !ok {
			out[i] = lines[i]
			i++
			continue
		}

		end := i
		width := 0
		for end < len(lines) {
			content, _, ok := inline(lines[end])
			if !ok {
				break
			}
			width = max(width, displayWidth(strings.TrimRight(content, " ")))
			end++
		}

		for j := i; j < end; j++ {
			content, comment, _ := inline(lines[j])
			content = strings.TrimRight(content, " ")
			out[j] = content + strings.Repeat(" ", width+MinGap-displayWidth(content)) + comment
		}
		i = end
	}

	return strings.Join(out, "\n")
}

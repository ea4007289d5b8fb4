// Package diag renders nox's diagnostic format: a single-line header
// followed by a source excerpt with a carat underline, per spec.md §6
// ("[LEVEL] (group) file:line: message" then excerpt). Grounded on two
// sources: the teacher's lang/token.Error/ErrorList/Position (the header
// line reuses that same Position formatting) and
// original_source/src/error.c's point_to_error, which builds the excerpt
// by looking up the start/end Location of a span and rendering either a
// single underlined line or a start line, a carat-bar for every
// intermediate line, and an underlined end line.
package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nox-lang/nox/lang/token"
	"github.com/nox-lang/nox/logger"
)

// Format renders one diagnostic: level, group, the message, and a
// source excerpt spanning [start, end) in file, whose text is src.
func Format(level logger.Level, group string, file *token.File, src []byte, start, end token.Pos, msg string) string {
	startPos := file.Position(start)
	endPos := file.Position(end)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] (%s) %s: %s\n", level, group, startPos, msg)

	gutter := len(strconv.Itoa(endPos.Line))
	lineText := func(line int) string {
		s, e := file.LineBounds(line)
		if s < 0 || e > len(src) || s > e {
			return ""
		}
		return string(src[s:e])
	}

	writeGutter := func(line int) {
		fmt.Fprintf(&b, " %*d | ", gutter, line)
	}
	writeBlankGutter := func() {
		fmt.Fprintf(&b, " %s | ", strings.Repeat(" ", gutter))
	}

	if startPos.Line == endPos.Line {
		text := lineText(startPos.Line)
		writeGutter(startPos.Line)
		b.WriteString(text)
		b.WriteByte('\n')

		writeBlankGutter()
		b.WriteString(strings.Repeat(" ", max(0, startPos.Column-1)))
		b.WriteString(strings.Repeat("^", max(1, endPos.Column-startPos.Column)))
		b.WriteByte('\n')
		return b.String()
	}

	// Multi-line span: start line underlined from its column to the end
	// of the line, a continuation bar for every line strictly between,
	// and the end line underlined from its start to its column.
	startText := lineText(startPos.Line)
	writeGutter(startPos.Line)
	b.WriteString(startText)
	b.WriteByte('\n')

	writeBlankGutter()
	b.WriteString(strings.Repeat(" ", max(0, startPos.Column-1)))
	b.WriteString(strings.Repeat("^", max(1, len(startText)-startPos.Column+1)))
	b.WriteByte('\n')

	for line := startPos.Line + 1; line < endPos.Line; line++ {
		writeGutter(line)
		b.WriteString("⋮ ")
		b.WriteString(lineText(line))
		b.WriteByte('\n')
	}

	endText := lineText(endPos.Line)
	writeGutter(endPos.Line)
	b.WriteString(endText)
	b.WriteByte('\n')

	writeBlankGutter()
	b.WriteString(strings.Repeat("^", max(1, endPos.Column)))
	b.WriteByte('\n')

	return b.String()
}

// Package compose draws one rendered view on top of another.
package compose

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Over draws top over base. Each top line replaces the base between its
// first and last visible non-space cells; blank top lines leave the base
// untouched. Styled text is handled cell by cell.
func Over(base, top string, width int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")

	for i, line := range topLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		start := ansi.StringWidth(plain) - ansi.StringWidth(strings.TrimLeft(plain, " "))
		end := ansi.StringWidth(strings.TrimRight(plain, " "))

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		out := ansi.Cut(baseLine, 0, start) + ansi.Cut(line, start, end)
		if end < width {
			out += ansi.Cut(baseLine, end, width)
		}
		baseLines[i] = out
	}

	return strings.Join(baseLines, "\n")
}

package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Reflow word-wraps text to fit within width terminal cells and normalizes
// vertical whitespace for pager display. Leading blank lines are dropped,
// runs of blank lines are squeezed to a single blank line, and tokens wider
// than the target are hard-broken so no output line ever overflows.
// Width is measured in cells via runewidth so CJK and emoji wrap correctly.
func Reflow(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var out []string
	blankPending := false
	sawContent := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			// Squeeze: at most one blank line, and none before content.
			if sawContent {
				blankPending = true
			}
			continue
		}
		if blankPending {
			out = append(out, "")
			blankPending = false
		}
		sawContent = true
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

// wrapLine wraps a single trimmed line to width cells, preferring word
// boundaries and hard-breaking words that are wider than the line.
func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var wrapped []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		if cur.Len() > 0 {
			wrapped = append(wrapped, cur.String())
			cur.Reset()
			curWidth = 0
		}
	}

	for _, word := range strings.Fields(line) {
		ww := runewidth.StringWidth(word)
		switch {
		case curWidth == 0 && ww <= width:
			cur.WriteString(word)
			curWidth = ww
		case curWidth+1+ww <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curWidth += 1 + ww
		case ww <= width:
			flush()
			cur.WriteString(word)
			curWidth = ww
		default:
			// Word wider than the line: hard-break it cell by cell.
			flush()
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if curWidth+rw > width {
					flush()
				}
				cur.WriteRune(r)
				curWidth += rw
			}
			// Remainder stays in cur; following words may join it.
		}
	}
	flush()
	return wrapped
}

// layout.go — Greedy word wrap and vertical placement of the quote block.
package render

import (
	"strings"

	"golang.org/x/image/font"
)

// WrapLines breaks text into lines whose rendered width stays within
// maxWidth pixels, measured with face. The wrap is greedy: each word is
// tentatively appended (with its trailing space) and the line is committed
// once the next word would push it past the budget. A single word wider than
// maxWidth is emitted as its own overflowing line rather than split.
func WrapLines(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var line string
	for _, w := range words {
		test := line + w + " "
		if font.MeasureString(face, test).Ceil() > maxWidth && line != "" {
			lines = append(lines, strings.TrimSpace(line))
			line = w + " "
		} else {
			line = test
		}
	}
	if s := strings.TrimSpace(line); s != "" {
		lines = append(lines, s)
	}
	return lines
}

// LineHeight returns the vertical advance between wrapped lines.
func LineHeight(fontSize float64) float64 {
	return fontSize * LineHeightFactor
}

// StartY returns the baseline-center Y of the first wrapped line. Top-aligned
// text hangs below the top padding; bottom-aligned text is stacked so the
// last line clears the bottom padding.
func StartY(pos Position, lineCount int, fontSize float64) float64 {
	lh := LineHeight(fontSize)
	if pos == PositionTop {
		return TopPadding + lh/2
	}
	return CanvasHeight - BottomPadding - float64(lineCount)*lh
}

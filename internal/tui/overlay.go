package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderModal draws card, framed by frame, centered over base.
func renderModal(base, card string, frame lipgloss.Style, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := fitCanvas(base, width, height)
	framed := frame.Render(card)
	lines := splitToLines(framed, 0)
	cardWidth := maxLineWidth(lines)
	cardHeight := len(lines)
	if cardWidth <= 0 || cardHeight <= 0 {
		return canvas
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-cardHeight)/2)
	return overlayAt(canvas, framed, x, y, width, height)
}

func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitToLines(base, height)
	overlayLines := splitToLines(overlay, 0)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := padRightANSI(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		cell := padRightANSI(line, overlayWidth)
		pos := x + ansi.StringWidth(cell)
		right := dropColumns(target, pos)
		if gap := width - pos - ansi.StringWidth(right); gap > 0 {
			right = strings.Repeat(" ", gap) + right
		}
		baseLines[row] = left + cell + right
	}
	return strings.Join(baseLines, "\n")
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRightANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	return strings.Join(splitToLines(s, height), "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func renderBar(style lipgloss.Style, width int, text string) string {
	return style.Width(width).MaxWidth(width).Render(padRightANSI(strings.ReplaceAll(text, "\n", " "), width))
}

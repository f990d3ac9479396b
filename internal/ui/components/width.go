// Package components provides reusable UI components for the TUI.
package components

import "unicode"

// RuneWidth estimates the rendered column width of a single rune.
// Combining marks take no column; everything else counts as one,
// including the block glyphs the bars are drawn with. This is a
// deliberate approximation: East-Asian wide characters are treated as
// single-column, which is acceptable for ASCII labels and timestamps.
func RuneWidth(r rune) int {
	if unicode.Is(unicode.M, r) {
		return 0
	}
	return 1
}

// StringWidth estimates the rendered width of an unstyled string.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// FormatLabel truncates or pads label to exactly width columns.
// Zero-width runes never trigger truncation and travel with the visible
// rune they modify. The result's estimated width always equals width.
func FormatLabel(label string, width int) string {
	if width <= 0 {
		return ""
	}

	out := make([]rune, 0, width)
	used := 0
	for _, r := range label {
		rw := RuneWidth(r)
		if rw == 0 {
			out = append(out, r)
			continue
		}
		if used+rw > width {
			break
		}
		out = append(out, r)
		used += rw
	}

	for used < width {
		out = append(out, ' ')
		used++
	}
	return string(out)
}

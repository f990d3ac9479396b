package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// FitLine clamps a possibly styled line to an exact display width,
// truncating ANSI-aware and right-padding with spaces.
func FitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// SafeRow runs a row renderer and degrades to a blank row of the target
// width when it fails. One failed row never aborts a frame.
func SafeRow(width int, render func() (string, error)) string {
	if width <= 0 {
		return ""
	}
	row, err := render()
	if err != nil {
		return strings.Repeat(" ", width)
	}
	return FitLine(row, width)
}

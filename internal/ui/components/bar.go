package components

import (
	"fmt"
	"strings"

	"github.com/codexmeter/codexmeter/internal/ui/styles"
)

// Glyphs used to draw bar cells.
const (
	FilledGlyph = '█'
	EmptyGlyph  = '░'
)

// Bar renders fixed-geometry progress bar rows. All positions come from
// these widths, never from measuring previously rendered content, so the
// renderer stays testable at any panel geometry.
type Bar struct {
	LabelWidth   int
	BarWidth     int
	PercentWidth int
}

// DefaultBar returns the bar geometry used by the dashboard panel.
func DefaultBar() Bar {
	return Bar{LabelWidth: 10, BarWidth: 48, PercentWidth: 7}
}

// Width is the total rendered width of one bar row:
// label, brackets, cells, separating space, percent field.
func (b Bar) Width() int {
	return b.LabelWidth + 1 + b.BarWidth + 1 + 1 + b.PercentWidth
}

// FilledCells maps a percentage to a cell count, truncating fractional
// fill toward zero and clamping to the bar width.
func (b Bar) FilledCells(percent float64) int {
	filled := int(percent / 100 * float64(b.BarWidth))
	if filled < 0 {
		return 0
	}
	if filled > b.BarWidth {
		return b.BarWidth
	}
	return filled
}

// Render produces one plain-text bar row of exactly Width() columns.
func (b Bar) Render(label string, percent float64) string {
	filled := b.FilledCells(percent)

	var sb strings.Builder
	sb.WriteString(FormatLabel(label, b.LabelWidth))
	sb.WriteByte('[')
	sb.WriteString(strings.Repeat(string(FilledGlyph), filled))
	sb.WriteString(strings.Repeat(string(EmptyGlyph), b.BarWidth-filled))
	sb.WriteByte(']')
	sb.WriteByte(' ')
	sb.WriteString(fmt.Sprintf("%*.1f%%", b.PercentWidth-1, percent))
	return sb.String()
}

// RenderStyled produces the same geometry as Render with the cells and
// percent field colored by consumption level.
func (b Bar) RenderStyled(label string, percent float64) string {
	filled := b.FilledCells(percent)
	percentStyle := styles.GetPercentStyle(percent)

	var sb strings.Builder
	sb.WriteString(styles.LabelStyle.Render(FormatLabel(label, b.LabelWidth)))
	sb.WriteByte('[')
	sb.WriteString(percentStyle.Render(strings.Repeat(string(FilledGlyph), filled)))
	sb.WriteString(styles.FooterStyle.Render(strings.Repeat(string(EmptyGlyph), b.BarWidth-filled)))
	sb.WriteByte(']')
	sb.WriteByte(' ')
	sb.WriteString(percentStyle.Render(fmt.Sprintf("%*.1f%%", b.PercentWidth-1, percent)))
	return sb.String()
}

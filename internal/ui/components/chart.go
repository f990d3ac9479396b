package components

import (
	"github.com/guptarohit/asciigraph"

	"github.com/codexmeter/codexmeter/internal/ui/styles"
)

// RenderTrend draws an ASCII line chart of used-percent readings gathered
// during the current dashboard session.
func RenderTrend(data []float64, width, height int, caption string) string {
	if len(data) < 2 {
		return styles.FooterStyle.Render("collecting usage trend...")
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
	)
}

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codexmeter/codexmeter/internal/models"
	"github.com/codexmeter/codexmeter/internal/report"
	"github.com/codexmeter/codexmeter/internal/ui/components"
	"github.com/codexmeter/codexmeter/internal/ui/styles"
)

// View renders one frame. Rows degrade independently: a row that cannot
// render becomes a blank line, never a dropped frame.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}

	if m.width < m.layout.MinWidth || m.height < m.layout.MinHeight {
		return styles.ErrorStyle.Render(fmt.Sprintf(
			"Terminal too small: %dx%d (need at least %dx%d)",
			m.width, m.height, m.layout.MinWidth, m.layout.MinHeight))
	}

	var rows []string
	rows = append(rows, m.titleRow())
	rows = append(rows, m.blankRow())
	rows = append(rows, m.bodyRows()...)
	rows = append(rows, m.blankRow())
	rows = append(rows, m.footerRow())

	panel := styles.PanelStyle.Render(strings.Join(rows, "\n"))

	if trend := m.trendSection(); trend != "" {
		return lipgloss.JoinVertical(lipgloss.Left, panel, "", trend)
	}
	return panel
}

func (m *Model) blankRow() string {
	return strings.Repeat(" ", m.layout.Interior)
}

func (m *Model) titleRow() string {
	return components.SafeRow(m.layout.Interior, func() (string, error) {
		return styles.TitleStyle.Render("Codex Usage Monitor"), nil
	})
}

func (m *Model) bodyRows() []string {
	switch {
	case m.noData:
		return []string{components.SafeRow(m.layout.Interior, func() (string, error) {
			return report.NoDataMessage, nil
		})}
	case m.snapshot == nil:
		return []string{components.SafeRow(m.layout.Interior, func() (string, error) {
			return "Searching for latest token_count event...", nil
		})}
	}

	var rows []string
	rows = append(rows, m.usageRows()...)

	if m.snapshot.Primary != nil {
		rows = append(rows, m.blankRow())
		rows = append(rows, m.windowRows("5h limit", m.snapshot.Primary)...)
	}
	if m.snapshot.Secondary != nil {
		rows = append(rows, m.blankRow())
		rows = append(rows, m.windowRows("Weekly limit", m.snapshot.Secondary)...)
	}
	if m.loadErr != nil {
		rows = append(rows, m.blankRow())
		rows = append(rows, components.SafeRow(m.layout.Interior, func() (string, error) {
			return styles.ErrorStyle.Render("refresh failed: " + m.loadErr.Error()), nil
		}))
	}
	return rows
}

func (m *Model) usageRows() []string {
	snap := m.snapshot
	return []string{
		components.SafeRow(m.layout.Interior, func() (string, error) {
			return styles.DetailStyle.Render("total: " + report.FormatTokenUsage(snap.Total)), nil
		}),
		components.SafeRow(m.layout.Interior, func() (string, error) {
			return styles.DetailStyle.Render("last:  " + report.FormatTokenUsage(snap.Last)), nil
		}),
	}
}

// windowRows renders one rate-limit window: header, elapsed-time bar,
// used-percent bar, and a reset detail line.
func (m *Model) windowRows(label string, win *models.RateWindow) []string {
	interior := m.layout.Interior
	bar := m.layout.Bar
	now := m.now

	return []string{
		components.SafeRow(interior, func() (string, error) {
			return styles.LabelStyle.Bold(true).Render(label), nil
		}),
		components.SafeRow(interior, func() (string, error) {
			return bar.RenderStyled("Time", win.TimePercent(now)), nil
		}),
		components.SafeRow(interior, func() (string, error) {
			return bar.RenderStyled("Used", win.UsedPercent), nil
		}),
		components.SafeRow(interior, func() (string, error) {
			detail := "  resets at " + win.ResetTime().Local().Format("2006-01-02 15:04:05")
			if win.Outdated(now) {
				return styles.DetailStyle.Render(detail) + " " + styles.OutdatedStyle.Render("[OUTDATED]"), nil
			}
			return styles.DetailStyle.Render(detail), nil
		}),
	}
}

func (m *Model) footerRow() string {
	return components.SafeRow(m.layout.Interior, func() (string, error) {
		updated := "never"
		if !m.lastUpdate.IsZero() {
			updated = m.lastUpdate.Local().Format("15:04:05")
		}
		footer := fmt.Sprintf("Last update %s · refresh %s · r refresh · q quit",
			updated, m.cfg.RefreshInterval)
		return styles.FooterStyle.Render(footer), nil
	})
}

// trendSection renders the in-session usage graph when the terminal is
// tall enough to fit it under the panel.
func (m *Model) trendSection() string {
	if m.height < m.layout.MinHeight+m.layout.TrendHeight+4 {
		return ""
	}
	if len(m.trend) < 2 {
		return ""
	}
	return components.RenderTrend(m.trend, m.layout.Interior-10, m.layout.TrendHeight,
		"5h window used % (this session)")
}

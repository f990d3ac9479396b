// Package report renders a usage snapshot as a one-shot plain-text summary.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/codexmeter/codexmeter/internal/models"
	"github.com/codexmeter/codexmeter/internal/sessions"
)

// NoDataMessage is printed when the 30-day search window yields nothing.
// Absence of data is an answer, not an error.
const NoDataMessage = "No token_count events found in session files."

// Render writes the full report for one snapshot. Derived window values
// are computed against the supplied "now".
func Render(w io.Writer, snap *models.Snapshot, now time.Time) {
	fmt.Fprintf(w, "Found latest token_count event in: %s\n", snap.SourceFile)
	fmt.Fprintf(w, "total: %s\n", FormatTokenUsage(snap.Total))
	fmt.Fprintf(w, "last:  %s\n", FormatTokenUsage(snap.Last))

	if snap.Primary != nil {
		fmt.Fprintln(w, windowLine("5h limit", snap.Primary, now))
	}
	if snap.Secondary != nil {
		fmt.Fprintln(w, windowLine("weekly limit", snap.Secondary, now))
	}
}

// RenderNoData writes the friendly empty-result message.
func RenderNoData(w io.Writer) {
	fmt.Fprintln(w, NoDataMessage)
}

// FormatTokenUsage renders one token usage breakdown on a single line.
func FormatTokenUsage(u sessions.TokenUsage) string {
	return fmt.Sprintf("input %d, cached %d, output %d, reasoning %d, subtotal %d",
		u.InputTokens, u.CachedInputTokens, u.OutputTokens, u.ReasoningOutputTokens, u.TotalTokens)
}

// FormatPercent renders a percentage without trailing zero noise
// (42.5 -> "42.5", 42 -> "42").
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func windowLine(label string, win *models.RateWindow, now time.Time) string {
	resetStr := win.ResetTime().Local().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%s: used %s%%, reset: %s", label, FormatPercent(win.UsedPercent), resetStr)
	if win.Outdated(now) {
		line += " [OUTDATED]"
	}
	return line
}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type BarData struct {
	Label string
	Value int
}

// RenderBarChart draws one horizontal bar per row scaled against the largest
// value. A chart with no positive value renders empty tracks.
func RenderBarChart(rows []BarData, width int, unit string) string {
	if len(rows) == 0 {
		return mutedStyle.Render("(no data)")
	}
	if width < 1 {
		width = 1
	}
	peak := 0
	labelWidth := 0
	for _, r := range rows {
		peak = max(peak, r.Value)
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		filled := 0
		if peak > 0 && r.Value > 0 {
			filled = max(1, r.Value*width/peak)
		}
		bar := barStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("·", width-filled))
		lines = append(lines, fmt.Sprintf("%-*s %s %d%s", labelWidth, r.Label, bar, r.Value, unit))
	}
	return strings.Join(lines, "\n")
}

// RenderShareChart lists each row with its percentage of the total.
func RenderShareChart(rows []BarData, width int) string {
	total := 0
	for _, r := range rows {
		total += r.Value
	}
	if total == 0 {
		return mutedStyle.Render("(no tagged sessions)")
	}
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pct := r.Value * 100 / total
		filled := r.Value * width / total
		lines = append(lines, fmt.Sprintf("%-*s %s %3d%%", labelWidth, r.Label, barStyle.Render(strings.Repeat("▇", filled))+strings.Repeat(" ", width-filled), pct))
	}
	return strings.Join(lines, "\n")
}

package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focuslog/internal/views"
)

func (m Model) handleStatsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "x":
		m.exportSessions("")
		return m, nil
	}
	var cmd tea.Cmd
	m.sessionsTable, cmd = m.sessionsTable.Update(msg)
	return m, cmd
}

func (m *Model) exportSessions(path string) (string, bool) {
	written, n, err := m.Tracker.ExportFile(path)
	if err != nil {
		m.fail(err)
		return "", false
	}
	m.succeed("Export", fmt.Sprintf("Exported %d session(s) to %s", n, written))
	return written, true
}

func (m Model) renderStatsView() string {
	return views.RenderStatsPanel(views.NewStatsPanelData(
		m.Tracker.Summary(),
		m.Tracker.DailySeries(m.seriesDays),
		m.Tracker.TagTotals(m.tagLimit),
	))
}

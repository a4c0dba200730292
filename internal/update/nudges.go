package update

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focuslog/internal/scheduler"
)

func (m Model) dayState() scheduler.DayState {
	s := m.Tracker.Summary()
	return scheduler.DayState{MoodLogged: s.MoodLogged, HabitsRemaining: s.HabitsTotal - s.HabitsDone}
}

func (m *Model) scheduleNudges(hour int) {
	if m.Scheduler == nil {
		return
	}
	for _, n := range scheduler.Plan(m.Tracker.Clock().Now(), hour, m.dayState()) {
		if err := m.Scheduler.Schedule(n); err != nil {
			m.logger.Warn("schedule nudge", slog.String("id", n.ID), slog.String("error", err.Error()))
			continue
		}
		m.logger.Debug("nudge scheduled", slog.String("id", n.ID), slog.Time("at", n.At))
	}
}

// onNudge shows a fired nudge only when what it asks for is still undone.
func (m *Model) onNudge(n scheduler.Nudge) {
	msg, ok := scheduler.Message(n.Kind, m.dayState())
	if !ok {
		m.logger.Debug("nudge skipped", slog.String("id", n.ID))
		return
	}
	m.Status = StatusBar{Text: msg}
	m.notify("Reminder", msg, "info")
}

func waitForNudgeCmd(ch <-chan scheduler.Nudge) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NudgeMsg{Nudge: n}
	}
}

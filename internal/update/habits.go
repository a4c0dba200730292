package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focuslog/internal/dates"
	"github.com/sandeepkv93/focuslog/internal/scheduler"
	"github.com/sandeepkv93/focuslog/internal/views"
)

func (m Model) handleHabitsKey(msg tea.KeyMsg) Model {
	set := m.Tracker.HabitSet()
	switch msg.String() {
	case "j", "down":
		if m.habitCursor < len(set)-1 {
			m.habitCursor++
		}
	case "k", "up":
		if m.habitCursor > 0 {
			m.habitCursor--
		}
	case " ", "enter":
		if len(set) == 0 {
			return m
		}
		m.toggleHabit(string(set[m.habitCursor]))
	case "R":
		m.resetHabits()
	}
	return m
}

func (m *Model) toggleHabit(key string) bool {
	_, msg, err := m.Tracker.ToggleHabit(m.ctx, key)
	if err != nil {
		m.fail(err)
		return false
	}
	m.succeed("Habits", msg)
	if m.dayState().HabitsRemaining == 0 && m.Scheduler != nil {
		m.Scheduler.Cancel(scheduler.KindHabits)
	}
	return true
}

func (m *Model) resetHabits() bool {
	msg, err := m.Tracker.ResetHabits(m.ctx, m.Tracker.Today())
	if err != nil {
		m.fail(err)
		return false
	}
	m.succeed("Habits", msg)
	return true
}

func (m Model) renderHabitsView() string {
	today := m.Tracker.Today()
	done := m.Tracker.HabitsFor(today)
	set := m.Tracker.HabitSet()
	items := make([]views.HabitItemData, 0, len(set))
	count := 0
	for i, h := range set {
		if done[h] {
			count++
		}
		items = append(items, views.HabitItemData{Key: string(h), Done: done[h], Selected: i == m.habitCursor})
	}
	return views.RenderHabitsPanel(views.HabitsPanelData{Date: dates.Display(today), Items: items, Done: count})
}

package update

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focuslog/internal/dates"
	"github.com/sandeepkv93/focuslog/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForNudgeCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			m.Tracker.Timer().Pause()
			return m, tea.Quit
		}
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.editing != editNone {
			return m.handleEditKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Focus:
			return m.switchView(ViewFocus), nil
		case m.Keys.Habits:
			return m.switchView(ViewHabits), nil
		case m.Keys.Mood:
			return m.switchView(ViewMood), nil
		case m.Keys.Stats:
			return m.switchView(ViewStats), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			m.Tracker.Timer().Pause()
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewFocus:
			return m.handleFocusKey(typed)
		case ViewHabits:
			return m.handleHabitsKey(typed), nil
		case ViewMood:
			return m.handleMoodKey(typed)
		case ViewStats:
			return m.handleStatsKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick(typed), nil
	case NudgeMsg:
		m.onNudge(typed.Nudge)
		if m.Scheduler != nil {
			return m, waitForNudgeCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) switchView(v View) Model {
	if m.CurrentView != v {
		m.logger.Debug("switch view", slog.String("from", string(m.CurrentView)), slog.String("to", string(v)))
	}
	m.CurrentView = v
	if v == ViewHabits {
		if _, err := m.Tracker.VisitHabits(m.ctx, m.Tracker.Today()); err != nil {
			m.fail(err)
		}
	}
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewFocus:
		leftPane = m.renderFocusView()
	case ViewHabits:
		leftPane = m.renderHabitsView()
	case ViewMood:
		leftPane = m.renderMoodView()
		rightPane = views.RenderMoodHistory(m.historyView.View())
	case ViewStats:
		leftPane = m.renderStatsView()
		rightPane = views.RenderSessionsPanel(m.sessionsTable.View(), len(m.sessionsTable.Rows()))
	}
	if palette := m.renderCommandPalette(); palette != "" {
		rightPane = joinNonEmpty(palette, rightPane)
	}
	rightPane = joinNonEmpty(rightPane, m.renderHelpIfVisible())

	summary := m.Tracker.Summary()
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("focuslog | %s | %s %d pts | streak %d", dates.Display(summary.Today), summary.Level, summary.Points, summary.Streak),
		Tabs:         m.tabs(),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s focus | %s habits | %s mood | %s stats | / cmd | %s help | %s quit", m.Keys.Focus, m.Keys.Habits, m.Keys.Mood, m.Keys.Stats, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) tabs() []views.TabData {
	order := []struct {
		key  string
		view View
	}{
		{m.Keys.Focus, ViewFocus},
		{m.Keys.Habits, ViewHabits},
		{m.Keys.Mood, ViewMood},
		{m.Keys.Stats, ViewStats},
	}
	out := make([]views.TabData, 0, len(order))
	for _, o := range order {
		out = append(out, views.TabData{Key: o.key, Label: string(o.view), Active: o.view == m.CurrentView})
	}
	return out
}

// fail reports err in the status bar and the log.
func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Error("action failed", slog.String("view", string(m.CurrentView)), slog.String("error", err.Error()))
	m.notify("Error", err.Error(), "error")
}

// succeed reports a mutation message.
func (m *Model) succeed(title, msg string) {
	m.LastError = nil
	m.Status = StatusBar{Text: msg}
	m.notify(title, msg, "info")
}

package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focuslog/internal/focus"
	"github.com/sandeepkv93/focuslog/internal/views"
)

const minutesStep = 5

// TickDispatcher returns a RealTicks dispatch func that posts each tick to
// the program as a FocusTickMsg.
func TickDispatcher(p *tea.Program) func(tick func()) {
	return func(tick func()) {
		p.Send(FocusTickMsg{Tick: tick})
	}
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	timer := m.Tracker.Timer()
	switch msg.String() {
	case " ":
		if timer.Running() {
			timer.Pause()
			m.Status = StatusBar{Text: "focus paused"}
			return m, nil
		}
		if timer.Done() {
			timer.Reset()
		}
		timer.Start()
		m.Status = StatusBar{Text: "focus running"}
		return m, nil
	case "r":
		timer.Reset()
		m.Status = StatusBar{Text: "focus reset"}
		return m, nil
	case "+", "=":
		m.setMinutes(timer.Minutes() + minutesStep)
		return m, nil
	case "-":
		m.setMinutes(timer.Minutes() - minutesStep)
		return m, nil
	case "t":
		m.editing = editTitle
		cmd := m.titleInput.Focus()
		return m, cmd
	case "g":
		m.editing = editTags
		cmd := m.tagsInput.Focus()
		return m, cmd
	case "enter":
		m.logTimerSession(m.titleInput.Value(), m.tagsInput.Value())
		return m, nil
	}
	return m, nil
}

func (m *Model) setMinutes(minutes int) {
	timer := m.Tracker.Timer()
	if err := timer.Configure(minutes); err != nil {
		if errors.Is(err, focus.ErrRunning) {
			m.Status = StatusBar{Text: "pause the timer before changing its length", IsError: true}
			return
		}
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("timer set to %d minutes", timer.Minutes())}
}

func (m *Model) logTimerSession(title, tags string) bool {
	_, msg, err := m.Tracker.LogSession(m.ctx, title, tags)
	if err != nil {
		m.fail(err)
		return false
	}
	m.titleInput.SetValue("")
	m.tagsInput.SetValue("")
	m.succeed("Session", msg)
	return true
}

func (m Model) onFocusTick(msg FocusTickMsg) Model {
	if msg.Tick != nil {
		msg.Tick()
	}
	notice, err := m.Tracker.TakeNotice()
	if err != nil {
		m.fail(err)
		return m
	}
	if notice != "" {
		m.succeed("Focus", notice)
	}
	return m
}

// handleEditKey routes keys to whichever input currently has focus.
func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.editing {
	case editTitle, editTags:
		switch msg.String() {
		case "esc", "enter":
			m.stopEditing()
			return m, nil
		case "tab":
			var cmd tea.Cmd
			if m.editing == editTitle {
				m.titleInput.Blur()
				m.editing = editTags
				cmd = m.tagsInput.Focus()
			} else {
				m.tagsInput.Blur()
				m.editing = editTitle
				cmd = m.titleInput.Focus()
			}
			return m, cmd
		}
		var cmd tea.Cmd
		if m.editing == editTitle {
			m.titleInput, cmd = m.titleInput.Update(msg)
		} else {
			m.tagsInput, cmd = m.tagsInput.Update(msg)
		}
		return m, cmd
	case editReflection:
		switch msg.String() {
		case "esc":
			m.stopEditing()
			return m, nil
		case "ctrl+s":
			m.stopEditing()
			m.saveMood()
			return m, nil
		}
		var cmd tea.Cmd
		m.reflectionArea, cmd = m.reflectionArea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) stopEditing() {
	m.titleInput.Blur()
	m.tagsInput.Blur()
	m.reflectionArea.Blur()
	m.editing = editNone
}

func (m Model) renderFocusView() string {
	timer := m.Tracker.Timer()
	progress := timer.Progress()
	return views.RenderFocusPanel(views.FocusPanelData{
		Timer:        formatDuration(timer.RemainingSec()),
		Minutes:      timer.Minutes(),
		Running:      timer.Running(),
		Done:         timer.Done(),
		ProgressView: m.focusProgress.ViewAs(progress),
		ProgressPct:  int(progress * 100),
		Elapsed:      timer.ElapsedMinutes(),
		TitleView:    m.titleInput.View(),
		TagsView:     m.tagsInput.View(),
	})
}

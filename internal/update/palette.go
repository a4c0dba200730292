package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focuslog/internal/commands"
	"github.com/sandeepkv93/focuslog/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	// Handlers report through the status bar themselves; the returned error
	// only signals that the command did not apply.
	res, err := commands.Execute(cmd, commands.Handlers{
		Log: func(a commands.LogArgs) (commands.Result, error) {
			if !m.logTimerSession(a.Title, a.Tags) {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Minutes: func(a commands.MinutesArgs) (commands.Result, error) {
			m.setMinutes(a.Minutes)
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Habit: func(a commands.HabitArgs) (commands.Result, error) {
			m.CurrentView = ViewHabits
			if !m.toggleHabit(a.Key) {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		ResetHabits: func() (commands.Result, error) {
			m.CurrentView = ViewHabits
			if !m.resetHabits() {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Mood: func(a commands.MoodArgs) (commands.Result, error) {
			m.CurrentView = ViewMood
			if !m.saveMoodEntry(a.Mood, a.Reflection) {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			if _, ok := m.exportSessions(a.Path); !ok {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.closePalette()
	return m
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func commandUsage() []string {
	out := make([]string, 0, len(commands.Types))
	for _, t := range commands.Types {
		out = append(out, fmt.Sprintf("- %s", commands.Usage(t)))
	}
	return out
}

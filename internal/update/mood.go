package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focuslog/internal/dates"
	"github.com/sandeepkv93/focuslog/internal/model"
	"github.com/sandeepkv93/focuslog/internal/scheduler"
	"github.com/sandeepkv93/focuslog/internal/views"
)

func (m Model) handleMoodKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.selectedMood = m.cycleMood(-1)
	case "l", "right":
		m.selectedMood = m.cycleMood(1)
	case "x":
		m.selectedMood = model.MoodNone
	case "e":
		m.editing = editReflection
		cmd := m.reflectionArea.Focus()
		return m, cmd
	case "s", "ctrl+s":
		m.saveMood()
	}
	return m, nil
}

// cycleMood steps through the configured moods with "no mood" between the
// last and the first.
func (m Model) cycleMood(step int) model.Mood {
	set := m.Tracker.MoodSet()
	options := append([]model.Mood{model.MoodNone}, set...)
	idx := 0
	for i, mood := range options {
		if mood == m.selectedMood {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}

func (m *Model) saveMood() bool {
	return m.saveMoodEntry(string(m.selectedMood), m.reflectionArea.Value())
}

func (m *Model) saveMoodEntry(mood, reflection string) bool {
	entry, msg, err := m.Tracker.SaveMood(m.ctx, mood, reflection)
	if err != nil {
		m.fail(err)
		return false
	}
	m.selectedMood = entry.Mood
	m.reflectionArea.SetValue(entry.Reflection)
	m.succeed("Mood", msg)
	if m.Scheduler != nil {
		m.Scheduler.Cancel(scheduler.KindMood)
	}
	return true
}

func (m Model) renderMoodView() string {
	today := m.Tracker.Today()
	current := ""
	if entry, ok := m.Tracker.MoodFor(today); ok {
		current = strings.TrimSpace(entry.Mood.Emoji() + " " + string(entry.Mood))
	}
	set := m.Tracker.MoodSet()
	options := make([]views.MoodOptionData, 0, len(set))
	for _, mood := range set {
		options = append(options, views.MoodOptionData{Mood: string(mood), Emoji: mood.Emoji(), Selected: mood == m.selectedMood})
	}
	return views.RenderMoodPanel(views.MoodPanelData{
		Date:           dates.Display(today),
		Options:        options,
		Current:        current,
		ReflectionView: m.reflectionArea.View(),
		Editing:        m.editing == editReflection,
	})
}

// moodHistoryMarkdown formats the latest entries for the history viewport.
func moodHistoryMarkdown(entries []model.MoodEntry, limit int) string {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range entries {
		head := fmt.Sprintf("**%s**", dates.Display(e.DateISO))
		if e.Mood != model.MoodNone {
			head += fmt.Sprintf(" %s %s", e.Mood.Emoji(), e.Mood)
		}
		b.WriteString("- " + head + "\n")
		if r := strings.TrimSpace(e.Reflection); r != "" {
			for _, line := range strings.Split(r, "\n") {
				b.WriteString("  " + line + "\n")
			}
		}
	}
	return b.String()
}

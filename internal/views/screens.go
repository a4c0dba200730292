package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/focuslog/internal/tracker"
)

type FocusPanelData struct {
	Timer        string
	Minutes      int
	Running      bool
	Done         bool
	ProgressView string
	ProgressPct  int
	Elapsed      int
	TitleView    string
	TagsView     string
}

type HabitItemData struct {
	Key      string
	Done     bool
	Selected bool
}

type HabitsPanelData struct {
	Date  string
	Items []HabitItemData
	Done  int
}

type MoodOptionData struct {
	Mood     string
	Emoji    string
	Selected bool
}

type MoodPanelData struct {
	Date           string
	Options        []MoodOptionData
	Current        string
	ReflectionView string
	Editing        bool
	HistoryView    string
}

type StatsPanelData struct {
	TodayMinutes int
	WeekMinutes  int
	Sessions     int
	Points       int
	Level        string
	NextLevelAt  int
	TopLevel     bool
	Streak       int
	HabitsDone   int
	HabitsTotal  int
	MoodLogged   bool
	Series       []BarData
	Tags         []BarData
}

// NewStatsPanelData turns the tracker's summary, daily series and tag totals
// into chart rows.
func NewStatsPanelData(s tracker.Summary, series []tracker.SeriesPoint, tags []tracker.TagTotal) StatsPanelData {
	bars := make([]BarData, 0, len(series))
	for _, p := range series {
		bars = append(bars, BarData{Label: p.Label, Value: p.Minutes})
	}
	shares := make([]BarData, 0, len(tags))
	for _, t := range tags {
		shares = append(shares, BarData{Label: t.Tag, Value: t.Minutes})
	}
	return StatsPanelData{
		TodayMinutes: s.TodayMinutes,
		WeekMinutes:  s.WeekMinutes,
		Sessions:     s.Sessions,
		Points:       s.Points,
		Level:        string(s.Level),
		NextLevelAt:  s.NextLevelAt,
		TopLevel:     s.TopLevel,
		Streak:       s.Streak,
		HabitsDone:   s.HabitsDone,
		HabitsTotal:  s.HabitsTotal,
		MoodLogged:   s.MoodLogged,
		Series:       bars,
		Tags:         shares,
	}
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	Commands    []string
	HelpView    string
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	state := "paused"
	switch {
	case data.Running:
		state = "running"
	case data.Done:
		state = "complete"
	}
	b.WriteString(fmt.Sprintf("timer: %s (%dm, %s)\n", data.Timer, data.Minutes, state))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("elapsed: %dm\n\n", data.Elapsed))
	b.WriteString(data.TitleView + "\n")
	b.WriteString(data.TagsView + "\n\n")
	b.WriteString("actions: [space]start/pause [r]reset [+/-]minutes [t]title [g]tags [enter]log")
	return b.String()
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("habits for %s: %d/%d\n", data.Date, data.Done, len(data.Items)))
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		box := "[ ]"
		if item.Done {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, item.Key))
	}
	b.WriteString("\nactions: [j/k]move [space]toggle [R]reset day")
	return b.String()
}

func RenderMoodPanel(data MoodPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("mood for %s:", data.Date))
	if data.Current != "" {
		b.WriteString(" saved " + data.Current)
	}
	b.WriteString("\n")
	opts := make([]string, 0, len(data.Options))
	for _, o := range data.Options {
		label := o.Emoji + " " + o.Mood
		if o.Selected {
			label = "[" + label + "]"
		}
		opts = append(opts, label)
	}
	b.WriteString(strings.Join(opts, "  ") + "\n\n")
	b.WriteString("reflection:\n")
	b.WriteString(data.ReflectionView + "\n\n")
	if data.Editing {
		b.WriteString("actions: [esc]done editing [ctrl+s]save")
	} else {
		b.WriteString("actions: [h/l]pick mood [e]edit reflection [s]save")
	}
	return b.String()
}

func RenderMoodHistory(history string) string {
	if strings.TrimSpace(history) == "" {
		return "recent moods:\n" + mutedStyle.Render("(none yet)")
	}
	return "recent moods:\n" + history
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("today: %dm | this week: %dm | sessions: %d\n", data.TodayMinutes, data.WeekMinutes, data.Sessions))
	level := fmt.Sprintf("level: %s | points: %d", data.Level, data.Points)
	if data.TopLevel {
		level += " (max)"
	} else {
		level += fmt.Sprintf(" (next at %d)", data.NextLevelAt)
	}
	b.WriteString(level + "\n")
	mood := "no"
	if data.MoodLogged {
		mood = "yes"
	}
	b.WriteString(fmt.Sprintf("streak: %d day(s) | habits: %d/%d | mood logged: %s\n\n", data.Streak, data.HabitsDone, data.HabitsTotal, mood))
	b.WriteString("last days:\n")
	b.WriteString(RenderBarChart(data.Series, 24, "m") + "\n\n")
	b.WriteString("tag share:\n")
	b.WriteString(RenderShareChart(data.Tags, 20))
	return b.String()
}

func RenderSessionsPanel(tableView string, count int) string {
	if count == 0 {
		return "sessions:\n" + mutedStyle.Render("(nothing logged yet)")
	}
	return fmt.Sprintf("sessions (%d):\n%s\n\nactions: [j/k]scroll [x]export csv", count, tableView)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s):\n", strings.ToLower(data.CurrentView)))
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if len(data.Commands) > 0 {
		b.WriteString("\ncommands:\n")
		b.WriteString(strings.Join(data.Commands, "\n"))
	}
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	return b.String()
}

package update

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/focuslog/internal/model"
	"github.com/sandeepkv93/focuslog/internal/scheduler"
	"github.com/sandeepkv93/focuslog/internal/tracker"
	"github.com/sandeepkv93/focuslog/internal/views"
)

type View string

const (
	ViewFocus  View = "Focus"
	ViewHabits View = "Habits"
	ViewMood   View = "Mood"
	ViewStats  View = "Stats"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Focus  string
	Habits string
	Mood   string
	Stats  string
	Help   string
	Quit   string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type editTarget int

const (
	editNone editTarget = iota
	editTitle
	editTags
	editReflection
)

type Options struct {
	Context              context.Context
	Logger               *slog.Logger
	Scheduler            *scheduler.Engine
	Notifier             DesktopNotifier
	DesktopNotifications bool
	SeriesDays           int
	TagLimit             int
	NudgeHour            int
	DayReport            tracker.DayReport
}

type Model struct {
	CurrentView    View
	Tracker        *tracker.Tracker
	Scheduler      *scheduler.Engine
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx        context.Context
	logger     *slog.Logger
	seriesDays int
	tagLimit   int

	habitCursor  int
	selectedMood model.Mood
	editing      editTarget

	titleInput     textinput.Model
	tagsInput      textinput.Model
	commandInput   textinput.Model
	reflectionArea textarea.Model
	focusProgress  progress.Model
	sessionsTable  table.Model
	historyView    viewport.Model
	helpModel      help.Model

	historyMarkdown string
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// FocusTickMsg carries one timer tick into the update loop so the countdown
// only ever advances on the bubbletea goroutine.
type FocusTickMsg struct {
	Tick func()
}

type NudgeMsg struct {
	Nudge scheduler.Nudge
}

func NewModel(tr *tracker.Tracker, opts Options) Model {
	m := Model{
		CurrentView:    ViewFocus,
		Tracker:        tr,
		Scheduler:      opts.Scheduler,
		DesktopEnabled: opts.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Focus:  "1",
			Habits: "2",
			Mood:   "3",
			Stats:  "4",
			Help:   "?",
			Quit:   "q",
		},
		ctx:        opts.Context,
		logger:     opts.Logger,
		seriesDays: opts.SeriesDays,
		tagLimit:   opts.TagLimit,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	if m.seriesDays <= 0 {
		m.seriesDays = 7
	}
	if m.tagLimit <= 0 {
		m.tagLimit = 6
	}
	if entry, ok := tr.MoodFor(tr.Today()); ok {
		m.selectedMood = entry.Mood
	}

	m.initBubbleComponents()
	if entry, ok := tr.MoodFor(tr.Today()); ok {
		m.reflectionArea.SetValue(entry.Reflection)
	}
	m.Status = StatusBar{Text: welcomeText(opts.DayReport)}
	m.scheduleNudges(opts.NudgeHour)
	m.syncBubbleData()
	return m
}

func welcomeText(report tracker.DayReport) string {
	switch {
	case !report.Crossed:
		return "welcome back"
	case report.HadActivity:
		return "new day, streak extended"
	default:
		return "new day, streak reset"
	}
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.Placeholder = model.DefaultSessionTitle
	m.titleInput.CharLimit = 120
	m.titleInput.Width = 40

	m.tagsInput = textinput.New()
	m.tagsInput.Prompt = "tags>  "
	m.tagsInput.Placeholder = "deep,work"
	m.tagsInput.CharLimit = 120
	m.tagsInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.reflectionArea = textarea.New()
	m.reflectionArea.SetWidth(54)
	m.reflectionArea.SetHeight(5)
	m.reflectionArea.ShowLineNumbers = false
	m.reflectionArea.Placeholder = "How did today go? (markdown)"

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	cols := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Min", Width: 4},
		{Title: "Title", Width: 18},
		{Title: "Tags", Width: 12},
	}
	m.sessionsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.historyView = viewport.New(54, 10)
	m.helpModel = help.New()
}

// syncBubbleData refreshes the components that mirror tracker state.
func (m *Model) syncBubbleData() {
	sessions := m.Tracker.Sessions()
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, table.Row{s.DateISO, itoa(s.Minutes), s.Title, joinTags(s.Tags)})
	}
	m.sessionsTable.SetRows(rows)

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if md := moodHistoryMarkdown(m.Tracker.Moods(), 5); md != m.historyMarkdown {
		m.historyMarkdown = md
		m.historyView.SetContent(views.RenderMarkdown(md))
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewFocus, ViewHabits, ViewMood, ViewStats:
		return true
	default:
		return false
	}
}

// Package tracker owns the in-memory state of sessions, habits, moods,
// points and streak, and persists every change through a storage.Store.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/sandeepkv93/focuslog/internal/dates"
	"github.com/sandeepkv93/focuslog/internal/focus"
	"github.com/sandeepkv93/focuslog/internal/model"
	"github.com/sandeepkv93/focuslog/internal/storage"
)

var (
	ErrNothingToLog = errors.New("tracker: nothing to log yet")
	ErrEmptyMood    = errors.New("tracker: pick a mood or write a reflection")
	ErrNilStore     = errors.New("tracker: nil store")
)

type Options struct {
	Store        storage.Store
	Clock        dates.Clock
	Logger       *slog.Logger
	Habits       []model.Habit
	Moods        []model.Mood
	FocusMinutes int
	Ticks        focus.TickSource
	NewID        func() string
}

// Tracker is the single owner of application state. It is not safe for
// concurrent use; callers drive it from one goroutine.
type Tracker struct {
	store  storage.Store
	clock  dates.Clock
	logger *slog.Logger
	newID  func() string

	habitSet model.HabitSet
	moodSet  model.MoodSet

	sessions   []model.Session
	habits     model.HabitLog
	moods      []model.MoodEntry
	points     int
	streak     int
	lastActive string

	timer *focus.Timer

	notice    string
	noticeErr error
}

// Open loads every collection, reconciles the day boundary and marks today's
// habits as visited.
func Open(ctx context.Context, opts Options) (*Tracker, DayReport, error) {
	if opts.Store == nil {
		return nil, DayReport{}, ErrNilStore
	}
	t := &Tracker{
		store:    opts.Store,
		clock:    opts.Clock,
		logger:   opts.Logger,
		newID:    opts.NewID,
		habitSet: model.HabitSet(opts.Habits),
		moodSet:  model.MoodSet(opts.Moods),
	}
	if t.clock == nil {
		t.clock = dates.SystemClock{}
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	if len(t.habitSet) == 0 {
		t.habitSet = model.DefaultHabits()
	}
	if len(t.moodSet) == 0 {
		t.moodSet = model.DefaultMoods()
	}
	focusMinutes := opts.FocusMinutes
	if focusMinutes <= 0 {
		focusMinutes = 25
	}
	t.timer = focus.NewTimer(focusMinutes, opts.Ticks, t.onTimerComplete)

	if err := t.load(ctx); err != nil {
		return nil, DayReport{}, err
	}
	report, err := t.ReconcileDay(ctx)
	if err != nil {
		return nil, DayReport{}, err
	}
	if _, err := t.VisitHabits(ctx, t.Today()); err != nil {
		return nil, DayReport{}, err
	}
	return t, report, nil
}

func (t *Tracker) load(ctx context.Context) error {
	today := t.Today()
	t.sessions = model.NormalizeSessions(storage.Load(ctx, t.store, storage.KeySessions, []model.Session{}))
	for i := range t.sessions {
		if t.sessions[i].ID == "" {
			t.sessions[i].ID = t.newID()
		}
	}
	t.habits = model.NormalizeHabits(storage.Load(ctx, t.store, storage.KeyHabits, model.HabitLog{}))
	t.moods = model.NormalizeMoods(storage.Load(ctx, t.store, storage.KeyMoods, []model.MoodEntry{}))
	t.points = max(0, storage.Load(ctx, t.store, storage.KeyPoints, 0))
	t.streak = max(0, storage.Load(ctx, t.store, storage.KeyStreak, 0))

	t.lastActive = storage.Load(ctx, t.store, storage.KeyLastActiveDate, "")
	if !dates.IsISO(t.lastActive) {
		t.logger.Debug("no usable last active date, starting today", slog.String("stored", t.lastActive))
		t.lastActive = today
		if err := storage.Save(ctx, t.store, storage.KeyLastActiveDate, today); err != nil {
			return err
		}
	}
	t.logger.Debug("tracker state loaded",
		slog.Int("sessions", len(t.sessions)),
		slog.Int("habit_days", len(t.habits)),
		slog.Int("moods", len(t.moods)),
		slog.Int("points", t.points),
		slog.Int("streak", t.streak),
	)
	return nil
}

func (t *Tracker) Today() string { return dates.Today(t.clock) }

func (t *Tracker) Clock() dates.Clock { return t.clock }

func (t *Tracker) Timer() *focus.Timer { return t.timer }

func (t *Tracker) HabitSet() model.HabitSet { return t.habitSet }

func (t *Tracker) MoodSet() model.MoodSet { return t.moodSet }

func (t *Tracker) Points() int { return t.points }

func (t *Tracker) Streak() int { return t.streak }

func (t *Tracker) LastActiveDate() string { return t.lastActive }

func (t *Tracker) Level() model.Tier { return model.LevelFor(t.points) }

// Award adds n points and persists the new total.
func (t *Tracker) Award(ctx context.Context, n int) error {
	next := t.points + n
	if next < 0 {
		next = 0
	}
	if err := storage.Save(ctx, t.store, storage.KeyPoints, next); err != nil {
		return err
	}
	t.points = next
	t.logger.Debug("points awarded", slog.Int("delta", n), slog.Int("total", next))
	return nil
}

func (t *Tracker) onTimerComplete() {
	// Ticks carry no request context.
	if err := t.Award(context.Background(), model.TimerCompletePoints); err != nil {
		t.logger.Error("award timer completion", slog.String("error", err.Error()))
		t.noticeErr = err
		return
	}
	t.notice = fmt.Sprintf("Timer complete! +%d points", model.TimerCompletePoints)
}

// TakeNotice returns and clears the message produced by the last timer
// completion, if any.
func (t *Tracker) TakeNotice() (string, error) {
	msg, err := t.notice, t.noticeErr
	t.notice, t.noticeErr = "", nil
	return msg, err
}

// Sessions returns a copy ordered newest date first.
func (t *Tracker) Sessions() []model.Session {
	out := make([]model.Session, len(t.sessions))
	copy(out, t.sessions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateISO > out[j].DateISO })
	return out
}

// Moods returns a copy ordered newest date first.
func (t *Tracker) Moods() []model.MoodEntry {
	out := make([]model.MoodEntry, len(t.moods))
	copy(out, t.moods)
	model.SortMoodsDesc(out)
	return out
}

func (t *Tracker) MoodFor(date string) (model.MoodEntry, bool) {
	for _, e := range t.moods {
		if e.DateISO == date {
			return e, true
		}
	}
	return model.MoodEntry{}, false
}

// HabitsFor returns a copy of the flags recorded for date.
func (t *Tracker) HabitsFor(date string) map[model.Habit]bool {
	out := make(map[model.Habit]bool, len(t.habits[date]))
	for h, done := range t.habits[date] {
		out[h] = done
	}
	return out
}

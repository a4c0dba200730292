package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sandeepkv93/focuslog/internal/dates"
	"github.com/sandeepkv93/focuslog/internal/model"
	"github.com/sandeepkv93/focuslog/internal/storage"
)

// LogSession records the time elapsed on the focus timer as a session for
// today.
func (t *Tracker) LogSession(ctx context.Context, title, tagsCSV string) (model.Session, string, error) {
	minutes := t.timer.ElapsedMinutes()
	if minutes <= 0 {
		return model.Session{}, "", ErrNothingToLog
	}
	return t.appendSession(ctx, t.Today(), minutes, title, tagsCSV)
}

// LogManual records a session with explicit minutes. An empty date means today.
func (t *Tracker) LogManual(ctx context.Context, date string, minutes int, title, tagsCSV string) (model.Session, string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = t.Today()
	}
	if minutes <= 0 {
		return model.Session{}, "", ErrNothingToLog
	}
	return t.appendSession(ctx, date, minutes, title, tagsCSV)
}

func (t *Tracker) appendSession(ctx context.Context, date string, minutes int, title, tagsCSV string) (model.Session, string, error) {
	s, err := model.NewSession(t.newID(), date, minutes, title, tagsCSV)
	if err != nil {
		return model.Session{}, "", err
	}
	next := append(t.sessions[:len(t.sessions):len(t.sessions)], s)
	if err := storage.Save(ctx, t.store, storage.KeySessions, next); err != nil {
		return model.Session{}, "", err
	}
	t.sessions = next
	if err := t.Award(ctx, model.SessionPoints(minutes)); err != nil {
		return s, "", err
	}
	t.logger.Debug("session logged", slog.String("date", s.DateISO), slog.Int("minutes", s.Minutes), slog.String("title", s.Title))
	return s, fmt.Sprintf("Logged %q (%dm)", s.Title, s.Minutes), nil
}

// VisitHabits creates the habit map for date if this is its first access and
// reports whether it did.
func (t *Tracker) VisitHabits(ctx context.Context, date string) (bool, error) {
	if _, ok := t.habits[date]; ok {
		return false, nil
	}
	next := t.copyHabits()
	next.Ensure(date)
	if err := storage.Save(ctx, t.store, storage.KeyHabits, next); err != nil {
		return false, err
	}
	t.habits = next
	return true, nil
}

// ToggleHabit flips a habit for today. Checking it awards points; unchecking
// does not.
func (t *Tracker) ToggleHabit(ctx context.Context, raw string) (bool, string, error) {
	h, err := t.habitSet.Lookup(raw)
	if err != nil {
		return false, "", err
	}
	today := t.Today()
	done := !t.habits[today][h]
	msg, err := t.writeHabit(ctx, today, h, done)
	return done, msg, err
}

// SetHabit sets a habit for today to done. Points are awarded only when it
// changes from unchecked to checked.
func (t *Tracker) SetHabit(ctx context.Context, raw string, done bool) (string, error) {
	h, err := t.habitSet.Lookup(raw)
	if err != nil {
		return "", err
	}
	today := t.Today()
	if t.habits[today][h] == done {
		return fmt.Sprintf("Habit %s unchanged", h), nil
	}
	return t.writeHabit(ctx, today, h, done)
}

func (t *Tracker) writeHabit(ctx context.Context, date string, h model.Habit, done bool) (string, error) {
	next := t.copyHabits()
	next.Ensure(date)
	next[date][h] = done
	if err := storage.Save(ctx, t.store, storage.KeyHabits, next); err != nil {
		return "", err
	}
	t.habits = next
	if !done {
		return fmt.Sprintf("Habit %s unchecked", h), nil
	}
	if err := t.Award(ctx, model.HabitCheckPoints); err != nil {
		return "", err
	}
	return fmt.Sprintf("Habit %s checked (+%d)", h, model.HabitCheckPoints), nil
}

// ResetHabits clears every flag for date. An empty date means today.
func (t *Tracker) ResetHabits(ctx context.Context, date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = t.Today()
	}
	if !dates.IsISO(date) {
		return "", model.ErrInvalidDate
	}
	next := t.copyHabits()
	next[date] = make(map[model.Habit]bool)
	if err := storage.Save(ctx, t.store, storage.KeyHabits, next); err != nil {
		return "", err
	}
	t.habits = next
	return fmt.Sprintf("Habits reset for %s", dates.Display(date)), nil
}

// SaveMood stores today's mood and reflection, replacing an existing entry
// for today.
func (t *Tracker) SaveMood(ctx context.Context, rawMood, reflection string) (model.MoodEntry, string, error) {
	reflection = strings.TrimSpace(reflection)
	if strings.TrimSpace(rawMood) == "" && reflection == "" {
		return model.MoodEntry{}, "", ErrEmptyMood
	}
	mood, err := t.moodSet.Lookup(rawMood)
	if err != nil {
		return model.MoodEntry{}, "", err
	}
	entry := model.MoodEntry{DateISO: t.Today(), Mood: mood, Reflection: reflection}

	current := make([]model.MoodEntry, len(t.moods))
	copy(current, t.moods)
	next, replaced := model.UpsertMood(current, entry)
	if err := storage.Save(ctx, t.store, storage.KeyMoods, next); err != nil {
		return model.MoodEntry{}, "", err
	}
	t.moods = next
	if err := t.Award(ctx, model.MoodSavePoints); err != nil {
		return entry, "", err
	}
	verb := "saved"
	if replaced {
		verb = "updated"
	}
	return entry, fmt.Sprintf("Mood %s (+%d)", verb, model.MoodSavePoints), nil
}

func (t *Tracker) copyHabits() model.HabitLog {
	out := make(model.HabitLog, len(t.habits)+1)
	for date, flags := range t.habits {
		day := make(map[model.Habit]bool, len(flags))
		for h, done := range flags {
			day[h] = done
		}
		out[date] = day
	}
	return out
}

package tracker

import (
	"context"
	"log/slog"

	"github.com/sandeepkv93/focuslog/internal/storage"
)

// DayReport describes what ReconcileDay found.
type DayReport struct {
	Crossed     bool
	Previous    string
	HadActivity bool
	Streak      int
}

// ReconcileDay compares the last active date with today. When they differ
// the streak grows by one if the previous date saw any activity and resets to
// zero otherwise. Only the single recorded previous date is inspected.
func (t *Tracker) ReconcileDay(ctx context.Context) (DayReport, error) {
	today := t.Today()
	report := DayReport{Previous: t.lastActive, Streak: t.streak}
	if t.lastActive == today {
		return report, nil
	}
	report.Crossed = true
	report.HadActivity = t.hadActivity(t.lastActive)

	next := 0
	if report.HadActivity {
		next = t.streak + 1
	}
	if err := storage.Save(ctx, t.store, storage.KeyStreak, next); err != nil {
		return DayReport{}, err
	}
	if err := storage.Save(ctx, t.store, storage.KeyLastActiveDate, today); err != nil {
		return DayReport{}, err
	}
	t.streak = next
	t.lastActive = today
	report.Streak = next

	t.logger.Info("day boundary reconciled",
		slog.String("previous", report.Previous),
		slog.String("today", today),
		slog.Bool("had_activity", report.HadActivity),
		slog.Int("streak", next),
	)
	return report, nil
}

func (t *Tracker) hadActivity(date string) bool {
	for _, s := range t.sessions {
		if s.DateISO == date {
			return true
		}
	}
	if t.habits.AnyDone(date) {
		return true
	}
	for _, m := range t.moods {
		if m.DateISO == date {
			return true
		}
	}
	return false
}

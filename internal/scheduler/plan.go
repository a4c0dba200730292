package scheduler

import (
	"fmt"
	"time"
)

// DayState is what the planner needs to know about today.
type DayState struct {
	MoodLogged      bool
	HabitsRemaining int
}

// Plan returns the evening nudges for now's day. Nothing is planned once the
// nudge hour has passed.
func Plan(now time.Time, hour int, state DayState) []Nudge {
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !at.After(now) {
		return nil
	}
	day := at.Format("2006-01-02")
	var out []Nudge
	if !state.MoodLogged {
		out = append(out, Nudge{ID: fmt.Sprintf("%s-%s", KindMood, day), Kind: KindMood, At: at})
	}
	if state.HabitsRemaining > 0 {
		out = append(out, Nudge{ID: fmt.Sprintf("%s-%s", KindHabits, day), Kind: KindHabits, At: at})
	}
	return out
}

// Message is the status line shown for a nudge whose condition still holds.
func Message(kind Kind, state DayState) (string, bool) {
	switch kind {
	case KindMood:
		if state.MoodLogged {
			return "", false
		}
		return "No mood logged today yet. Press 3 to check in.", true
	case KindHabits:
		if state.HabitsRemaining == 0 {
			return "", false
		}
		return fmt.Sprintf("%d habit(s) still open today.", state.HabitsRemaining), true
	default:
		return "", false
	}
}

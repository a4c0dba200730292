package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/focuslog/internal/dates"
)

var ErrUnknownHabit = errors.New("model: unknown habit")

// Habit identifies one daily checkbox.
type Habit string

const (
	HabitWater    Habit = "water"
	HabitExercise Habit = "exercise"
	HabitReading  Habit = "reading"
	HabitMeditate Habit = "meditate"
	HabitSleep    Habit = "sleep"
)

func DefaultHabits() []Habit {
	return []Habit{HabitWater, HabitExercise, HabitReading, HabitMeditate, HabitSleep}
}

// HabitSet is the fixed list of habits a user tracks, in display order.
type HabitSet []Habit

func (s HabitSet) Contains(h Habit) bool {
	for _, item := range s {
		if item == h {
			return true
		}
	}
	return false
}

func (s HabitSet) Lookup(raw string) (Habit, error) {
	h := Habit(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Contains(h) {
		return "", fmt.Errorf("%w: %q", ErrUnknownHabit, raw)
	}
	return h, nil
}

// HabitLog maps an ISO date to the completion flags for that day.
type HabitLog map[string]map[Habit]bool

// Ensure creates the day's map if it does not exist and reports whether it did.
func (l HabitLog) Ensure(date string) bool {
	if _, ok := l[date]; ok {
		return false
	}
	l[date] = make(map[Habit]bool)
	return true
}

// AnyDone reports whether any habit was checked on date.
func (l HabitLog) AnyDone(date string) bool {
	for _, done := range l[date] {
		if done {
			return true
		}
	}
	return false
}

// DoneCount counts checked habits of set on date.
func (l HabitLog) DoneCount(date string, set HabitSet) int {
	n := 0
	for _, h := range set {
		if l[date][h] {
			n++
		}
	}
	return n
}

// NormalizeHabits drops entries keyed by anything other than an ISO date.
func NormalizeHabits(in HabitLog) HabitLog {
	out := make(HabitLog, len(in))
	for date, flags := range in {
		if !dates.IsISO(date) {
			continue
		}
		day := make(map[Habit]bool, len(flags))
		for h, done := range flags {
			day[h] = done
		}
		out[date] = day
	}
	return out
}

package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sandeepkv93/focuslog/internal/dates"
)

var ErrInvalidMood = errors.New("model: invalid mood")

type Mood string

const (
	MoodNone  Mood = ""
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodLow   Mood = "low"
	MoodRough Mood = "rough"
)

func DefaultMoods() []Mood {
	return []Mood{MoodGreat, MoodGood, MoodOkay, MoodLow, MoodRough}
}

func (m Mood) Emoji() string {
	switch m {
	case MoodGreat:
		return "😄"
	case MoodGood:
		return "🙂"
	case MoodOkay:
		return "😐"
	case MoodLow:
		return "😕"
	case MoodRough:
		return "😣"
	default:
		return "·"
	}
}

// MoodSet is the list of moods the UI offers. The empty mood is always allowed.
type MoodSet []Mood

func (s MoodSet) Lookup(raw string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(raw)))
	if m == MoodNone {
		return MoodNone, nil
	}
	for _, item := range s {
		if item == m {
			return m, nil
		}
	}
	return MoodNone, fmt.Errorf("%w: %q", ErrInvalidMood, raw)
}

// MoodEntry is the single mood/reflection record for a date.
type MoodEntry struct {
	DateISO    string `json:"dateISO"`
	Mood       Mood   `json:"mood"`
	Reflection string `json:"reflection"`
}

// UpsertMood replaces the entry with the same date or appends a new one.
func UpsertMood(entries []MoodEntry, e MoodEntry) ([]MoodEntry, bool) {
	for i := range entries {
		if entries[i].DateISO == e.DateISO {
			entries[i] = e
			return entries, true
		}
	}
	return append(entries, e), false
}

// NormalizeMoods drops entries with invalid dates and keeps the last entry
// seen for any duplicated date, at the position of the first.
func NormalizeMoods(in []MoodEntry) []MoodEntry {
	out := make([]MoodEntry, 0, len(in))
	for _, e := range in {
		e.DateISO = strings.TrimSpace(e.DateISO)
		if !dates.IsISO(e.DateISO) {
			continue
		}
		out, _ = UpsertMood(out, e)
	}
	return out
}

// SortMoodsDesc orders entries newest first.
func SortMoodsDesc(entries []MoodEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].DateISO > entries[j].DateISO })
}

package tracker

import (
	"sort"
	"time"

	"github.com/sandeepkv93/focuslog/internal/dates"
	"github.com/sandeepkv93/focuslog/internal/model"
)

// SeriesPoint is one day of the dense daily minutes series.
type SeriesPoint struct {
	Date    string
	Label   string
	Minutes int
}

type TagTotal struct {
	Tag     string
	Minutes int
}

// Summary bundles the counters shown on the stats panel.
type Summary struct {
	Today        string
	TodayMinutes int
	WeekMinutes  int
	Sessions     int
	Points       int
	Level        model.Tier
	NextLevelAt  int
	TopLevel     bool
	Streak       int
	HabitsDone   int
	HabitsTotal  int
	MoodLogged   bool
}

func (t *Tracker) TodayTotal() int {
	return t.minutesOn(t.Today())
}

// WeekTotal sums sessions dated on or after this week's Monday.
func (t *Tracker) WeekTotal() int {
	start := dates.StartOfWeek(t.clock)
	total := 0
	for _, s := range t.sessions {
		if s.DateISO >= start {
			total += s.Minutes
		}
	}
	return total
}

// DailySeries returns one point per day for the last daysBack days, oldest
// first and ending today. Days without sessions are included with 0.
func (t *Tracker) DailySeries(daysBack int) []SeriesPoint {
	if daysBack <= 0 {
		return []SeriesPoint{}
	}
	byDate := make(map[string]int)
	for _, s := range t.sessions {
		byDate[s.DateISO] += s.Minutes
	}
	now := t.clock.Now()
	y, m, d := now.Date()
	out := make([]SeriesPoint, 0, daysBack)
	for i := daysBack - 1; i >= 0; i-- {
		iso := dateOffset(y, m, d-i, now)
		out = append(out, SeriesPoint{Date: iso, Label: dates.Display(iso), Minutes: byDate[iso]})
	}
	return out
}

// TagTotals credits each session's full minutes to every one of its tags and
// returns the top limit tags by minutes. Ties keep first-seen order.
func (t *Tracker) TagTotals(limit int) []TagTotal {
	index := make(map[string]int)
	out := make([]TagTotal, 0)
	for _, s := range t.sessions {
		for _, tag := range s.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(out)
				index[tag] = i
				out = append(out, TagTotal{Tag: tag})
			}
			out[i].Minutes += s.Minutes
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (t *Tracker) Summary() Summary {
	today := t.Today()
	next, hasNext := model.NextThreshold(t.points)
	_, moodLogged := t.MoodFor(today)
	return Summary{
		Today:        today,
		TodayMinutes: t.TodayTotal(),
		WeekMinutes:  t.WeekTotal(),
		Sessions:     len(t.sessions),
		Points:       t.points,
		Level:        t.Level(),
		NextLevelAt:  next,
		TopLevel:     !hasNext,
		Streak:       t.streak,
		HabitsDone:   t.habits.DoneCount(today, t.habitSet),
		HabitsTotal:  len(t.habitSet),
		MoodLogged:   moodLogged,
	}
}

func (t *Tracker) minutesOn(date string) int {
	total := 0
	for _, s := range t.sessions {
		if s.DateISO == date {
			total += s.Minutes
		}
	}
	return total
}

// dateOffset normalises day overflow at noon so DST shifts never change the date.
func dateOffset(y int, m time.Month, d int, ref time.Time) string {
	return time.Date(y, m, d, 12, 0, 0, 0, ref.Location()).Format(dates.ISOLayout)
}

package tracker

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/focuslog/internal/dates"
	"github.com/sandeepkv93/focuslog/internal/focus"
	"github.com/sandeepkv93/focuslog/internal/model"
	"github.com/sandeepkv93/focuslog/internal/storage"
)

// Wednesday 11 February 2026, mid-morning.
func wednesday() *dates.FixedClock {
	return &dates.FixedClock{T: time.Date(2026, 2, 11, 10, 0, 0, 0, time.Local)}
}

type fixture struct {
	store *storage.MemoryStore
	clock *dates.FixedClock
	ticks *focus.ManualTicks
	ids   int
}

func newFixture() *fixture {
	return &fixture{store: storage.NewMemoryStore(), clock: wednesday(), ticks: &focus.ManualTicks{}}
}

func (f *fixture) open(t *testing.T) (*Tracker, DayReport) {
	t.Helper()
	tr, report, err := Open(context.Background(), Options{
		Store: f.store,
		Clock: f.clock,
		Ticks: f.ticks,
		NewID: func() string {
			f.ids++
			return fmt.Sprintf("s-%d", f.ids)
		},
	})
	require.NoError(t, err)
	return tr, report
}

func (f *fixture) seed(t *testing.T, key string, value any) {
	t.Helper()
	require.NoError(t, storage.Save(context.Background(), f.store, key, value))
}

func TestOpenFreshStore(t *testing.T) {
	f := newFixture()
	tr, report := f.open(t)

	assert.False(t, report.Crossed)
	assert.Equal(t, "2026-02-11", tr.LastActiveDate())
	assert.Equal(t, 0, tr.Points())
	assert.Equal(t, 0, tr.Streak())

	ctx := context.Background()
	assert.Equal(t, "2026-02-11", storage.Load(ctx, f.store, storage.KeyLastActiveDate, ""))
	habits := storage.Load(ctx, f.store, storage.KeyHabits, model.HabitLog{})
	_, visited := habits["2026-02-11"]
	assert.True(t, visited, "today's habit map should exist after open")
}

func TestOpenRequiresStore(t *testing.T) {
	_, _, err := Open(context.Background(), Options{})
	require.ErrorIs(t, err, ErrNilStore)
}

func TestOpenToleratesCorruptValues(t *testing.T) {
	f := newFixture()
	for _, key := range []string{storage.KeySessions, storage.KeyHabits, storage.KeyMoods, storage.KeyPoints, storage.KeyStreak} {
		require.NoError(t, f.store.Set(context.Background(), key, "{broken"))
	}
	tr, _ := f.open(t)
	assert.Empty(t, tr.Sessions())
	assert.Empty(t, tr.Moods())
	assert.Equal(t, 0, tr.Points())
	assert.Equal(t, 0, tr.Streak())
}

func TestLogManualIncreasesTodayTotal(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	ctx := context.Background()

	for _, m := range []int{1, 7, 25} {
		before := tr.TodayTotal()
		_, _, err := tr.LogManual(ctx, "", m, "work", "")
		require.NoError(t, err)
		assert.Equal(t, before+m, tr.TodayTotal())
	}
}

func TestSessionPointsAwarded(t *testing.T) {
	cases := map[int]int{1: 1, 4: 1, 25: 5, 50: 10, 1000: 10}
	for minutes, want := range cases {
		f := newFixture()
		tr, _ := f.open(t)
		_, _, err := tr.LogManual(context.Background(), "", minutes, "", "")
		require.NoError(t, err)
		assert.Equal(t, want, tr.Points(), "minutes=%d", minutes)
	}
}

func TestLogSessionFromTimer(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	ctx := context.Background()

	require.NoError(t, tr.Timer().Configure(1))
	tr.Timer().Start()
	f.ticks.Fire(10_000)

	assert.False(t, tr.Timer().Running())
	assert.Equal(t, model.TimerCompletePoints, tr.Points(), "completion awards exactly once")
	msg, err := tr.TakeNotice()
	require.NoError(t, err)
	assert.Equal(t, "Timer complete! +5 points", msg)
	msg, _ = tr.TakeNotice()
	assert.Empty(t, msg)

	s, msg, err := tr.LogSession(ctx, "  Deep work ", "go, tui ,")
	require.NoError(t, err)
	assert.Equal(t, `Logged "Deep work" (1m)`, msg)
	assert.Equal(t, []string{"go", "tui"}, s.Tags)
	assert.Equal(t, "2026-02-11", s.DateISO)
	assert.Equal(t, model.TimerCompletePoints+1, tr.Points())

	stored := storage.Load(ctx, f.store, storage.KeySessions, []model.Session{})
	require.Len(t, stored, 1)
	assert.Equal(t, "Deep work", stored[0].Title)
}

func TestLogSessionRejectsZeroMinutes(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)

	_, _, err := tr.LogSession(context.Background(), "nothing", "")
	require.ErrorIs(t, err, ErrNothingToLog)
	assert.Empty(t, tr.Sessions())
	assert.Equal(t, 0, tr.Points())

	_, _, err = tr.LogManual(context.Background(), "", 0, "nothing", "")
	require.ErrorIs(t, err, ErrNothingToLog)
}

func TestLogSessionDefaultsTitle(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	tr.Timer().Start()
	f.ticks.Fire(5 * 60)

	s, msg, err := tr.LogSession(context.Background(), "   ", "")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSessionTitle, s.Title)
	assert.Equal(t, `Logged "Focus block" (5m)`, msg)
	assert.Empty(t, s.Tags)
}

func TestHabitToggleAwardsOnlyWhenChecking(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	ctx := context.Background()

	done, msg, err := tr.ToggleHabit(ctx, "water")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "Habit water checked (+2)", msg)
	assert.Equal(t, 2, tr.Points())

	done, msg, err = tr.ToggleHabit(ctx, "water")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "Habit water unchecked", msg)
	assert.Equal(t, 2, tr.Points())

	_, _, err = tr.ToggleHabit(ctx, "juggling")
	require.ErrorIs(t, err, model.ErrUnknownHabit)
}

func TestSetHabitOnlyAwardsOnChange(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	ctx := context.Background()

	_, err := tr.SetHabit(ctx, "reading", true)
	require.NoError(t, err)
	msg, err := tr.SetHabit(ctx, "reading", true)
	require.NoError(t, err)
	assert.Equal(t, "Habit reading unchanged", msg)
	assert.Equal(t, 2, tr.Points())
}

func TestResetHabitsOnlyTouchesOneDate(t *testing.T) {
	f := newFixture()
	f.seed(t, storage.KeyHabits, model.HabitLog{"2026-02-10": {model.HabitWater: true}})
	tr, _ := f.open(t)
	ctx := context.Background()

	_, _, err := tr.ToggleHabit(ctx, "exercise")
	require.NoError(t, err)
	_, err = tr.ResetHabits(ctx, "")
	require.NoError(t, err)

	assert.Empty(t, tr.HabitsFor("2026-02-11"))
	assert.True(t, tr.HabitsFor("2026-02-10")[model.HabitWater])

	stored := storage.Load(ctx, f.store, storage.KeyHabits, model.HabitLog{})
	day, ok := stored["2026-02-11"]
	assert.True(t, ok)
	assert.Empty(t, day)

	_, err = tr.ResetHabits(ctx, "not-a-date")
	require.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestSaveMoodReplacesSameDay(t *testing.T) {
	f := newFixture()
	f.seed(t, storage.KeyMoods, []model.MoodEntry{{DateISO: "2026-02-10", Mood: model.MoodLow}})
	tr, _ := f.open(t)
	ctx := context.Background()

	_, msg, err := tr.SaveMood(ctx, "good", "shipped the parser")
	require.NoError(t, err)
	assert.Equal(t, "Mood saved (+1)", msg)
	assert.Len(t, tr.Moods(), 2)

	_, msg, err = tr.SaveMood(ctx, "great", "")
	require.NoError(t, err)
	assert.Equal(t, "Mood updated (+1)", msg)
	assert.Len(t, tr.Moods(), 2)

	entry, ok := tr.MoodFor("2026-02-11")
	require.True(t, ok)
	assert.Equal(t, model.MoodGreat, entry.Mood)
	assert.Empty(t, entry.Reflection)
	assert.Equal(t, 2, tr.Points())
	assert.Equal(t, "2026-02-11", tr.Moods()[0].DateISO)
}

func TestSaveMoodRejectsEmptyAndUnknown(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	ctx := context.Background()

	_, _, err := tr.SaveMood(ctx, " ", "   ")
	require.ErrorIs(t, err, ErrEmptyMood)
	_, _, err = tr.SaveMood(ctx, "ecstatic", "")
	require.ErrorIs(t, err, model.ErrInvalidMood)
	assert.Empty(t, tr.Moods())
	assert.Equal(t, 0, tr.Points())

	_, _, err = tr.SaveMood(ctx, "", "reflection only")
	require.NoError(t, err)
}

func TestWriteFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	f.store.FailSet = errors.New("quota exceeded")
	ctx := context.Background()

	_, _, err := tr.LogManual(ctx, "", 10, "x", "")
	require.ErrorIs(t, err, f.store.FailSet)
	assert.Empty(t, tr.Sessions())

	_, _, err = tr.ToggleHabit(ctx, "water")
	require.Error(t, err)
	assert.False(t, tr.HabitsFor(tr.Today())[model.HabitWater])

	_, _, err = tr.SaveMood(ctx, "good", "")
	require.Error(t, err)
	assert.Empty(t, tr.Moods())
	assert.Equal(t, 0, tr.Points())
}

func TestTagTotalsCreditFullMinutesToEveryTag(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	ctx := context.Background()

	_, _, err := tr.LogManual(ctx, "", 30, "pair", "a,b")
	require.NoError(t, err)
	totals := tr.TagTotals(10)
	assert.Equal(t, []TagTotal{{Tag: "a", Minutes: 30}, {Tag: "b", Minutes: 30}}, totals)

	_, _, err = tr.LogManual(ctx, "", 45, "solo", "c")
	require.NoError(t, err)
	_, _, err = tr.LogManual(ctx, "", 5, "more", "b")
	require.NoError(t, err)
	totals = tr.TagTotals(2)
	assert.Equal(t, []TagTotal{{Tag: "c", Minutes: 45}, {Tag: "b", Minutes: 35}}, totals)
}

func TestDailySeriesIsDenseAndChronological(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)

	series := tr.DailySeries(3)
	require.Len(t, series, 3)
	assert.Equal(t, []string{"2026-02-09", "2026-02-10", "2026-02-11"},
		[]string{series[0].Date, series[1].Date, series[2].Date})
	for _, p := range series {
		assert.Equal(t, 0, p.Minutes)
	}
	assert.Equal(t, "11 Feb 2026", series[2].Label)

	_, _, err := tr.LogManual(context.Background(), "2026-02-10", 20, "x", "")
	require.NoError(t, err)
	assert.Equal(t, 20, tr.DailySeries(3)[1].Minutes)
	assert.Empty(t, tr.DailySeries(0))
}

func TestWeekTotalStartsMonday(t *testing.T) {
	f := newFixture()
	f.seed(t, storage.KeySessions, []model.Session{
		{DateISO: "2026-02-08", Minutes: 100, Title: "last sunday"},
		{DateISO: "2026-02-09", Minutes: 10, Title: "monday"},
		{DateISO: "2026-02-11", Minutes: 20, Title: "today"},
		{DateISO: "2026-02-20", Minutes: 5, Title: "future"},
	})
	tr, _ := f.open(t)
	assert.Equal(t, 35, tr.WeekTotal())
	assert.Equal(t, 20, tr.TodayTotal())

	sessions := tr.Sessions()
	assert.Equal(t, "2026-02-20", sessions[0].DateISO)
	assert.Equal(t, "2026-02-08", sessions[len(sessions)-1].DateISO)
	assert.NotEmpty(t, sessions[0].ID, "legacy sessions get an id on load")
}

func TestStreakIncrementsAfterActiveDay(t *testing.T) {
	f := newFixture()
	f.seed(t, storage.KeyLastActiveDate, "2026-02-10")
	f.seed(t, storage.KeyStreak, 3)
	f.seed(t, storage.KeySessions, []model.Session{{DateISO: "2026-02-10", Minutes: 15, Title: "x"}})

	tr, report := f.open(t)
	assert.True(t, report.Crossed)
	assert.True(t, report.HadActivity)
	assert.Equal(t, 4, tr.Streak())
	assert.Equal(t, "2026-02-11", tr.LastActiveDate())
	assert.Equal(t, 4, storage.Load(context.Background(), f.store, storage.KeyStreak, 0))
}

func TestStreakCountsHabitsAndMoods(t *testing.T) {
	f := newFixture()
	f.seed(t, storage.KeyLastActiveDate, "2026-02-10")
	f.seed(t, storage.KeyStreak, 1)
	f.seed(t, storage.KeyHabits, model.HabitLog{"2026-02-10": {model.HabitSleep: true}})
	tr, _ := f.open(t)
	assert.Equal(t, 2, tr.Streak())

	g := newFixture()
	g.seed(t, storage.KeyLastActiveDate, "2026-02-10")
	g.seed(t, storage.KeyMoods, []model.MoodEntry{{DateISO: "2026-02-10", Reflection: "tired"}})
	tr, _ = g.open(t)
	assert.Equal(t, 1, tr.Streak())
}

func TestStreakResetsAfterIdleDay(t *testing.T) {
	f := newFixture()
	f.seed(t, storage.KeyLastActiveDate, "2026-02-10")
	f.seed(t, storage.KeyStreak, 9)
	f.seed(t, storage.KeyHabits, model.HabitLog{"2026-02-10": {model.HabitWater: false}})

	tr, report := f.open(t)
	assert.True(t, report.Crossed)
	assert.False(t, report.HadActivity)
	assert.Equal(t, 0, tr.Streak())
}

func TestStreakSameDayIsNoop(t *testing.T) {
	f := newFixture()
	f.seed(t, storage.KeyLastActiveDate, "2026-02-11")
	f.seed(t, storage.KeyStreak, 5)
	tr, report := f.open(t)
	assert.False(t, report.Crossed)
	assert.Equal(t, 5, tr.Streak())
}

func TestStreakAcrossReopenNextDay(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	_, _, err := tr.LogManual(context.Background(), "", 25, "x", "")
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	tr, report := f.open(t)
	assert.True(t, report.Crossed)
	assert.Equal(t, 1, tr.Streak())
	assert.Equal(t, 5, tr.Points())
}

func TestSummary(t *testing.T) {
	f := newFixture()
	f.seed(t, storage.KeyPoints, 149)
	tr, _ := f.open(t)
	ctx := context.Background()
	_, _, err := tr.ToggleHabit(ctx, "water")
	require.NoError(t, err)

	s := tr.Summary()
	assert.Equal(t, 151, s.Points)
	assert.Equal(t, model.TierGrower, s.Level)
	assert.Equal(t, 300, s.NextLevelAt)
	assert.False(t, s.TopLevel)
	assert.Equal(t, 1, s.HabitsDone)
	assert.Equal(t, len(model.DefaultHabits()), s.HabitsTotal)
	assert.False(t, s.MoodLogged)
}

func TestExportCSVQuoting(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []model.Session{
		{DateISO: "2024-01-01", Title: `Hi, "there"`, Minutes: 10, Tags: []string{"x"}},
		{DateISO: "2024-01-02", Title: "plain", Minutes: 5, Tags: []string{"a", "b"}},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,title,minutes,tags", lines[0])
	assert.Equal(t, `2024-01-01,"Hi, ""there""",10,x`, lines[1])
	assert.Equal(t, "2024-01-02,plain,5,a|b", lines[2])
	assert.Equal(t, "focus-sessions-2024-01-02.csv", ExportFileName("2024-01-02"))
}

func TestExportCSVQuotesBackslashDotTitle(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []model.Session{
		{DateISO: "2024-01-03", Title: `\.`, Minutes: 15, Tags: []string{"ops"}},
		{DateISO: "2024-01-04", Title: `path\to`, Minutes: 5},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `2024-01-03,"\.",15,ops`, lines[1])
	assert.Equal(t, `2024-01-04,path\to,5,`, lines[2])

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `\.`, records[1][1])
	assert.Equal(t, `path\to`, records[2][1])
}

func TestTrackerExportCSV(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	_, _, err := tr.LogManual(context.Background(), "", 12, "Line\nbreak", "t")
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tr.ExportCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "\"Line\nbreak\"")
}

func TestExportFileWritesNestedPath(t *testing.T) {
	f := newFixture()
	tr, _ := f.open(t)
	_, _, err := tr.LogManual(context.Background(), "", 30, "Write", "go")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "out", "sessions.csv")
	path, n, err := tr.ExportFile(target)
	require.NoError(t, err)
	assert.Equal(t, target, path)
	assert.Equal(t, 1, n)

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "date,title,minutes,tags\n2026-02-11,Write,30,go\n", string(raw))
	_, err = os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

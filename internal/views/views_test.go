package views

import (
	"strings"
	"testing"

	"github.com/sandeepkv93/focuslog/internal/model"
	"github.com/sandeepkv93/focuslog/internal/tracker"
)

func TestRenderBarChartScalesToPeak(t *testing.T) {
	out := RenderBarChart([]BarData{{Label: "Mon", Value: 30}, {Label: "Tue", Value: 0}, {Label: "Wed", Value: 15}}, 10, "m")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if got := strings.Count(lines[0], "█"); got != 10 {
		t.Fatalf("peak row filled %d cells, want 10", got)
	}
	if got := strings.Count(lines[1], "█"); got != 0 {
		t.Fatalf("zero row filled %d cells", got)
	}
	if got := strings.Count(lines[2], "█"); got != 5 {
		t.Fatalf("half row filled %d cells, want 5", got)
	}
	if !strings.HasSuffix(lines[2], "15m") {
		t.Fatalf("expected value suffix, got %q", lines[2])
	}
}

func TestRenderBarChartEmpty(t *testing.T) {
	if out := RenderBarChart(nil, 10, "m"); !strings.Contains(out, "no data") {
		t.Fatalf("unexpected empty chart %q", out)
	}
}

func TestRenderShareChartPercentages(t *testing.T) {
	out := RenderShareChart([]BarData{{Label: "go", Value: 75}, {Label: "docs", Value: 25}}, 8)
	if !strings.Contains(out, " 75%") || !strings.Contains(out, " 25%") {
		t.Fatalf("missing percentages: %q", out)
	}
	if out := RenderShareChart(nil, 8); !strings.Contains(out, "no tagged sessions") {
		t.Fatalf("unexpected empty share chart %q", out)
	}
}

func TestRenderHabitsPanel(t *testing.T) {
	out := RenderHabitsPanel(HabitsPanelData{
		Date:  "11 Feb 2026",
		Items: []HabitItemData{{Key: "water", Done: true, Selected: true}, {Key: "sleep"}},
		Done:  1,
	})
	for _, want := range []string{"habits for 11 Feb 2026: 1/2", "> [x] water", "  [ ] sleep"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderStatsPanel(t *testing.T) {
	out := RenderStatsPanel(StatsPanelData{
		TodayMinutes: 40,
		WeekMinutes:  90,
		Sessions:     3,
		Points:       151,
		Level:        "Grower",
		NextLevelAt:  300,
		Streak:       2,
		HabitsTotal:  5,
	})
	for _, want := range []string{"today: 40m | this week: 90m | sessions: 3", "level: Grower | points: 151 (next at 300)", "streak: 2 day(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderAppIncludesPanes(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "focuslog",
		Tabs:       []TabData{{Key: "1", Label: "Focus", Active: true}},
		LeftPane:   "left-content",
		RightPane:  "right-content",
		StatusLine: "status: ok",
		Footer:     "keys",
	})
	for _, want := range []string{"focuslog", "Focus", "left-content", "right-content", "status: ok", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}

func TestNewStatsPanelDataFromTracker(t *testing.T) {
	data := NewStatsPanelData(
		tracker.Summary{TodayMinutes: 40, WeekMinutes: 90, Sessions: 3, Points: 55, Level: model.LevelFor(55), NextLevelAt: 150, Streak: 2, HabitsDone: 1, HabitsTotal: 5},
		[]tracker.SeriesPoint{{Date: "2026-02-10", Label: "Tue", Minutes: 50}, {Date: "2026-02-11", Label: "Wed", Minutes: 40}},
		[]tracker.TagTotal{{Tag: "go", Minutes: 60}},
	)
	if data.Level != string(model.LevelFor(55)) || data.Points != 55 || data.NextLevelAt != 150 {
		t.Fatalf("unexpected level fields %+v", data)
	}
	if len(data.Series) != 2 || data.Series[1] != (BarData{Label: "Wed", Value: 40}) {
		t.Fatalf("unexpected series %+v", data.Series)
	}
	if len(data.Tags) != 1 || data.Tags[0] != (BarData{Label: "go", Value: 60}) {
		t.Fatalf("unexpected tags %+v", data.Tags)
	}
	out := RenderStatsPanel(data)
	if !strings.Contains(out, "today: 40m | this week: 90m | sessions: 3") {
		t.Fatalf("unexpected panel %q", out)
	}
}

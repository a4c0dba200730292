package focus

import (
	"errors"
	"testing"
)

func TestConfigureClampsToOneMinute(t *testing.T) {
	timer := NewTimer(25, nil, nil)
	for _, in := range []int{0, -5} {
		if err := timer.Configure(in); err != nil {
			t.Fatalf("configure %d: %v", in, err)
		}
		if timer.RemainingSec() != 60 || timer.Minutes() != 1 {
			t.Fatalf("configure %d: remaining=%d minutes=%d", in, timer.RemainingSec(), timer.Minutes())
		}
	}
}

func TestConfigureRejectedWhileRunning(t *testing.T) {
	ticks := &ManualTicks{}
	timer := NewTimer(10, ticks, nil)
	timer.Start()
	if err := timer.Configure(5); !errors.Is(err, ErrRunning) {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
	if timer.Minutes() != 10 {
		t.Fatalf("minutes changed while running: %d", timer.Minutes())
	}
}

func TestStartIsIdempotentAndPauseCancels(t *testing.T) {
	ticks := &ManualTicks{}
	timer := NewTimer(10, ticks, nil)
	timer.Start()
	timer.Start()
	if ticks.Starts != 1 {
		t.Fatalf("expected one tick schedule, got %d", ticks.Starts)
	}
	ticks.Fire(3)
	if timer.RemainingSec() != 600-3 {
		t.Fatalf("remaining = %d", timer.RemainingSec())
	}
	timer.Pause()
	timer.Pause()
	if ticks.Active() || timer.Running() {
		t.Fatal("expected paused timer with stopped ticks")
	}
	timer.Tick()
	if timer.RemainingSec() != 597 {
		t.Fatalf("tick while paused changed remaining: %d", timer.RemainingSec())
	}
}

func TestCompletionFiresOnceAndAutoPauses(t *testing.T) {
	ticks := &ManualTicks{}
	completions := 0
	timer := NewTimer(1, ticks, func() { completions++ })
	timer.Start()
	ticks.Fire(500)

	if completions != 1 {
		t.Fatalf("expected one completion, got %d", completions)
	}
	if timer.Running() || ticks.Active() {
		t.Fatal("expected timer to auto-pause at zero")
	}
	if timer.RemainingSec() != 0 || !timer.Done() {
		t.Fatalf("remaining = %d", timer.RemainingSec())
	}
	if timer.ElapsedMinutes() != 1 || timer.Progress() != 1 {
		t.Fatalf("elapsed=%d progress=%f", timer.ElapsedMinutes(), timer.Progress())
	}
}

func TestElapsedMinutesRounds(t *testing.T) {
	ticks := &ManualTicks{}
	timer := NewTimer(25, ticks, nil)
	timer.Start()
	ticks.Fire(29)
	if got := timer.ElapsedMinutes(); got != 0 {
		t.Fatalf("29s elapsed rounds to %d", got)
	}
	ticks.Fire(1)
	if got := timer.ElapsedMinutes(); got != 1 {
		t.Fatalf("30s elapsed rounds to %d", got)
	}
}

func TestElapsedFollowsConfiguredMinutes(t *testing.T) {
	ticks := &ManualTicks{}
	timer := NewTimer(25, ticks, nil)
	timer.Start()
	ticks.Fire(10 * 60)
	timer.Pause()
	if got := timer.ElapsedMinutes(); got != 10 {
		t.Fatalf("elapsed = %d", got)
	}
	timer.Reset()
	if timer.RemainingSec() != 25*60 || timer.ElapsedMinutes() != 0 {
		t.Fatalf("reset did not restore length: %d", timer.RemainingSec())
	}
}

func TestFinishedTimerDoesNotCompleteAgain(t *testing.T) {
	ticks := &ManualTicks{}
	completions := 0
	timer := NewTimer(1, ticks, func() { completions++ })
	timer.Start()
	ticks.Fire(100)

	timer.Start()
	if timer.Running() || ticks.Starts != 1 {
		t.Fatalf("start on a finished countdown should be ignored, running=%v starts=%d", timer.Running(), ticks.Starts)
	}
	timer.Tick()
	if completions != 1 {
		t.Fatalf("expected one completion, got %d", completions)
	}

	timer.Reset()
	timer.Start()
	ticks.Fire(60)
	if completions != 2 {
		t.Fatalf("expected a second completion after reset, got %d", completions)
	}
}

// Package focus implements the countdown timer behind focus blocks.
package focus

import (
	"errors"
	"math"
	"time"
)

var ErrRunning = errors.New("focus: timer is running")

// TickSource delivers a callback once per interval until stopped. The
// callback must run on the goroutine that owns the Timer.
type TickSource interface {
	Start(interval time.Duration, tick func())
	Stop()
}

// Timer is a two-state countdown: idle/paused and running.
type Timer struct {
	minutes      int
	remainingSec int
	running      bool
	ticks        TickSource
	onComplete   func()
}

// NewTimer returns an idle timer configured for minutes. onComplete fires
// on the tick that takes the countdown from one second to zero.
func NewTimer(minutes int, ticks TickSource, onComplete func()) *Timer {
	t := &Timer{ticks: ticks, onComplete: onComplete}
	t.setMinutes(minutes)
	return t
}

func (t *Timer) setMinutes(minutes int) {
	if minutes < 1 {
		minutes = 1
	}
	t.minutes = minutes
	t.remainingSec = minutes * 60
}

// Configure sets the countdown length. Non-positive input becomes 1 minute.
func (t *Timer) Configure(minutes int) error {
	if t.running {
		return ErrRunning
	}
	t.setMinutes(minutes)
	return nil
}

// Start is a no-op while running and on a finished countdown; Reset first
// to run it again.
func (t *Timer) Start() {
	if t.running || t.remainingSec == 0 {
		return
	}
	t.running = true
	if t.ticks != nil {
		t.ticks.Start(time.Second, t.Tick)
	}
}

func (t *Timer) Pause() {
	if t.ticks != nil && t.running {
		t.ticks.Stop()
	}
	t.running = false
}

// Reset pauses and restores the full configured length.
func (t *Timer) Reset() {
	t.Pause()
	t.remainingSec = t.minutes * 60
}

// Tick advances the countdown by one second.
func (t *Timer) Tick() {
	if !t.running {
		return
	}
	if t.remainingSec == 0 {
		t.Pause()
		return
	}
	t.remainingSec--
	if t.remainingSec == 0 {
		t.Pause()
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}

func (t *Timer) Running() bool     { return t.running }
func (t *Timer) Minutes() int      { return t.minutes }
func (t *Timer) RemainingSec() int { return t.remainingSec }
func (t *Timer) TotalSec() int     { return t.minutes * 60 }
func (t *Timer) Done() bool        { return t.remainingSec == 0 }

// ElapsedMinutes is the configured length minus what remains, rounded to the
// nearest minute.
func (t *Timer) ElapsedMinutes() int {
	elapsed := t.TotalSec() - t.remainingSec
	return int(math.Round(float64(elapsed) / 60))
}

// Progress is the elapsed fraction in [0,1].
func (t *Timer) Progress() float64 {
	total := t.TotalSec()
	if total <= 0 {
		return 0
	}
	return float64(total-t.remainingSec) / float64(total)
}

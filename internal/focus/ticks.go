package focus

import (
	"sync"
	"time"
)

// RealTicks runs a time.Ticker on its own goroutine and hands every tick to
// Dispatch, which decides where the callback executes. The TUI dispatches
// into the bubbletea loop; a headless runner can call the func directly from
// a single consumer goroutine. A tick dispatched before Stop is ignored if it
// runs after Stop, even when the source has been started again.
type RealTicks struct {
	Dispatch func(tick func())

	mu   sync.Mutex
	stop chan struct{}
	gen  uint64
}

func (r *RealTicks) Start(interval time.Duration, tick func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}
	r.gen++
	gen := r.gen
	stop := make(chan struct{})
	r.stop = stop
	guarded := func() {
		if r.current(gen) {
			tick()
		}
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Dispatch(guarded)
			case <-stop:
				return
			}
		}
	}()
}

func (r *RealTicks) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop == nil {
		return
	}
	close(r.stop)
	r.stop = nil
	r.gen++
}

func (r *RealTicks) current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil && r.gen == gen
}

// ManualTicks records the callback and fires it only when Fire is called.
type ManualTicks struct {
	tick    func()
	Starts  int
	Stops   int
	started bool
}

func (m *ManualTicks) Start(_ time.Duration, tick func()) {
	m.tick = tick
	m.started = true
	m.Starts++
}

func (m *ManualTicks) Stop() {
	m.started = false
	m.Stops++
}

func (m *ManualTicks) Active() bool { return m.started }

// Fire delivers up to n ticks, stopping early once the source is stopped.
func (m *ManualTicks) Fire(n int) {
	for i := 0; i < n && m.started; i++ {
		m.tick()
	}
}

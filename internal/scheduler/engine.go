// Package scheduler delivers time-based nudges to the UI on a channel.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTime = errors.New("scheduler: invalid nudge time")
	ErrStopped     = errors.New("scheduler: engine stopped")
)

type Kind string

const (
	KindMood   Kind = "mood"
	KindHabits Kind = "habits"
)

type Nudge struct {
	ID   string
	Kind Kind
	At   time.Time
}

type entry struct {
	nudge Nudge
	index int
}

// pending is a min-heap on At that keeps each entry's position current so
// a nudge can be replaced in place by ID.
type pending []*entry

func (p pending) Len() int           { return len(p) }
func (p pending) Less(i, j int) bool { return p[i].nudge.At.Before(p[j].nudge.At) }
func (p pending) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
	p[i].index = i
	p[j].index = j
}

func (p *pending) Push(x any) {
	e := x.(*entry)
	e.index = len(*p)
	*p = append(*p, e)
}

func (p *pending) Pop() any {
	old := *p
	e := old[len(old)-1]
	old[len(old)-1] = nil
	*p = old[:len(old)-1]
	e.index = -1
	return e
}

// Engine fires nudges in At order. Scheduling an ID that is already pending
// moves it to the new time. Delivery never blocks: when the consumer lags
// behind a full buffer the nudge is counted as dropped.
type Engine struct {
	mu    sync.Mutex
	queue pending
	byID  map[string]*entry

	out     chan Nudge
	kick    chan struct{}
	quit    chan struct{}
	done    chan struct{}
	now     func() time.Time
	running bool
	closed  bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	return &Engine{
		byID: make(map[string]*entry),
		out:  make(chan Nudge, max(1, bufferSize)),
		kick: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
		now:  time.Now,
	}
}

// C is closed once the engine stops.
func (e *Engine) C() <-chan Nudge {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running || e.closed {
		return
	}
	e.running = true
	go e.run()
}

// Stop halts delivery and waits for the worker to exit. Pending nudges are
// discarded.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	wasRunning := e.running
	close(e.quit)
	e.mu.Unlock()
	if wasRunning {
		<-e.done
	}
}

func (e *Engine) Schedule(n Nudge) error {
	if n.At.IsZero() {
		return ErrInvalidTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrStopped
	}

	if existing, ok := e.byID[n.ID]; ok {
		existing.nudge = n
		heap.Fix(&e.queue, existing.index)
	} else {
		item := &entry{nudge: n}
		heap.Push(&e.queue, item)
		e.byID[n.ID] = item
	}
	e.poke()
	return nil
}

// Cancel removes every pending nudge of the given kind and reports how many
// were removed.
func (e *Engine) Cancel(kind Kind) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	var matched []*entry
	for _, item := range e.queue {
		if item.nudge.Kind == kind {
			matched = append(matched, item)
		}
	}
	for _, item := range matched {
		heap.Remove(&e.queue, item.index)
		delete(e.byID, item.nudge.ID)
	}
	if len(matched) > 0 {
		e.poke()
	}
	return len(matched)
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		var fire <-chan time.Time
		if at, ok := e.nextAt(); ok {
			timer.Reset(max(0, at.Sub(e.now())))
			fire = timer.C
		}

		select {
		case <-fire:
			for _, n := range e.takeDue(e.now()) {
				e.deliver(n)
			}
		case <-e.kick:
			timer.Stop()
		case <-e.quit:
			return
		}
	}
}

func (e *Engine) deliver(n Nudge) {
	select {
	case e.out <- n:
	default:
		e.dropped.Add(1)
	}
}

func (e *Engine) poke() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}

func (e *Engine) nextAt() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return time.Time{}, false
	}
	return e.queue[0].nudge.At, true
}

func (e *Engine) takeDue(now time.Time) []Nudge {
	e.mu.Lock()
	defer e.mu.Unlock()

	var due []Nudge
	for len(e.queue) > 0 && !e.queue[0].nudge.At.After(now) {
		item := heap.Pop(&e.queue).(*entry)
		delete(e.byID, item.nudge.ID)
		due = append(due, item.nudge)
	}
	return due
}

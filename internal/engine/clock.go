package engine

import (
	"sort"
	"time"
)

// Timer is a handle to a scheduled callback that can be cancelled before it
// fires. Stop reports whether the callback was still pending.
type Timer interface {
	Stop() bool
}

// Clock abstracts time and delayed callbacks. Every delayed mutation in the
// engine goes through a Clock; there are no package-level timer handles and no
// background goroutines: callbacks fire inline when the clock is advanced, on
// whatever goroutine advances it. That keeps the single-goroutine contract of
// Mission honest even for delayed writes.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// StepClock is a manually advanced clock. The goroutine that drives the
// mission pumps it: the render loop in production (via UpdateTimer), the test
// body in tests (via Advance). Advance fires due callbacks inline, so a
// delayed expiry can never race the tick that observes it.
type StepClock struct {
	now     time.Time
	pending []*stepTimer
	nextID  int
}

type stepTimer struct {
	clock   *StepClock
	id      int
	due     time.Time
	fn      func()
	stopped bool
}

func (t *stepTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewStepClock starts at a fixed instant so output is reproducible.
func NewStepClock() *StepClock {
	return &StepClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *StepClock) Now() time.Time { return c.now }

func (c *StepClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.nextID++
	t := &stepTimer{clock: c, id: c.nextID, due: c.now.Add(d), fn: fn}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves the clock forward, firing pending callbacks in due order.
func (c *StepClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.due
		next.stopped = true
		next.fn()
	}
	c.now = target
}

func (c *StepClock) nextDue(limit time.Time) *stepTimer {
	live := c.pending[:0]
	for _, t := range c.pending {
		if !t.stopped {
			live = append(live, t)
		}
	}
	c.pending = live
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].due.Equal(c.pending[j].due) {
			return c.pending[i].id < c.pending[j].id
		}
		return c.pending[i].due.Before(c.pending[j].due)
	})
	for _, t := range c.pending {
		if !t.due.After(limit) {
			return t
		}
	}
	return nil
}
